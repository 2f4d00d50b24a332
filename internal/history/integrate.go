/*
 * Copyright (c) 2026. Anton Starikov -- All Rights Reserved
 *
 * This file is part of HSCD project.
 *
 * HSCD is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package history holds the time-series sample type and the trapezoidal
// integration used to estimate energy from irregular samples.
package history

import "time"

// Sample is one point of an irregular numeric time series.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Integrate computes the trapezoidal integral of the series restricted to
// [start, end], assuming linear interpolation between consecutive samples.
// Intervals straddling a window edge are clipped with the interpolated value
// at the edge; intervals entirely outside the window are skipped. The series
// must be ordered by timestamp. The result is in value-units × seconds.
func Integrate(samples []Sample, start, end time.Time) float64 {
	total := 0.0
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if !cur.Timestamp.After(prev.Timestamp) {
			continue
		}
		if !cur.Timestamp.After(start) || !prev.Timestamp.Before(end) {
			continue
		}

		dt := cur.Timestamp.Sub(prev.Timestamp).Seconds()
		area := 0.5 * (prev.Value + cur.Value) * dt

		if prev.Timestamp.Before(start) {
			cut := start.Sub(prev.Timestamp).Seconds()
			atStart := prev.Value + (cur.Value-prev.Value)*cut/dt
			area -= 0.5 * (prev.Value + atStart) * cut
		}
		if cur.Timestamp.After(end) {
			cut := cur.Timestamp.Sub(end).Seconds()
			atEnd := cur.Value + (prev.Value-cur.Value)*cut/dt
			area -= 0.5 * (atEnd + cur.Value) * cut
		}

		total += area
	}
	return total
}
