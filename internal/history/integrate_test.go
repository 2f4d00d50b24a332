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

package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration, value float64) Sample {
	return Sample{Timestamp: t0.Add(offset), Value: value}
}

func TestIntegrate_FullTrapezoid(t *testing.T) {
	series := []Sample{at(0, 0), at(time.Minute, 10)}

	area := Integrate(series, t0, t0.Add(time.Minute))
	assert.InDelta(t, 0.5*10*60, area, 1e-9)
}

func TestIntegrate_ClipsStartEdge(t *testing.T) {
	series := []Sample{at(0, 0), at(time.Minute, 10)}

	// window starts 15 s in; value there is 2.5 by linear interpolation
	area := Integrate(series, t0.Add(15*time.Second), t0.Add(time.Minute))
	expected := 0.5 * (2.5 + 10) * 45
	assert.InDelta(t, expected, area, 1e-9)
}

func TestIntegrate_ClipsEndEdge(t *testing.T) {
	series := []Sample{at(0, 0), at(time.Minute, 10)}

	// window ends 15 s early; value there is 7.5
	area := Integrate(series, t0, t0.Add(45*time.Second))
	expected := 0.5 * (0 + 7.5) * 45
	assert.InDelta(t, expected, area, 1e-9)
}

func TestIntegrate_SkipsOutsideSamples(t *testing.T) {
	series := []Sample{
		at(-2*time.Hour, 100), at(-time.Hour, 100), // before the window
		at(0, 10), at(time.Minute, 10),
		at(2*time.Hour, 100), at(3*time.Hour, 100), // after the window
	}

	area := Integrate(series, t0, t0.Add(time.Minute))
	// pairs fully outside the window contribute nothing
	assert.InDelta(t, 0.5*(10+10)*60, area, 1e-9)
}

func TestIntegrate_ConstantSeries(t *testing.T) {
	series := []Sample{at(0, 1200), at(time.Hour, 1200)}

	area := Integrate(series, t0, t0.Add(time.Hour))
	assert.InDelta(t, 1200*3600, area, 1e-6)
}

func TestIntegrate_DegenerateSeries(t *testing.T) {
	assert.Zero(t, Integrate(nil, t0, t0.Add(time.Hour)))
	assert.Zero(t, Integrate([]Sample{at(0, 5)}, t0, t0.Add(time.Hour)))

	// duplicate timestamps must not divide by zero
	series := []Sample{at(0, 5), at(0, 7), at(time.Minute, 7)}
	area := Integrate(series, t0, t0.Add(time.Minute))
	assert.InDelta(t, 7*60, area, 1e-9)
}
