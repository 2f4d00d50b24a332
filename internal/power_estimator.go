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

package internal

import (
	"time"

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/history"
	"github.com/antst/hscd/internal/logger"
)

const (
	powerHistoryWindow = time.Hour
	wattSecondsPerKWh  = 3_600_000.0
	// the battery projection runs out to this hour of today
	projectionHour = 23
)

// SampleSource supplies stored history series for a trailing window.
type SampleSource interface {
	SamplesBetween(series string, from, to time.Time) ([]history.Sample, error)
}

// RateSource supplies the current electricity unit price.
type RateSource interface {
	CurrentRate() (float64, bool)
}

// PowerEstimator decides whether surplus power is available right now.
// Every call evaluates fresh; nothing is cached.
type PowerEstimator struct {
	samples SampleSource
	rate    RateSource
	cfg     *config.PowerConfig
}

func NewPowerEstimator(samples SampleSource, rate RateSource, cfg *config.PowerConfig) *PowerEstimator {
	return &PowerEstimator{samples: samples, rate: rate, cfg: cfg}
}

// HavePlentyOfPowerAvailable reports surplus when any of the following
// holds: the battery level projected at 23:00 stays above the floor, the
// current unit price is below the cheap threshold, or the last hour of
// solar generation exceeded the configured yield. History failures log and
// count as "not plentiful" for that path only.
func (p *PowerEstimator) HavePlentyOfPowerAvailable(now time.Time) bool {
	if p.projectedBatteryAboveFloor(now) {
		return true
	}
	if rate, ok := p.rate.CurrentRate(); ok && rate < *p.cfg.CheapRate {
		return true
	}
	return p.solarYieldKWh(now) > *p.cfg.MinSolarKWh
}

func (p *PowerEstimator) projectedBatteryAboveFloor(now time.Time) bool {
	samples, err := p.samples.SamplesBetween(seriesBatterySOC, now.Add(-powerHistoryWindow), now)
	if err != nil {
		logger.L().Warnf("Battery history unavailable: %v", err)
		return false
	}
	if len(samples) < 2 {
		return false
	}

	first, last := samples[0], samples[len(samples)-1]
	elapsed := last.Timestamp.Sub(first.Timestamp).Minutes()
	if elapsed <= 0 {
		return false
	}
	// positive rate means the battery is draining
	rate := (first.Value - last.Value) / elapsed

	cutoff := time.Date(now.Year(), now.Month(), now.Day(), projectionHour, 0, 0, 0, now.Location())
	minutes := cutoff.Sub(now).Minutes()
	if minutes < 0 {
		minutes = 0
	}

	projected := last.Value - rate*minutes
	logger.L().Debugf("Battery projection: level %.1f%%, rate %.3f%%/min -> %.1f%% at %02d:00",
		last.Value, rate, projected, projectionHour)
	return projected > *p.cfg.MinProjectedSOC
}

func (p *PowerEstimator) solarYieldKWh(now time.Time) float64 {
	samples, err := p.samples.SamplesBetween(seriesSolarPower, now.Add(-powerHistoryWindow), now)
	if err != nil {
		logger.L().Warnf("Solar history unavailable: %v", err)
		return 0
	}
	wattSeconds := history.Integrate(samples, now.Add(-powerHistoryWindow), now)
	return wattSeconds / wattSecondsPerKWh
}
