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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/history"
)

type fakeSamples map[string][]history.Sample

func (f fakeSamples) SamplesBetween(series string, from, to time.Time) ([]history.Sample, error) {
	var out []history.Sample
	for _, s := range f[series] {
		if !s.Timestamp.Before(from) && !s.Timestamp.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type failingSamples struct{}

func (failingSamples) SamplesBetween(string, time.Time, time.Time) ([]history.Sample, error) {
	return nil, errors.New("database is locked")
}

type fakeRate struct {
	rate  float64
	known bool
}

func (f fakeRate) CurrentRate() (float64, bool) { return f.rate, f.known }

var estimatorNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func socSeries(values ...float64) []history.Sample {
	// one sample per 10 minutes, newest last, ending at estimatorNow
	out := make([]history.Sample, len(values))
	for i, v := range values {
		out[i] = history.Sample{
			Timestamp: estimatorNow.Add(-time.Duration(len(values)-1-i) * 10 * time.Minute),
			Value:     v,
		}
	}
	return out
}

func TestPowerEstimator_StableBatteryIsPlentiful(t *testing.T) {
	samples := fakeSamples{
		seriesBatterySOC: socSeries(80, 79.8, 79.6, 79.4, 79.2, 79),
	}
	p := NewPowerEstimator(samples, fakeRate{rate: 0.30, known: true}, config.NewPowerConfig())

	// draining 1.2%/h, 11 h to 23:00 -> projected ~66%, well above the floor
	assert.True(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_DrainingBatteryIsNot(t *testing.T) {
	samples := fakeSamples{
		seriesBatterySOC: socSeries(80, 68, 56, 44, 32, 20),
	}
	p := NewPowerEstimator(samples, fakeRate{rate: 0.30, known: true}, config.NewPowerConfig())

	// draining 72%/h with 11 h to go, projection is far below zero
	assert.False(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_CheapRateIsPlentiful(t *testing.T) {
	p := NewPowerEstimator(fakeSamples{}, fakeRate{rate: 0.05, known: true}, config.NewPowerConfig())
	assert.True(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_RateAtThresholdIsNot(t *testing.T) {
	p := NewPowerEstimator(fakeSamples{}, fakeRate{rate: 0.10, known: true}, config.NewPowerConfig())
	assert.False(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_SolarYieldIsPlentiful(t *testing.T) {
	samples := fakeSamples{
		seriesSolarPower: []history.Sample{
			{Timestamp: estimatorNow.Add(-time.Hour), Value: 1200},
			{Timestamp: estimatorNow, Value: 1200},
		},
	}
	p := NewPowerEstimator(samples, fakeRate{}, config.NewPowerConfig())

	// 1200 W over the trailing hour is 1.2 kWh
	assert.True(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_WeakSolarIsNot(t *testing.T) {
	samples := fakeSamples{
		seriesSolarPower: []history.Sample{
			{Timestamp: estimatorNow.Add(-time.Hour), Value: 400},
			{Timestamp: estimatorNow, Value: 400},
		},
	}
	p := NewPowerEstimator(samples, fakeRate{}, config.NewPowerConfig())
	assert.False(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_HistoryErrorIsNotPlentiful(t *testing.T) {
	p := NewPowerEstimator(failingSamples{}, fakeRate{}, config.NewPowerConfig())
	assert.False(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}

func TestPowerEstimator_SingleSampleIsNotEnough(t *testing.T) {
	samples := fakeSamples{
		seriesBatterySOC: {{Timestamp: estimatorNow, Value: 90}},
	}
	p := NewPowerEstimator(samples, fakeRate{}, config.NewPowerConfig())
	assert.False(t, p.HavePlentyOfPowerAvailable(estimatorNow))
}
