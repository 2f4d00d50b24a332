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

package config

const (
	defaultCheapRate       = 0.10
	defaultMinProjectedSOC = 20.0
	defaultMinSolarKWh     = 1.0
)

// PowerConfig wires the surplus-power signals: battery charge percentage,
// solar generation and the electricity unit price.
type PowerConfig struct {
	BatterySOC      *SensorConfig `yaml:"battery_soc,omitempty"`
	SolarPower      *SensorConfig `yaml:"solar_power,omitempty"`
	Price           *SensorConfig `yaml:"price,omitempty"`
	CheapRate       *float64      `yaml:"cheap_rate"`
	MinProjectedSOC *float64      `yaml:"min_projected_soc"`
	MinSolarKWh     *float64      `yaml:"min_solar_kwh"`
}

func (p *PowerConfig) FillDefaults() {
	if p.BatterySOC != nil {
		p.BatterySOC.FillDefaults()
	}
	if p.SolarPower != nil {
		p.SolarPower.FillDefaults()
	}
	if p.Price != nil {
		p.Price.FillDefaults()
	}
	if p.CheapRate == nil {
		p.CheapRate = GetPTR(defaultCheapRate)
	}
	if p.MinProjectedSOC == nil {
		p.MinProjectedSOC = GetPTR(defaultMinProjectedSOC)
	}
	if p.MinSolarKWh == nil {
		p.MinSolarKWh = GetPTR(defaultMinSolarKWh)
	}
}

func NewPowerConfig() *PowerConfig {
	cfg := &PowerConfig{}
	cfg.FillDefaults()
	return cfg
}
