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
	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/store"
)

const (
	seriesBatterySOC = "battery_soc"
	seriesSolarPower = "solar_power"
)

// GridController manages the house-level power signals: battery charge
// percentage, solar generation and the electricity price. Battery and solar
// readings are recorded as history series for the integrator; any change
// nudges the control channel so affected rooms re-evaluate.
type GridController struct {
	cfg         *config.PowerConfig
	battery     *SensorController
	solar       *SensorController
	price       *SensorController
	controlChan chan<- bool
	childChan   chan bool
}

func NewGridController(
	cfg *config.PowerConfig, mqttCfg *config.MQTTConfig, st *store.Store, controlChan chan<- bool,
) *GridController {
	g := &GridController{
		cfg:         cfg,
		controlChan: controlChan,
		childChan:   make(chan bool, childChanBuffer),
	}

	if cfg.BatterySOC != nil {
		g.battery = NewSensorController("battery-soc", cfg.BatterySOC, mqttCfg, st, seriesBatterySOC, g.childChan)
	}
	if cfg.SolarPower != nil {
		g.solar = NewSensorController("solar-power", cfg.SolarPower, mqttCfg, st, seriesSolarPower, g.childChan)
	}
	if cfg.Price != nil {
		g.price = NewSensorController("electricity-price", cfg.Price, mqttCfg, st, "", g.childChan)
	}

	go g.childProcessor()
	return g
}

func (g *GridController) childProcessor() {
	for range g.childChan {
		g.controlChan <- true
	}
}

// CurrentRate returns the live electricity unit price when one has been
// heard.
func (g *GridController) CurrentRate() (float64, bool) {
	if g.price == nil {
		return 0, false
	}
	return g.price.Value()
}

func (g *GridController) BatteryLevel() (float64, bool) {
	if g.battery == nil {
		return 0, false
	}
	return g.battery.Value()
}
