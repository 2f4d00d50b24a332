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
	defaultPayloadOn           = "ON"
	defaultPayloadOff          = "OFF"
	defaultOccupancyThresholdW = 15.0
)

// HeaterConfig describes the MQTT switch driving a room's heating actuator.
// StateTopic carries the switch's confirmed state; commands are only counted
// as applied when the state actually changes.
type HeaterConfig struct {
	CommandTopic string `yaml:"command_topic"`
	StateTopic   string `yaml:"state_topic"`
	PayloadOn    string `yaml:"payload_on,omitempty"`
	PayloadOff   string `yaml:"payload_off,omitempty"`
}

func (h *HeaterConfig) FillDefaults() {
	if h.PayloadOn == "" {
		h.PayloadOn = defaultPayloadOn
	}
	if h.PayloadOff == "" {
		h.PayloadOff = defaultPayloadOff
	}
}

// RoomConfig wires one room: its temperature sensor, its heating switch and
// an optional occupancy plug whose power draw marks the room as in use.
type RoomConfig struct {
	Temperature         *SensorConfig `yaml:"temperature"`
	Heater              *HeaterConfig `yaml:"heater,omitempty"`
	OccupancyPower      *SensorConfig `yaml:"occupancy_power,omitempty"`
	OccupancyThresholdW *float64      `yaml:"occupancy_threshold_w"`
}

func (r *RoomConfig) FillDefaults() {
	if r.Temperature == nil {
		r.Temperature = NewSensorConfig()
	}
	r.Temperature.FillDefaults()
	if r.Heater != nil {
		r.Heater.FillDefaults()
	}
	if r.OccupancyPower != nil {
		r.OccupancyPower.FillDefaults()
	}
	if r.OccupancyThresholdW == nil {
		r.OccupancyThresholdW = GetPTR(defaultOccupancyThresholdW)
	}
}

func NewRoomConfig() *RoomConfig {
	cfg := &RoomConfig{}
	cfg.FillDefaults()
	return cfg
}
