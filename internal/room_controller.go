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
	"encoding/json"
	"sync"
	"time"

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/safe_mqtt"
	"github.com/antst/hscd/internal/schedule"
	"github.com/antst/hscd/internal/store"

	"github.com/google/uuid"
)

// valueSource is the read side of a sensor.
type valueSource interface {
	Value() (float64, bool)
}

// RoomController runs the actuation state machine for one room: it turns
// the resolved target and the live temperature into ON/OFF transitions with
// a symmetric dead band, and tracks the room's last known state.
type RoomController struct {
	name        string
	room        schedule.Room
	mu          sync.Mutex
	cfg         *config.RoomConfig
	mqtt        safe_mqtt.MqttClient
	store       *store.Store
	temperature valueSource
	occupancy   valueSource
	heater      HeatingActuator
	hysteresis  float64
	stateTopic  string

	state      RoomState
	stateKnown bool
	childChan  chan bool
	noHeater   sync.Once
}

func newRoomController(
	name string, room schedule.Room, cfg *config.RoomConfig, mqttCfg *config.MQTTConfig,
	st *store.Store, controlChan chan<- *RoomController, hysteresis float64,
) *RoomController {
	r := &RoomController{
		name:       name,
		room:       room,
		cfg:        cfg,
		store:      st,
		hysteresis: hysteresis,
		stateTopic: mqttCfg.ControlTopic + "/room/" + name + "/state",
		state:      RoomState{Room: name},
		childChan:  make(chan bool, childChanBuffer),
	}

	r.mqtt = safe_mqtt.InitMQTTClient(
		mqttCfg.URL, "hscd-room-"+name+"-"+uuid.New().String(),
		&safe_mqtt.Auth{Username: mqttCfg.Username, Password: mqttCfg.Password},
	)

	r.temperature = NewSensorController("room-"+name+"-temperature", cfg.Temperature, mqttCfg, st, "", r.childChan)
	if cfg.OccupancyPower != nil {
		r.occupancy = NewSensorController("room-"+name+"-occupancy", cfg.OccupancyPower, mqttCfg, st, "", r.childChan)
	}
	if cfg.Heater != nil {
		r.heater = NewHeaterController(name, cfg.Heater, mqttCfg)
	}

	if st != nil {
		if row, err := st.GetRoomState(name); err == nil {
			// warm start for reporting; the heating flag is still probed
			loaded := roomStateFromRow(row)
			r.state.Temperature = loaded.Temperature
			r.state.ActiveTrackID = loaded.ActiveTrackID
			logger.L().Debugf("Loaded previous state from DB for room %v", name)
		}
	}

	go r.childProcessor(controlChan)
	return r
}

func (r *RoomController) childProcessor(controlChan chan<- *RoomController) {
	for range r.childChan {
		controlChan <- r
	}
}

// Occupied implements the occupancy oracle from the plug's power draw.
func (r *RoomController) Occupied() bool {
	if r.occupancy == nil {
		return false
	}
	v, ok := r.occupancy.Value()
	return ok && v >= *r.cfg.OccupancyThresholdW
}

// State returns a copy of the room's last known state.
func (r *RoomController) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Evaluate runs one control cycle: resolve the effective track, apply the
// hysteresis band, command the actuator on a transition, and record state.
// All failures stay inside the room; Evaluate never panics outward.
func (r *RoomController) Evaluate(sched *schedule.RoomSchedule, now time.Time, eval schedule.ConditionEvaluator, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.heater == nil {
		r.noHeater.Do(func() {
			logger.L().Warnf("Room %v has no heater configured, skipping", r.name)
		})
		return
	}

	temp, ok := r.temperature.Value()
	if !ok {
		logger.L().Debugf("Room %v has no temperature reading yet", r.name)
		return
	}

	res := schedule.Resolve(sched, now, eval)
	if res.Effective == nil {
		logger.L().Debugf("Room %v: no qualifying track", r.name)
		return
	}
	target := res.Effective.Temperature

	heatingOn := r.currentHeating()
	desired := heatingOn
	switch {
	case !enabled:
		desired = false
	case heatingOn && temp >= target+r.hysteresis:
		desired = false
	case temp <= target-r.hysteresis:
		desired = true
	}

	if desired != heatingOn {
		if applied := r.heater.SetHeating(desired); applied {
			logger.L().Infof("Room %v: heating %v -> %v (T=%.1f, target=%.1f, %s)",
				r.name, heatingOn, desired, temp, target, res.Reason)
		}
	}

	r.updateState(RoomState{
		Room:          r.name,
		Temperature:   &temp,
		HeatingOn:     desired,
		ActiveTrackID: res.Effective.ID,
		UpdatedAt:     now,
	})
}

func (r *RoomController) currentHeating() bool {
	if !r.stateKnown {
		r.state.HeatingOn = r.probeHeater()
		r.stateKnown = true
	}
	return r.state.HeatingOn
}

// probeHeater discovers the initial actuator state without leaving heat on
// by accident. A confirmed state short-circuits; otherwise request ON, and
// if the actuator reports no transition it was already on. A real
// transition is undone immediately to restore the idle state.
func (r *RoomController) probeHeater() bool {
	if on, known := r.heater.IsOn(); known {
		return on
	}
	if applied := r.heater.SetHeating(true); !applied {
		return true
	}
	r.heater.SetHeating(false)
	return false
}

func (r *RoomController) updateState(next RoomState) {
	if r.state.equal(next) {
		return
	}
	r.state = next

	if r.store != nil {
		if err := r.store.UpsertRoomState(next.row()); err != nil {
			logger.L().Error(err)
		}
	}
	r.publishState(next)
}

func (r *RoomController) publishState(state RoomState) {
	if r.mqtt == nil {
		return
	}
	payload, err := json.Marshal(state)
	if err != nil {
		logger.L().Error(err)
		return
	}
	r.mqtt.SafePublish(r.stateTopic, mqttQoS, true, payload)
}
