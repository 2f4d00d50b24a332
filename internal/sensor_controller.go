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
	"sync"
	"time"

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/safe_mqtt"
	"github.com/antst/hscd/internal/store"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const sensorClientPrefix = "hscd-sensor-"

// SensorController tracks one numeric MQTT signal: a room temperature, a
// plug's power draw, the battery charge percentage, solar generation or the
// electricity price. When series is set every reading is also recorded into
// the history store for later integration.
type SensorController struct {
	name        string
	lock        sync.RWMutex
	cfg         *config.SensorConfig
	mqtt        safe_mqtt.MqttClient
	store       *store.Store
	series      string
	value       float64
	timestamp   time.Time
	controlChan chan<- bool
}

func NewSensorController(
	name string, cfg *config.SensorConfig, mqttCfg *config.MQTTConfig, st *store.Store,
	series string, controlChan chan<- bool,
) *SensorController {
	s := &SensorController{
		name:        name,
		cfg:         cfg,
		store:       st,
		series:      series,
		timestamp:   zeroTS,
		controlChan: controlChan,
	}

	if s.readState() {
		logger.L().Debugf("Loaded previous state from DB for sensor %v: %v", s.name, s.value)
		s.timestamp = time.Now()
	}

	s.mqtt = safe_mqtt.InitMQTTClient(
		mqttCfg.URL, sensorClientPrefix+s.name+"-"+uuid.New().String(),
		&safe_mqtt.Auth{Username: mqttCfg.Username, Password: mqttCfg.Password},
	)
	s.mqtt.SafeSubscribe(cfg.Topic, mqttQoS, s.ValueUpdateHandler)

	return s
}

// Value returns the last reading; ok is false until the first one arrives.
func (s *SensorController) Value() (float64, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.value, s.timestamp.After(zeroTS)
}

func (s *SensorController) ValueUpdateHandler(client mqtt.Client, message mqtt.Message) {
	t0, err := extractF64PlainOrJson(message, s.cfg.JSONEntry)
	if err != nil {
		logger.L().Error(err)
		return
	}

	s.lock.Lock()
	oldValue, oldTS := s.value, s.timestamp
	s.value = t0*(*s.cfg.Scale) + (*s.cfg.Offset)
	s.timestamp = time.Now()
	newValue := s.value
	s.lock.Unlock()

	if err := s.writeState(); err != nil {
		logger.L().Error(err)
	}
	logger.L().Debugf("Got value for sensor %s : %f", s.name, newValue)
	if oldValue != newValue || !oldTS.After(zeroTS) {
		s.controlChan <- true
	}
}

func (s *SensorController) writeState() error {
	s.lock.RLock()
	value, ts := s.value, s.timestamp
	s.lock.RUnlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.UpsertSensorValue(s.name, value); err != nil {
		return err
	}
	if s.series != "" {
		return s.store.InsertSample(s.series, ts, value)
	}
	return nil
}

func (s *SensorController) readState() bool {
	if s.store == nil {
		return false
	}
	val, err := s.store.GetSensorValue(s.name)
	if err != nil {
		return false
	}
	s.value = val
	return true
}
