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

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/safe_mqtt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const heaterClientPrefix = "hscd-heater-"

// HeatingActuator is the capability a room controller needs to drive heat.
// SetHeating is idempotent: it reports whether a real transition occurred.
type HeatingActuator interface {
	SetHeating(on bool) bool
	IsOn() (on bool, known bool)
}

// HeaterController drives one heating switch over MQTT. The switch's state
// topic (usually retained by the broker) feeds back the confirmed state, so
// repeated commands for the already-held state are suppressed.
type HeaterController struct {
	name  string
	lock  sync.Mutex
	cfg   *config.HeaterConfig
	mqtt  safe_mqtt.MqttClient
	on    bool
	known bool
}

func NewHeaterController(name string, cfg *config.HeaterConfig, mqttCfg *config.MQTTConfig) *HeaterController {
	h := &HeaterController{name: name, cfg: cfg}
	h.mqtt = safe_mqtt.InitMQTTClient(
		mqttCfg.URL, heaterClientPrefix+name+"-"+uuid.New().String(),
		&safe_mqtt.Auth{Username: mqttCfg.Username, Password: mqttCfg.Password},
	)
	if cfg.StateTopic != "" {
		h.mqtt.SafeSubscribe(cfg.StateTopic, mqttQoS, h.stateUpdateHandler)
	}
	return h
}

func (h *HeaterController) stateUpdateHandler(client mqtt.Client, message mqtt.Message) {
	payload := string(message.Payload())

	h.lock.Lock()
	defer h.lock.Unlock()
	switch payload {
	case h.cfg.PayloadOn:
		h.on, h.known = true, true
	case h.cfg.PayloadOff:
		h.on, h.known = false, true
	default:
		logger.L().Warnf("Heater %v: unexpected state payload `%v`", h.name, payload)
		return
	}
	logger.L().Debugf("Heater %v reported state: on=%v", h.name, h.on)
}

// SetHeating drives the switch to the desired state. Returns false when the
// confirmed state already matches, in which case nothing is published.
func (h *HeaterController) SetHeating(on bool) bool {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.known && h.on == on {
		return false
	}

	payload := h.cfg.PayloadOff
	if on {
		payload = h.cfg.PayloadOn
	}
	h.mqtt.SafePublishWait(h.cfg.CommandTopic, mqttQoS, false, payload)

	h.on, h.known = on, true
	return true
}

// IsOn reports the last confirmed switch state; known is false until the
// state topic has been heard at least once.
func (h *HeaterController) IsOn() (bool, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.on, h.known
}
