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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antst/hscd/internal/config"
	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/safe_mqtt"
	"github.com/antst/hscd/internal/schedule"
	"github.com/antst/hscd/internal/store"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	debounceDuration   = 50 * time.Millisecond
	evaluationInterval = 5 * time.Minute
	startupDelay       = time.Second
	sampleRetention    = 24 * time.Hour
)

// HeatingController wires the whole control loop: sensor and power change
// notifications, the periodic re-evaluation ticker and the startup pass all
// funnel into per-room evaluations. Rooms evaluate independently; a failure
// in one never reaches another.
type HeatingController struct {
	cfg       *config.Config
	store     *store.Store
	mqtt      safe_mqtt.MqttClient
	grid      *GridController
	power     *PowerEstimator
	evaluator *ConditionEvaluator

	rooms map[schedule.Room]*RoomController

	schedMu   sync.RWMutex
	schedules map[schedule.Room]*schedule.RoomSchedule

	pendingMu sync.Mutex
	pending   map[*RoomController]bool
	enabled   bool

	roomChan  chan *RoomController
	powerChan chan bool
	forceChan chan bool

	nowFunc func() time.Time
}

func NewHeatingController() *HeatingController {
	cfg := config.Get()
	c := &HeatingController{
		cfg:       cfg,
		rooms:     make(map[schedule.Room]*RoomController),
		schedules: make(map[schedule.Room]*schedule.RoomSchedule),
		pending:   make(map[*RoomController]bool),
		roomChan:  make(chan *RoomController, 100),
		powerChan: make(chan bool, 3),
		forceChan: make(chan bool, 2),
		nowFunc:   time.Now,
	}

	c.mqtt = safe_mqtt.InitMQTTClient(
		cfg.MQTTConfig.URL, "hscd-"+uuid.New().String(),
		&safe_mqtt.Auth{Username: cfg.MQTTConfig.Username, Password: cfg.MQTTConfig.Password},
	)
	c.setupMQTTSubscriptions()
	c.store = store.Open(cfg.DBFile)
	c.grid = NewGridController(cfg.Power, cfg.MQTTConfig, c.store, c.powerChan)
	c.power = NewPowerEstimator(c.store, c.grid, cfg.Power)
	c.evaluator = &ConditionEvaluator{
		Power:     c.power,
		Occupancy: c,
		Now:       func() time.Time { return c.nowFunc() },
	}
	c.initializeRooms()
	c.setEnabled(c.readValueWithDefault("enabled", "true"))
	c.setScheduleMap(c.cfg.BuildSchedules())
	return c
}

func (c *HeatingController) setupMQTTSubscriptions() {
	controlTopic := c.cfg.MQTTConfig.ControlTopic
	c.mqtt.SafeSubscribe(controlTopic+"/log_level", mqttQoS, c.controlUpdateHandler)
	c.mqtt.SafeSubscribe(controlTopic+"/enable", mqttQoS, c.controlUpdateHandler)
}

func (c *HeatingController) initializeRooms() {
	for name, rc := range c.cfg.Rooms {
		room, err := schedule.ParseRoom(name)
		if err != nil {
			logger.L().Errorf("Skipping room config: %v", err)
			continue
		}
		c.rooms[room] = newRoomController(
			name, room, rc, c.cfg.MQTTConfig, c.store, c.roomChan, *c.cfg.HysteresisOffset,
		)
	}
}

// IsRoomOccupied implements the occupancy oracle for condition evaluation.
func (c *HeatingController) IsRoomOccupied(room schedule.Room) bool {
	rc, ok := c.rooms[room]
	return ok && rc.Occupied()
}

// SetSchedules replaces the schedule set wholesale and queues a
// re-evaluation of every room.
func (c *HeatingController) SetSchedules(schedules []*schedule.RoomSchedule) {
	c.setScheduleMap(schedules)
	select {
	case c.forceChan <- true:
	default:
	}
}

// EvaluateAllSchedules replaces the schedule set and evaluates every room
// synchronously. It always completes normally; all failures are logged and
// contained per room.
func (c *HeatingController) EvaluateAllSchedules(schedules []*schedule.RoomSchedule) {
	c.setScheduleMap(schedules)
	c.markAll()
	c.evaluatePending()
}

func (c *HeatingController) setScheduleMap(schedules []*schedule.RoomSchedule) {
	m := make(map[schedule.Room]*schedule.RoomSchedule, len(schedules))
	for _, s := range schedules {
		s.FillDefaults()
		if _, dup := m[s.Room]; dup {
			logger.L().Warnf("Duplicate schedule for %v, keeping the later one", s.Room)
		}
		m[s.Room] = s
	}
	c.schedMu.Lock()
	c.schedules = m
	c.schedMu.Unlock()
}

func (c *HeatingController) scheduleFor(room schedule.Room) *schedule.RoomSchedule {
	c.schedMu.RLock()
	defer c.schedMu.RUnlock()
	return c.schedules[room]
}

// RoomStates returns a snapshot of every room's last known state, for
// external persistence and UI.
func (c *HeatingController) RoomStates() []RoomState {
	states := make([]RoomState, 0, len(c.rooms))
	for _, r := range c.rooms {
		states = append(states, r.State())
	}
	return states
}

func (c *HeatingController) Run() {
	timer := time.NewTimer(startupDelay)
	ticker := time.NewTicker(evaluationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.forceChan:
			c.markAll()
			c.resetTimer(timer)
		case r := <-c.roomChan:
			c.markPending(r)
			c.resetTimer(timer)
		case <-c.powerChan:
			// power and price shifts can flip track conditions anywhere
			c.markAll()
			c.resetTimer(timer)
		case <-timer.C:
			c.evaluatePending()
		case <-ticker.C:
			c.markAll()
			c.evaluatePending()
			c.pruneSamples()
		}
	}
}

func (c *HeatingController) resetTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}

func (c *HeatingController) markPending(r *RoomController) {
	c.pendingMu.Lock()
	c.pending[r] = true
	c.pendingMu.Unlock()
}

func (c *HeatingController) markAll() {
	c.pendingMu.Lock()
	for _, r := range c.rooms {
		c.pending[r] = true
	}
	c.pendingMu.Unlock()
}

func (c *HeatingController) evaluatePending() {
	now := c.nowFunc()
	enabled := c.isEnabled()

	c.pendingMu.Lock()
	batch := make([]*RoomController, 0, len(c.pending))
	for r, p := range c.pending {
		if p {
			batch = append(batch, r)
			c.pending[r] = false
		}
	}
	c.pendingMu.Unlock()

	var wg sync.WaitGroup
	for _, r := range batch {
		sched := c.scheduleFor(r.room)
		if sched == nil {
			continue
		}
		wg.Add(1)
		go func(r *RoomController, s *schedule.RoomSchedule) {
			defer wg.Done()
			defer func() {
				if err := recover(); err != nil {
					logger.L().Errorf("Room %v evaluation failed: %v", r.name, err)
				}
			}()
			r.Evaluate(s, now, c.evaluator, enabled)
		}(r, sched)
	}
	wg.Wait()
}

func (c *HeatingController) pruneSamples() {
	n, err := c.store.PruneSamplesBefore(c.nowFunc().Add(-sampleRetention))
	if err != nil {
		logger.L().Error(err)
		return
	}
	if n > 0 {
		logger.L().Debugf("Pruned %d old samples", n)
	}
}

func (c *HeatingController) controlUpdateHandler(client mqtt.Client, message mqtt.Message) {
	topic := message.Topic()[strings.LastIndex(message.Topic(), "/")+1:]
	logger.L().Infof("main: Got MQTT control request: %v : %v", topic, string(message.Payload()))
	switch topic {
	case "log_level":
		if err := c.cfg.LogLevel.Set(string(message.Payload())); err != nil {
			logger.L().Errorf("Wrong log level `%v`", string(message.Payload()))
		} else {
			logger.SetLogLevel(c.cfg.LogLevel)
			logger.L().Infof("Updated loglevel to `%v`", c.cfg.LogLevel.String())
		}
	case "enable":
		c.setEnabled(string(message.Payload()))
	}
}

func (c *HeatingController) setEnabled(val string) {
	var enabled bool
	switch strings.ToLower(val) {
	case "true", "on":
		enabled = true
	case "false", "off":
		enabled = false
	default:
		logger.L().Warnf("Invalid value for enable: %v", val)
		return
	}

	state := "OFF"
	if enabled {
		state = "ON"
	}
	c.mqtt.SafePublish(c.cfg.MQTTConfig.ControlTopic+"/active", mqttQoS, true, state)

	c.pendingMu.Lock()
	c.enabled = enabled
	c.pendingMu.Unlock()

	if err := c.writeValue("enabled", strconv.FormatBool(enabled)); err != nil {
		logger.L().Error(err)
	}
	select {
	case c.forceChan <- true:
	default:
	}
}

func (c *HeatingController) isEnabled() bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return c.enabled
}

func (c *HeatingController) writeValue(name, value string) error {
	return c.store.SetControllerValue(name, value)
}

func (c *HeatingController) readValueWithDefault(name, defValue string) string {
	val, err := c.store.GetControllerValue(name)
	if err != nil {
		val = defValue
	}
	return val
}
