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

package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultRampUpMinutes = 30

// Track is one schedule entry: a target temperature that takes effect at a
// wall-clock time on the days the mask covers, gated by its conditions.
type Track struct {
	ID            string            `yaml:"id,omitempty"`
	Temperature   float64           `yaml:"temperature"`
	TargetTime    TimeOfDay         `yaml:"time"`
	RampUpMinutes *int              `yaml:"ramp_up_minutes,omitempty"`
	Days          Days              `yaml:"days,omitempty"`
	Conditions    ConditionType     `yaml:"conditions,omitempty"`
	Operator      ConditionOperator `yaml:"operator,omitempty"`
}

// NewTrack builds a track with the required fields and defaults filled.
func NewTrack(temperature float64, target TimeOfDay) *Track {
	t := &Track{Temperature: temperature, TargetTime: target}
	t.FillDefaults()
	return t
}

func (t *Track) FillDefaults() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.RampUpMinutes == nil {
		v := defaultRampUpMinutes
		t.RampUpMinutes = &v
	}
}

func (t *Track) Validate() error {
	if t.RampUpMinutes != nil && *t.RampUpMinutes < 0 {
		return fmt.Errorf("track %s: negative ramp-up window %d", t.ID, *t.RampUpMinutes)
	}
	return nil
}

func (t *Track) rampUp() int {
	if t.RampUpMinutes == nil {
		return defaultRampUpMinutes
	}
	return *t.RampUpMinutes
}

// MeetsConditions evaluates each set condition bit with predicate and
// combines the results with the track's operator. A track with no condition
// bits is unconditionally eligible regardless of operator.
func (t *Track) MeetsConditions(predicate func(ConditionType) bool) bool {
	meetsAny := t.Conditions == ConditionNone
	meetsAll := true
	for _, bit := range conditionBits {
		if t.Conditions&bit == 0 {
			continue
		}
		ok := predicate(bit)
		meetsAny = meetsAny || ok
		meetsAll = meetsAll && ok
	}
	if t.Operator == OperatorAnd {
		return meetsAll
	}
	return meetsAny
}

// Boost is a manual temporary target overriding the schedule for a bounded
// window. Carried in the data model for persistence; not evaluated by the
// resolver.
type Boost struct {
	Start       time.Time `yaml:"start"`
	End         time.Time `yaml:"end"`
	Temperature float64   `yaml:"temperature"`
}

// RoomSchedule is the ordered track list for one room. Replaced wholesale
// when a new schedule set is loaded; never mutated in place.
type RoomSchedule struct {
	ID     string   `yaml:"id,omitempty"`
	Room   Room     `yaml:"room"`
	Tracks []*Track `yaml:"tracks"`
	Boost  *Boost   `yaml:"boost,omitempty"`
	// Condition reserves per-schedule gating; always-true for now and not
	// consulted by the resolver.
	Condition ConditionType `yaml:"condition,omitempty"`
}

func (s *RoomSchedule) FillDefaults() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	for _, t := range s.Tracks {
		t.FillDefaults()
	}
}

func (s *RoomSchedule) Validate() error {
	for _, t := range s.Tracks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("schedule %s: %w", s.ID, err)
		}
	}
	return nil
}
