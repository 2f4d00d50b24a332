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
	"strings"

	"gopkg.in/yaml.v3"
)

// ConditionType is a bitmask of predicates gating a track. Bits are
// independent and can be combined on one track; how they combine is decided
// by the track's ConditionOperator.
type ConditionType uint8

const (
	PlentyOfPowerAvailable ConditionType = 1 << iota
	LowPowerAvailable
	RoomInUse
	RoomNotInUse
)

const ConditionNone ConditionType = 0

var conditionBits = []ConditionType{
	PlentyOfPowerAvailable,
	LowPowerAvailable,
	RoomInUse,
	RoomNotInUse,
}

var conditionNames = map[ConditionType]string{
	PlentyOfPowerAvailable: "plenty_of_power",
	LowPowerAvailable:      "low_power",
	RoomInUse:              "room_in_use",
	RoomNotInUse:           "room_not_in_use",
}

func (c ConditionType) String() string {
	if c == ConditionNone {
		return "none"
	}
	var parts []string
	for _, bit := range conditionBits {
		if c&bit != 0 {
			parts = append(parts, conditionNames[bit])
		}
	}
	return strings.Join(parts, "|")
}

// ParseConditionType parses a "|"-separated list of condition names. An
// empty string yields ConditionNone.
func ParseConditionType(s string) (ConditionType, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return ConditionNone, nil
	}
	var c ConditionType
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for bit, name := range conditionNames {
			if part == name {
				c |= bit
				found = true
				break
			}
		}
		if !found {
			return ConditionNone, fmt.Errorf("unknown condition `%v` in `%v`", part, s)
		}
	}
	return c, nil
}

func (c *ConditionType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseConditionType(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c ConditionType) MarshalYAML() (interface{}, error) {
	if c == ConditionNone {
		return "", nil
	}
	return c.String(), nil
}

// ConditionOperator governs how multiple set condition bits combine.
// The zero value is OR.
type ConditionOperator uint8

const (
	OperatorOr ConditionOperator = iota
	OperatorAnd
)

func (o ConditionOperator) String() string {
	if o == OperatorAnd {
		return "and"
	}
	return "or"
}

// ParseConditionOperator accepts "and"/"or"; an empty string defaults to OR.
func ParseConditionOperator(s string) (ConditionOperator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "or":
		return OperatorOr, nil
	case "and":
		return OperatorAnd, nil
	}
	return OperatorOr, fmt.Errorf("unknown condition operator `%v`", s)
}

func (o *ConditionOperator) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseConditionOperator(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o ConditionOperator) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// ConditionEvaluator decides whether a track's gating conditions hold for a
// room right now. Implementations query live signals.
type ConditionEvaluator interface {
	Meets(room Room, track *Track) bool
}
