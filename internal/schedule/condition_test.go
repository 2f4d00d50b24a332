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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func predicateWith(truthy map[ConditionType]bool) func(ConditionType) bool {
	return func(bit ConditionType) bool { return truthy[bit] }
}

func TestMeetsConditions_NoBitsAlwaysEligible(t *testing.T) {
	tr := NewTrack(20, NewTimeOfDay(6, 0))

	assert.True(t, tr.MeetsConditions(predicateWith(nil)))

	tr.Operator = OperatorAnd
	assert.True(t, tr.MeetsConditions(predicateWith(nil)))
}

func TestMeetsConditions_OrNeedsAnyPredicate(t *testing.T) {
	tr := NewTrack(20, NewTimeOfDay(6, 0))
	tr.Conditions = RoomInUse | PlentyOfPowerAvailable
	tr.Operator = OperatorOr

	assert.True(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{RoomInUse: true})))
	assert.True(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{PlentyOfPowerAvailable: true})))
	assert.False(t, tr.MeetsConditions(predicateWith(nil)))
}

func TestMeetsConditions_AndNeedsAllPredicates(t *testing.T) {
	tr := NewTrack(20, NewTimeOfDay(6, 0))
	tr.Conditions = RoomInUse | PlentyOfPowerAvailable
	tr.Operator = OperatorAnd

	assert.False(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{RoomInUse: true})))
	assert.True(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{
		RoomInUse:              true,
		PlentyOfPowerAvailable: true,
	})))
}

func TestMeetsConditions_SingleBit(t *testing.T) {
	tr := NewTrack(20, NewTimeOfDay(6, 0))
	tr.Conditions = RoomNotInUse

	assert.True(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{RoomNotInUse: true})))
	assert.False(t, tr.MeetsConditions(predicateWith(map[ConditionType]bool{RoomInUse: true})))
}

func TestParseConditionType(t *testing.T) {
	c, err := ParseConditionType("room_in_use|plenty_of_power")
	require.NoError(t, err)
	assert.Equal(t, RoomInUse|PlentyOfPowerAvailable, c)

	c, err = ParseConditionType("")
	require.NoError(t, err)
	assert.Equal(t, ConditionNone, c)

	_, err = ParseConditionType("room_haunted")
	assert.Error(t, err)
}

func TestParseConditionOperator(t *testing.T) {
	op, err := ParseConditionOperator("")
	require.NoError(t, err)
	assert.Equal(t, OperatorOr, op)

	op, err = ParseConditionOperator("and")
	require.NoError(t, err)
	assert.Equal(t, OperatorAnd, op)

	_, err = ParseConditionOperator("xor")
	assert.Error(t, err)
}
