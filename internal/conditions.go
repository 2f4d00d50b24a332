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
	"time"

	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/schedule"
)

// PowerSource answers the surplus-power question for the condition bits.
type PowerSource interface {
	HavePlentyOfPowerAvailable(now time.Time) bool
}

// OccupancyOracle answers whether a room is currently in use.
type OccupancyOracle interface {
	IsRoomOccupied(room schedule.Room) bool
}

// ConditionEvaluator gates schedule tracks on live power and occupancy
// signals, combining multiple condition bits with the track's operator.
type ConditionEvaluator struct {
	Power     PowerSource
	Occupancy OccupancyOracle
	Now       func() time.Time
}

func (e *ConditionEvaluator) Meets(room schedule.Room, track *schedule.Track) bool {
	return track.MeetsConditions(func(bit schedule.ConditionType) bool {
		switch bit {
		case schedule.PlentyOfPowerAvailable:
			return e.Power.HavePlentyOfPowerAvailable(e.Now())
		case schedule.LowPowerAvailable:
			return !e.Power.HavePlentyOfPowerAvailable(e.Now())
		case schedule.RoomInUse:
			return e.Occupancy.IsRoomOccupied(room)
		case schedule.RoomNotInUse:
			return !e.Occupancy.IsRoomOccupied(room)
		}
		logger.L().Errorf("Unknown condition bit %v on track %v", bit, track.ID)
		return false
	})
}
