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

	"github.com/antst/hscd/internal/store"
)

// RoomState is the last known actuation snapshot for one room. One per
// room, created on first evaluation and only ever replaced, never deleted.
type RoomState struct {
	Room          string    `json:"room"`
	Temperature   *float64  `json:"temperature"`
	HeatingOn     bool      `json:"heating_on"`
	ActiveTrackID string    `json:"active_track_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s RoomState) row() store.RoomStateRow {
	return store.RoomStateRow{
		RoomName:    s.Room,
		Temperature: s.Temperature,
		HeatingOn:   s.HeatingOn,
		TrackID:     s.ActiveTrackID,
		UpdatedAt:   s.UpdatedAt,
	}
}

func roomStateFromRow(row store.RoomStateRow) RoomState {
	return RoomState{
		Room:          row.RoomName,
		Temperature:   row.Temperature,
		HeatingOn:     row.HeatingOn,
		ActiveTrackID: row.TrackID,
		UpdatedAt:     row.UpdatedAt,
	}
}

func (s RoomState) equal(o RoomState) bool {
	if s.Room != o.Room || s.HeatingOn != o.HeatingOn || s.ActiveTrackID != o.ActiveTrackID {
		return false
	}
	if (s.Temperature == nil) != (o.Temperature == nil) {
		return false
	}
	if s.Temperature != nil && *s.Temperature != *o.Temperature {
		return false
	}
	return true
}
