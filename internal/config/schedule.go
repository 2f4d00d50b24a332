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

import (
	"github.com/antst/hscd/internal/logger"
	"github.com/antst/hscd/internal/schedule"
)

// ScheduleConfig is the on-disk form of a room schedule. The core consumes
// parsed schedule.RoomSchedule values; this is the loader feeding it.
type ScheduleConfig struct {
	Room   schedule.Room     `yaml:"room"`
	Tracks []*schedule.Track `yaml:"tracks"`
	Boost  *schedule.Boost   `yaml:"boost,omitempty"`
}

func (s *ScheduleConfig) FillDefaults() {
	for _, t := range s.Tracks {
		t.FillDefaults()
	}
}

// BuildSchedules converts the configured schedule set into the in-memory
// form, dropping entries that fail validation.
func (cfg *Config) BuildSchedules() []*schedule.RoomSchedule {
	out := make([]*schedule.RoomSchedule, 0, len(cfg.Schedules))
	for _, sc := range cfg.Schedules {
		rs := &schedule.RoomSchedule{
			Room:   sc.Room,
			Tracks: sc.Tracks,
			Boost:  sc.Boost,
		}
		rs.FillDefaults()
		if err := rs.Validate(); err != nil {
			logger.L().Errorf("Dropping schedule for %v: %v", sc.Room, err)
			continue
		}
		out = append(out, rs)
	}
	return out
}
