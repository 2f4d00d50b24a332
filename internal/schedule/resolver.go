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

import "time"

const (
	ReasonSchedule = "current schedule"
	ReasonPreHeat  = "pre-heating"
)

// Resolution is the outcome of resolving a room schedule at an instant.
// Effective is nil when no track qualifies at all, which suppresses
// actuation for the room.
type Resolution struct {
	Active    *Track
	PreHeat   *Track
	Effective *Track
	Reason    string
}

// Resolve finds the track driving the room's target at now.
//
// The active track is the qualifying track for today with the latest target
// time at or before now; when two qualifying tracks share a target time the
// one later in list order wins. If nothing qualifies today the scan repeats
// against yesterday with the time-of-day test dropped, so the last track of
// the previous day carries across midnight until one of today's supersedes
// it.
//
// A pre-heat candidate is a track for today whose target time is still
// ahead, with now inside its ramp-up window, and whose temperature is
// strictly above the active track's. Pre-heating never lowers the target.
// The soonest upcoming candidate wins. With no active track there is no
// baseline to compare against and pre-heating is skipped.
func Resolve(s *RoomSchedule, now time.Time, eval ConditionEvaluator) Resolution {
	if s == nil || len(s.Tracks) == 0 {
		return Resolution{}
	}

	nowMin := TimeOfDayFrom(now).MinuteOfDay()
	today := now.Weekday()
	yesterday := previousWeekday(today)

	active := latestQualifying(s, today, nowMin, true, eval)
	if active == nil {
		active = latestQualifying(s, yesterday, nowMin, false, eval)
	}
	if active == nil {
		return Resolution{}
	}

	pre := preHeatCandidate(s, today, nowMin, active, eval)

	res := Resolution{Active: active, PreHeat: pre, Effective: active, Reason: ReasonSchedule}
	if pre != nil && pre.Temperature > active.Temperature {
		res.Effective = pre
		res.Reason = ReasonPreHeat
	}
	return res
}

func previousWeekday(day time.Weekday) time.Weekday {
	if day == time.Sunday {
		return time.Saturday
	}
	return day - 1
}

func latestQualifying(s *RoomSchedule, day time.Weekday, nowMin int, checkTime bool, eval ConditionEvaluator) *Track {
	var best *Track
	for _, tr := range s.Tracks {
		if !tr.Days.Matches(day) {
			continue
		}
		if checkTime && tr.TargetTime.MinuteOfDay() > nowMin {
			continue
		}
		if eval != nil && !eval.Meets(s.Room, tr) {
			continue
		}
		// >= keeps the later list entry on equal target times
		if best == nil || tr.TargetTime.MinuteOfDay() >= best.TargetTime.MinuteOfDay() {
			best = tr
		}
	}
	return best
}

func preHeatCandidate(s *RoomSchedule, day time.Weekday, nowMin int, active *Track, eval ConditionEvaluator) *Track {
	var best *Track
	for _, tr := range s.Tracks {
		if !tr.Days.Matches(day) {
			continue
		}
		target := tr.TargetTime.MinuteOfDay()
		if target <= nowMin {
			continue
		}
		if nowMin < target-tr.rampUp() {
			continue
		}
		if tr.Temperature <= active.Temperature {
			continue
		}
		if eval != nil && !eval.Meets(s.Room, tr) {
			continue
		}
		if best == nil || target < best.TargetTime.MinuteOfDay() {
			best = tr
		}
	}
	return best
}
