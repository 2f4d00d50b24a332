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
	"time"

	"gopkg.in/yaml.v3"
)

// Days is a bitmask of weekdays a track applies to. The zero value is a
// wildcard: a track with unspecified days matches every day. This is
// distinct from the explicit Everyday union, which also matches every day.
type Days uint8

const (
	Monday Days = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const (
	DaysUnspecified Days = 0
	Weekdays             = Monday | Tuesday | Wednesday | Thursday | Friday
	Weekends             = Saturday | Sunday
	NotSunday            = Weekdays | Saturday
	Everyday             = Weekdays | Weekends
)

var dayNames = []struct {
	mask Days
	name string
}{
	{Everyday, "everyday"},
	{Weekdays, "weekdays"},
	{Weekends, "weekends"},
	{NotSunday, "not_sunday"},
	{Monday, "mon"},
	{Tuesday, "tue"},
	{Wednesday, "wed"},
	{Thursday, "thu"},
	{Friday, "fri"},
	{Saturday, "sat"},
	{Sunday, "sun"},
}

func dayBit(day time.Weekday) Days {
	if day == time.Sunday {
		return Sunday
	}
	return Monday << (uint(day) - 1)
}

// Matches reports whether the mask covers the given weekday. An unspecified
// mask is a wildcard and matches any day.
func (d Days) Matches(day time.Weekday) bool {
	if d == DaysUnspecified {
		return true
	}
	return d&dayBit(day) != 0
}

func (d Days) String() string {
	if d == DaysUnspecified {
		return "unspecified"
	}
	var parts []string
	rest := d
	for _, e := range dayNames {
		if rest&e.mask == e.mask {
			parts = append(parts, e.name)
			rest &^= e.mask
		}
	}
	return strings.Join(parts, "|")
}

// ParseDays parses a "|"-separated list of day names or unions, e.g.
// "mon|tue" or "weekdays". An empty string yields the wildcard.
func ParseDays(s string) (Days, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "unspecified" {
		return DaysUnspecified, nil
	}
	var d Days
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for _, e := range dayNames {
			if part == e.name {
				d |= e.mask
				found = true
				break
			}
		}
		if !found {
			return DaysUnspecified, fmt.Errorf("unknown day `%v` in `%v`", part, s)
		}
	}
	return d, nil
}

func (d *Days) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseDays(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Days) MarshalYAML() (interface{}, error) {
	if d == DaysUnspecified {
		return "", nil
	}
	return d.String(), nil
}
