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

// Room identifies a heated room. Values are single bits so rooms can be
// grouped in masks, but each schedule targets exactly one room.
type Room uint16

const (
	LivingRoom Room = 1 << iota
	Kitchen
	DiningRoom
	Bedroom
	GuestRoom
	Nursery
	Office
	Bathroom
	Hallway
	Attic
)

const RoomNone Room = 0

var roomNames = map[Room]string{
	LivingRoom: "living_room",
	Kitchen:    "kitchen",
	DiningRoom: "dining_room",
	Bedroom:    "bedroom",
	GuestRoom:  "guest_room",
	Nursery:    "nursery",
	Office:     "office",
	Bathroom:   "bathroom",
	Hallway:    "hallway",
	Attic:      "attic",
}

func (r Room) String() string {
	if name, ok := roomNames[r]; ok {
		return name
	}
	return fmt.Sprintf("room(%#x)", uint16(r))
}

func ParseRoom(s string) (Room, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for room, name := range roomNames {
		if s == name {
			return room, nil
		}
	}
	return RoomNone, fmt.Errorf("unknown room `%v`", s)
}

func (r *Room) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseRoom(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Room) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}
