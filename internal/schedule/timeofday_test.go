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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("06:30")
	require.NoError(t, err)
	assert.Equal(t, 6, tod.Hour)
	assert.Equal(t, 30, tod.Minute)
	assert.Equal(t, "06:30", tod.String())

	_, err = ParseTimeOfDay("24:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("12:60")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("noonish")
	assert.Error(t, err)
}

func TestTimeOfDay_Ordering(t *testing.T) {
	early := NewTimeOfDay(6, 0)
	late := NewTimeOfDay(21, 30)

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.After(early))
	assert.Equal(t, 21*60+30, late.MinuteOfDay())
}

func TestTimeOfDayFrom(t *testing.T) {
	instant := time.Date(2025, 3, 10, 14, 45, 59, 0, time.Local)
	assert.Equal(t, NewTimeOfDay(14, 45), TimeOfDayFrom(instant))
}
