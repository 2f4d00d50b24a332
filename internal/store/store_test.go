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

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s := Open(":memory:")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoomStateRoundTrip(t *testing.T) {
	s := openTestStore(t)

	temp := 18.5
	row := RoomStateRow{
		RoomName:    "office",
		Temperature: &temp,
		HeatingOn:   true,
		TrackID:     "morning",
		UpdatedAt:   time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.UpsertRoomState(row))

	got, err := s.GetRoomState("office")
	require.NoError(t, err)
	assert.Equal(t, "office", got.RoomName)
	require.NotNil(t, got.Temperature)
	assert.Equal(t, 18.5, *got.Temperature)
	assert.True(t, got.HeatingOn)
	assert.Equal(t, "morning", got.TrackID)
	assert.WithinDuration(t, row.UpdatedAt, got.UpdatedAt, time.Second)
}

func TestStore_RoomStateUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)

	temp := 18.5
	require.NoError(t, s.UpsertRoomState(RoomStateRow{
		RoomName: "office", Temperature: &temp, HeatingOn: true, TrackID: "a", UpdatedAt: time.Now(),
	}))
	// second write with no temperature reading clears the column
	require.NoError(t, s.UpsertRoomState(RoomStateRow{
		RoomName: "office", HeatingOn: false, TrackID: "b", UpdatedAt: time.Now(),
	}))

	got, err := s.GetRoomState("office")
	require.NoError(t, err)
	assert.Nil(t, got.Temperature)
	assert.False(t, got.HeatingOn)
	assert.Equal(t, "b", got.TrackID)
}

func TestStore_GetRoomStateMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRoomState("nowhere")
	assert.Error(t, err)
}

func TestStore_SensorValue(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.UpsertSensorValue("battery_soc", 81.5))
	require.NoError(t, s.UpsertSensorValue("battery_soc", 80.0))

	v, err := s.GetSensorValue("battery_soc")
	require.NoError(t, err)
	assert.Equal(t, 80.0, v)

	_, err = s.GetSensorValue("unknown")
	assert.Error(t, err)
}

func TestStore_SamplesBetween(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	// insert out of order, expect ordered result
	require.NoError(t, s.InsertSample("solar_power", base.Add(20*time.Minute), 900))
	require.NoError(t, s.InsertSample("solar_power", base, 1200))
	require.NoError(t, s.InsertSample("solar_power", base.Add(10*time.Minute), 1100))
	require.NoError(t, s.InsertSample("solar_power", base.Add(2*time.Hour), 300))
	require.NoError(t, s.InsertSample("battery_soc", base.Add(5*time.Minute), 80))

	samples, err := s.SamplesBetween("solar_power", base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 1200.0, samples[0].Value)
	assert.Equal(t, 1100.0, samples[1].Value)
	assert.Equal(t, 900.0, samples[2].Value)
	assert.WithinDuration(t, base, samples[0].Timestamp, time.Second)
}

func TestStore_PruneSamplesBefore(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertSample("solar_power", base.Add(-48*time.Hour), 100))
	require.NoError(t, s.InsertSample("solar_power", base.Add(-30*time.Hour), 200))
	require.NoError(t, s.InsertSample("solar_power", base, 300))

	pruned, err := s.PruneSamplesBefore(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, pruned)

	samples, err := s.SamplesBetween("solar_power", base.Add(-72*time.Hour), base)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 300.0, samples[0].Value)
}

func TestStore_ControllerValue(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetControllerValue("enabled", "true"))
	require.NoError(t, s.SetControllerValue("enabled", "false"))

	v, err := s.GetControllerValue("enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	_, err = s.GetControllerValue("missing")
	assert.Error(t, err)
}
