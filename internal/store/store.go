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
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/antst/hscd/internal/history"
	"github.com/antst/hscd/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS room_state (
	room_name   TEXT PRIMARY KEY,
	temperature REAL,
	heating_on  INTEGER NOT NULL DEFAULT 0,
	track_id    TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS sensor_value (
	sensor_name TEXT PRIMARY KEY,
	value       REAL NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS sample (
	series TEXT NOT NULL,
	ts     TIMESTAMP NOT NULL,
	value  REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sample_series_ts ON sample(series, ts);
CREATE TABLE IF NOT EXISTS controller (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store is the sqlite persistence layer: last room/sensor state across
// restarts, controller flags, and the sensor sample series feeding the
// integrator.
type Store struct {
	db *sqlx.DB
}

func Open(dbFile string) *Store {
	db, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		logger.L().Panic(err)
	}
	if err := db.Ping(); err != nil {
		logger.L().Panicf("%s: %v", dbFile, err)
	}

	// sqlite: single writer
	db.SetMaxOpenConns(1)

	db.MustExec(schema)

	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RoomStateRow mirrors the room_state table.
type RoomStateRow struct {
	RoomName    string    `db:"room_name"`
	Temperature *float64  `db:"temperature"`
	HeatingOn   bool      `db:"heating_on"`
	TrackID     string    `db:"track_id"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (s *Store) UpsertRoomState(row RoomStateRow) error {
	const query = `
		INSERT INTO room_state(room_name,temperature,heating_on,track_id,updated_at)
		VALUES($1,$2,$3,$4,$5)
		ON CONFLICT(room_name) DO UPDATE SET
		temperature=excluded.temperature,
		heating_on=excluded.heating_on,
		track_id=excluded.track_id,
		updated_at=excluded.updated_at;`
	_, err := s.db.Exec(query, row.RoomName, row.Temperature, row.HeatingOn, row.TrackID, row.UpdatedAt)
	return errors.Wrapf(err, "upsert room state `%v`", row.RoomName)
}

func (s *Store) GetRoomState(roomName string) (RoomStateRow, error) {
	const query = `SELECT room_name,temperature,heating_on,track_id,updated_at FROM room_state WHERE room_name=$1;`
	var row RoomStateRow
	if err := s.db.Get(&row, query, roomName); err != nil {
		return RoomStateRow{}, errors.Wrapf(err, "get room state `%v`", roomName)
	}
	return row, nil
}

func (s *Store) UpsertSensorValue(sensorName string, value float64) error {
	const query = `
		INSERT INTO sensor_value(sensor_name,value,updated_at)
		VALUES($1,$2,$3)
		ON CONFLICT(sensor_name) DO UPDATE SET
		value=excluded.value,
		updated_at=excluded.updated_at;`
	_, err := s.db.Exec(query, sensorName, value, time.Now())
	return errors.Wrapf(err, "upsert sensor value `%v`", sensorName)
}

func (s *Store) GetSensorValue(sensorName string) (float64, error) {
	const query = `SELECT value FROM sensor_value WHERE sensor_name=$1;`
	var value float64
	if err := s.db.Get(&value, query, sensorName); err != nil {
		return 0, errors.Wrapf(err, "get sensor value `%v`", sensorName)
	}
	return value, nil
}

func (s *Store) InsertSample(series string, ts time.Time, value float64) error {
	const query = `INSERT INTO sample(series,ts,value) VALUES($1,$2,$3);`
	_, err := s.db.Exec(query, series, ts, value)
	return errors.Wrapf(err, "insert sample `%v`", series)
}

// SamplesBetween returns the series samples in [from, to], ordered by
// timestamp.
func (s *Store) SamplesBetween(series string, from, to time.Time) ([]history.Sample, error) {
	const query = `SELECT ts,value FROM sample WHERE series=$1 AND ts>=$2 AND ts<=$3 ORDER BY ts;`
	var rows []struct {
		TS    time.Time `db:"ts"`
		Value float64   `db:"value"`
	}
	if err := s.db.Select(&rows, query, series, from, to); err != nil {
		return nil, errors.Wrapf(err, "samples for `%v`", series)
	}
	samples := make([]history.Sample, len(rows))
	for i, r := range rows {
		samples[i] = history.Sample{Timestamp: r.TS, Value: r.Value}
	}
	return samples, nil
}

// PruneSamplesBefore drops samples older than cutoff and returns how many
// rows went away.
func (s *Store) PruneSamplesBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sample WHERE ts<$1;`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "prune samples")
	}
	return res.RowsAffected()
}

func (s *Store) SetControllerValue(name, value string) error {
	const query = `
		INSERT INTO controller(name,value) VALUES($1,$2)
		ON CONFLICT(name) DO UPDATE SET value=excluded.value;`
	_, err := s.db.Exec(query, name, value)
	return errors.Wrapf(err, "set controller value `%v`", name)
}

func (s *Store) GetControllerValue(name string) (string, error) {
	const query = `SELECT value FROM controller WHERE name=$1;`
	var value string
	if err := s.db.Get(&value, query, name); err != nil {
		return "", errors.Wrapf(err, "get controller value `%v`", name)
	}
	return value, nil
}
