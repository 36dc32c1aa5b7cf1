// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/qustavo/sqlhooks/v2"

	"github.com/trackside/simtelemetry/pkg/log"
)

// hooks instruments every query with a debug-level log line and its
// duration, the way the teacher's query instrumentation does.
type hooks struct{}

type ctxKey string

const startedAtKey ctxKey = "started_at"

func (hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	return context.WithValue(ctx, startedAtKey, time.Now()), nil
}

func (hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	if start, ok := ctx.Value(startedAtKey).(time.Time); ok {
		log.Debugf("repository: query took %s: %s", time.Since(start), query)
	}
	return ctx, nil
}

func init() {
	sql.Register("sqlite3WithHooks", sqlhooks.Wrap(&sqlite3.SQLiteDriver{}, hooks{}))
}

// Open connects to a sqlite database through the instrumented driver. The
// ingestion pipeline never needs more than one open connection to sqlite;
// a single connection avoids SQLITE_BUSY under concurrent batch flushes.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3WithHooks", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("repository: ping %s: %w", dsn, err)
	}
	return db, nil
}

// Schema creates the two telemetry tables if they do not already exist.
// Connection-pool construction and full migration tooling are out of
// scope; this only establishes the insert contract's target shape.
const Schema = `
CREATE TABLE IF NOT EXISTS forza_telemetry (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	received_at INTEGER NOT NULL,
	is_race_on INTEGER NOT NULL,
	car_id INTEGER NOT NULL,
	car_class INTEGER NOT NULL,
	drive_type INTEGER NOT NULL,
	speed REAL,
	current_lap REAL,
	lap_number INTEGER,
	race_position INTEGER
);

CREATE TABLE IF NOT EXISTS f1_telemetry (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	received_at INTEGER NOT NULL,
	packet_format INTEGER NOT NULL,
	packet_id INTEGER NOT NULL,
	session_uid INTEGER NOT NULL,
	session_time REAL,
	frame_identifier INTEGER
);
`

// Migrate applies Schema. Safe to call repeatedly.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("repository: migrate: %w", err)
	}
	return nil
}
