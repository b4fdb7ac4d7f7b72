// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the ledger database and creates its schema.

# Connecting

	conn, err := db.Open(db.TypeSQLite, "live-poll.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite connections get foreign keys, a busy timeout, and a sortable time
format, and are limited to one open connection.

# Schema Creation

CreateSchema applies the embedded migrations/*.up.sql files in order:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same files drive cmd/migrator for PostgreSQL deployments.

# Tables

  - poll: question, duration, status (OPEN/CLOSED), timestamps
  - option: answer choices per poll, ordered by position
  - vote: one row per student per poll

# Relationships

	poll 1──* option
	poll 1──* vote
	option 1──* vote

# Constraints

  - idx_poll_single_open: partial unique index, at most one OPEN poll
  - vote (poll_id, student_name) unique: one vote per student per poll
*/
package db
