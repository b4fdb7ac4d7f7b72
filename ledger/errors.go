// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrNoActivePoll     = errors.New("no active poll")
	ErrOptionNotFound   = errors.New("option not found")
	ErrDuplicateVote    = errors.New("duplicate vote")
	ErrOpenPollConflict = errors.New("open poll conflict")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"

	singleOpenIndex = "idx_poll_single_open"
	// SQLite names the indexed column rather than the index.
	singleOpenColumn = "poll.status"
)

// isOpenPollConflict reports whether err is a violation of the single OPEN
// poll index. Other unique violations (id collisions) are not retryable.
func isOpenPollConflict(err error) bool {
	if !isUniqueViolation(err) {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint == singleOpenIndex
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), singleOpenColumn)
	}

	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
		}
	}

	return false
}
