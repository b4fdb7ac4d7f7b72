// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-poll/cliparse"
	"github.com/danielhkuo/live-poll/db"
	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/realtime"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "live-poll.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.CreateSchema(database); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    db.TypeSQLite,
		Env:             "local",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: time.Second,
	}
}

// CreateTestPoll inserts an OPEN poll directly, closing any previous one,
// and returns it. createdAt lets tests place the poll in the past.
func CreateTestPoll(t *testing.T, database *sql.DB, question string, duration int, createdAt time.Time, options ...string) models.Poll {
	t.Helper()

	poll := models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Duration:  duration,
		Status:    models.StatusOpen,
		CreatedAt: createdAt.UTC(),
		Options:   []models.Option{},
	}

	if _, err := database.Exec(`UPDATE poll SET status = $1, closed_at = $2 WHERE status = $3`,
		models.StatusClosed, time.Now().UTC(), models.StatusOpen); err != nil {
		t.Fatalf("Failed to close open polls: %v", err)
	}

	if _, err := database.Exec(`
		INSERT INTO poll (id, question, duration, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, poll.ID, poll.Question, poll.Duration, poll.Status, poll.CreatedAt); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, text := range options {
		opt := models.Option{ID: uuid.NewString(), PollID: poll.ID, Text: text}
		if _, err := database.Exec(`
			INSERT INTO option (id, poll_id, text, is_correct, position)
			VALUES ($1, $2, $3, $4, $5)
		`, opt.ID, opt.PollID, opt.Text, false, i); err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	return poll
}

// CountVotes returns the number of vote rows stored for an option.
func CountVotes(t *testing.T, database *sql.DB, optionID string) int {
	t.Helper()

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM vote WHERE option_id = $1`, optionID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// Recorder is a realtime.Publisher that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *Recorder) Publish(ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]realtime.Event(nil), r.events...)
}

// Named returns the published events with the given name, in order.
func (r *Recorder) Named(name string) []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []realtime.Event
	for _, ev := range r.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// MirrorRecorder is a mirror.Replicator and mirror.Sink that keeps every
// event in memory.
type MirrorRecorder struct {
	mu     sync.Mutex
	events []mirror.Event
}

func (m *MirrorRecorder) Mirror(ev mirror.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *MirrorRecorder) Write(_ context.Context, ev mirror.Event) error {
	m.Mirror(ev)
	return nil
}

func (m *MirrorRecorder) Events() []mirror.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mirror.Event(nil), m.events...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
