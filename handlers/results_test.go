// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/testutil"
)

func TestCurrentPoll_None(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.manager, env.tracker)

	w := httptest.NewRecorder()
	handler.CurrentPoll(w, httptest.NewRequest("GET", "/api/polls/current", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "null" {
		t.Errorf("Expected null, got %s", body)
	}
}

func TestCurrentPoll_WithVotes(t *testing.T) {
	env := newTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.db, "Q", 60, time.Now(), "A", "B")
	ctx := context.Background()

	for _, name := range []string{"Ann", "Bob"} {
		if _, err := env.pipeline.SubmitVote(ctx, models.SubmitVoteRequest{
			PollID: poll.ID, StudentName: name, OptionID: poll.Options[1].ID,
		}); err != nil {
			t.Fatal(err)
		}
	}

	handler := NewResultsHandler(env.manager, env.tracker)
	w := httptest.NewRecorder()
	handler.CurrentPoll(w, httptest.NewRequest("GET", "/api/polls/current", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.CurrentPollResponse
	testutil.AssertJSON(t, w, &got)
	if got.ID != poll.ID {
		t.Errorf("Expected poll %s, got %s", poll.ID, got.ID)
	}
	if got.Options[0].Votes != 0 || got.Options[1].Votes != 2 {
		t.Errorf("Unexpected counts %+v", got.Options)
	}
}

func TestCurrentPoll_TimeLeft(t *testing.T) {
	env := newTestEnv(t)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	testutil.CreateTestPoll(t, env.db, "Q", 60, created, "A", "B")

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"just opened", created, 60},
		{"partway", created.Add(15500 * time.Millisecond), 44},
		{"expired", created.Add(2 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewResultsHandler(env.manager, env.tracker)
			handler.now = func() time.Time { return tt.now }

			w := httptest.NewRecorder()
			handler.CurrentPoll(w, httptest.NewRequest("GET", "/api/polls/current", nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			var got models.CurrentPollResponse
			testutil.AssertJSON(t, w, &got)
			if got.SecondsLeft != tt.want {
				t.Errorf("timeLeft = %d, want %d", got.SecondsLeft, tt.want)
			}
			if got.Status != models.StatusOpen {
				t.Errorf("Expected expired poll to stay OPEN, got %s", got.Status)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.manager, env.tracker)

	w := httptest.NewRecorder()
	handler.History(w, httptest.NewRequest("GET", "/api/polls/history", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}

	base := time.Now().Add(-time.Hour)
	q1 := testutil.CreateTestPoll(t, env.db, "Q1", 60, base, "A", "B")
	q2 := testutil.CreateTestPoll(t, env.db, "Q2", 60, base.Add(time.Minute), "A", "B")
	testutil.CreateTestPoll(t, env.db, "Q3", 60, base.Add(2*time.Minute), "A", "B")

	w = httptest.NewRecorder()
	handler.History(w, httptest.NewRequest("GET", "/api/polls/history", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var history []models.Poll
	testutil.AssertJSON(t, w, &history)
	if len(history) != 2 {
		t.Fatalf("Expected 2 closed polls, got %d", len(history))
	}
	if history[0].ID != q2.ID || history[1].ID != q1.ID {
		t.Error("Expected history newest first")
	}
	for _, p := range history {
		if p.Status != models.StatusClosed || p.ClosedAt == nil {
			t.Errorf("Expected closed poll, got %+v", p)
		}
	}
}

func TestParticipants(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.manager, env.tracker)

	env.tracker.Join("c1", "Bob")
	env.tracker.Join("c2", "Ann")
	env.tracker.Join("c3", "Ann")

	w := httptest.NewRecorder()
	handler.Participants(w, httptest.NewRequest("GET", "/api/participants", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var roster []string
	testutil.AssertJSON(t, w, &roster)
	if len(roster) != 2 || roster[0] != "Ann" || roster[1] != "Bob" {
		t.Errorf("Unexpected roster %v", roster)
	}
}
