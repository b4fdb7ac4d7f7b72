// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/testutil"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeConns int

func (f fakeConns) Len() int { return int(f) }

func TestHealth(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, nil, fakeConns(0))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %q", w.Body.String())
	}
}

func TestHealthDetailed(t *testing.T) {
	testCases := []struct {
		name           string
		pingErr        error
		mirror         Pinger
		expectedCode   int
		expectedStatus string
		expectedDB     string
		expectedMirror string
	}{
		{"healthy", nil, fakePinger{}, http.StatusOK, "ok", "ok", "ok"},
		{"mirror not configured", nil, nil, http.StatusOK, "ok", "ok", "disabled"},
		{"mirror without probe", nil, fakePinger{err: mirror.ErrDisabled}, http.StatusOK, "ok", "ok", "disabled"},
		{"mirror unreachable", nil, fakePinger{err: errors.New("permission denied")}, http.StatusOK, "degraded", "ok", "unreachable"},
		{"database down", errors.New("connection refused"), nil, http.StatusServiceUnavailable, "degraded", "unreachable", "disabled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(fakePinger{err: tc.pingErr}, tc.mirror, fakeConns(3))

			w := httptest.NewRecorder()
			h.Detailed(w, httptest.NewRequest("GET", "/health/detailed", nil))

			testutil.AssertStatus(t, w, tc.expectedCode)

			var resp HealthResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Status != tc.expectedStatus {
				t.Errorf("Expected status %q, got %q", tc.expectedStatus, resp.Status)
			}
			if resp.Database != tc.expectedDB {
				t.Errorf("Expected database %q, got %q", tc.expectedDB, resp.Database)
			}
			if resp.Mirror != tc.expectedMirror {
				t.Errorf("Expected mirror %q, got %q", tc.expectedMirror, resp.Mirror)
			}
			if resp.Connections != 3 {
				t.Errorf("Expected 3 connections, got %d", resp.Connections)
			}
			if resp.Started != "now" {
				t.Errorf("Expected started 'now', got %q", resp.Started)
			}
		})
	}
}
