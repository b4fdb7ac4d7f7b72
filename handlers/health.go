// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/mirror"
)

// Pinger reports whether a store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionCounter reports the number of live socket connections.
type ConnectionCounter interface {
	Len() int
}

type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Mirror      string `json:"mirror"`
	Connections int    `json:"connections"`
	Started     string `json:"started"`
}

type HealthHandler struct {
	db      Pinger
	mirror  Pinger
	conns   ConnectionCounter
	started time.Time
}

// NewHealthHandler builds the health handler. secondary may be nil when no
// mirror is configured.
func NewHealthHandler(db, secondary Pinger, conns ConnectionCounter) *HealthHandler {
	return &HealthHandler{
		db:      db,
		mirror:  secondary,
		conns:   conns,
		started: time.Now(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Detailed handles GET /health/detailed
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:      "ok",
		Database:    "ok",
		Mirror:      "disabled",
		Connections: h.conns.Len(),
		Started:     humanize.Time(h.started),
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check: database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	// The mirror is best-effort; a failure degrades the report but not the status code.
	if h.mirror != nil {
		switch err := h.mirror.Ping(ctx); {
		case err == nil:
			resp.Mirror = "ok"
		case errors.Is(err, mirror.ErrDisabled):
		default:
			slog.Warn("health check: mirror ping failed", "error", err)
			resp.Status = "degraded"
			resp.Mirror = "unreachable"
		}
	}

	middleware.JSONResponse(w, status, resp)
}
