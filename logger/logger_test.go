// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNew_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	log := New(EnvProd, &buf)

	log.Info("poll created", "poll_id", "p1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "poll created" {
		t.Errorf("expected msg 'poll created', got %v", line["msg"])
	}
	if line["poll_id"] != "p1" {
		t.Errorf("expected poll_id p1, got %v", line["poll_id"])
	}
}

func TestNew_LevelByEnv(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
	}{
		{EnvLocal, true},
		{EnvDev, true},
		{EnvProd, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.env, &buf)

			log.Debug("late vote accepted")
			got := buf.Len() > 0
			if got != tt.wantDebug {
				t.Errorf("env %q: debug logged = %v, want %v", tt.env, got, tt.wantDebug)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	if Level(EnvLocal) != slog.LevelDebug {
		t.Error("expected debug level for local")
	}
	if Level(EnvProd) != slog.LevelInfo {
		t.Error("expected info level for prod")
	}
}
