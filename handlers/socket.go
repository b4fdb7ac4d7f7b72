// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/presence"
	"github.com/danielhkuo/live-poll/realtime"
)

type joinPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type chatPayload struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type SocketHandler struct {
	hub      *realtime.Hub
	tracker  *presence.Tracker
	upgrader websocket.Upgrader
	now      func() time.Time
}

func NewSocketHandler(hub *realtime.Hub, tracker *presence.Tracker, allowedOrigins []string) *SocketHandler {
	return &SocketHandler{
		hub:     hub,
		tracker: tracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		now: time.Now,
	}
}

// ServeWS handles GET /ws
func (h *SocketHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := h.hub.Register(conn)
	go client.WritePump()

	client.ReadPump(h.dispatch)
	h.tracker.Disconnect(client.ID())
}

func (h *SocketHandler) dispatch(c *realtime.Client, msg realtime.Message) {
	switch msg.Event {
	case realtime.MessageJoin:
		var p joinPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			slog.Debug("invalid join payload", "conn_id", c.ID(), "error", err)
			return
		}
		name := strings.TrimSpace(p.Name)
		if p.Role != models.RoleStudent || name == "" {
			slog.Info("non-student joined", "conn_id", c.ID(), "role", p.Role)
			return
		}
		h.tracker.Join(c.ID(), name)

	case realtime.MessageRequestParticipants:
		h.hub.SendTo(c.ID(), realtime.Event{Name: realtime.EventParticipants, Data: h.tracker.Roster()})

	case realtime.MessageChatSend:
		var p chatPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			slog.Debug("invalid chat payload", "conn_id", c.ID(), "error", err)
			return
		}
		if strings.TrimSpace(p.Text) == "" {
			return
		}
		h.hub.Publish(realtime.Event{Name: realtime.EventChat, Data: models.ChatMessage{
			ID:        uuid.NewString(),
			Sender:    p.Sender,
			Text:      p.Text,
			Timestamp: h.now().UTC(),
		}})

	case realtime.MessageKick:
		var name string
		if err := json.Unmarshal(msg.Data, &name); err != nil {
			slog.Debug("invalid kick payload", "conn_id", c.ID(), "error", err)
			return
		}
		if name = strings.TrimSpace(name); name == "" {
			return
		}
		h.tracker.Kick(name)

	default:
		slog.Debug("unknown message", "conn_id", c.ID(), "event", msg.Event)
	}
}

// originChecker allows requests without an Origin header, any origin when
// "*" is configured, and otherwise only the listed origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := set[u.Scheme+"://"+u.Host]
		return ok
	}
}
