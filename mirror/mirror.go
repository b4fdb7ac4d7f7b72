// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

//go:generate mockgen -source=mirror.go -destination=mocks/mock_mirror.go -package=mocks

package mirror

import (
	"context"

	"github.com/danielhkuo/live-poll/models"
)

type Kind string

const (
	KindPollCreated Kind = "poll_created"
	KindVoteCast    Kind = "vote_cast"
)

// Event is one ledger write replicated to the secondary store.
type Event struct {
	Kind Kind
	Poll *models.Poll
	Vote *models.Vote
}

// Sink writes events to a secondary datastore.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Replicator accepts events without blocking and without reporting errors.
type Replicator interface {
	Mirror(ev Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Write(context.Context, Event) error { return nil }

func (Nop) Mirror(Event) {}
