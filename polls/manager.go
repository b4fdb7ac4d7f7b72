// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-poll/ledger"
	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/realtime"
)

var ErrValidation = errors.New("invalid poll")

// PollStore is the subset of the ledger the manager needs.
type PollStore interface {
	CreatePoll(ctx context.Context, p models.Poll) (models.Poll, error)
	ActivePoll(ctx context.Context) (models.Poll, error)
	ClosedPolls(ctx context.Context) ([]models.Poll, error)
}

type Manager struct {
	store      PollStore
	publisher  realtime.Publisher
	replicator mirror.Replicator
	now        func() time.Time

	// mu orders creations so poll:created broadcasts follow commit order.
	mu sync.Mutex
}

func NewManager(store PollStore, publisher realtime.Publisher, replicator mirror.Replicator) *Manager {
	if replicator == nil {
		replicator = mirror.Nop{}
	}
	return &Manager{
		store:      store,
		publisher:  publisher,
		replicator: replicator,
		now:        time.Now,
	}
}

// CreatePoll validates req, closes the current poll and opens the new one.
func (m *Manager) CreatePoll(ctx context.Context, req models.CreatePollRequest) (models.Poll, error) {
	const op = "polls.CreatePoll"

	if err := validate(req); err != nil {
		return models.Poll{}, err
	}

	poll := models.Poll{
		ID:       uuid.NewString(),
		Question: strings.TrimSpace(req.Question),
		Duration: req.Duration,
		Options:  make([]models.Option, 0, len(req.Options)),
	}
	for _, in := range req.Options {
		poll.Options = append(poll.Options, models.Option{
			ID:        uuid.NewString(),
			PollID:    poll.ID,
			Text:      strings.TrimSpace(in.Text),
			IsCorrect: in.IsCorrect,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	poll.CreatedAt = m.now().UTC()
	created, err := m.store.CreatePoll(ctx, poll)
	if err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("poll created", "poll_id", created.ID, "options", len(created.Options), "duration", created.Duration)

	m.publisher.Publish(realtime.Event{Name: realtime.EventPollCreated, Data: created})
	m.replicator.Mirror(mirror.Event{Kind: mirror.KindPollCreated, Poll: &created})

	return created, nil
}

// ActivePoll returns the open poll with live counts, or nil when there is none.
func (m *Manager) ActivePoll(ctx context.Context) (*models.Poll, error) {
	const op = "polls.ActivePoll"

	poll, err := m.store.ActivePoll(ctx)
	if errors.Is(err, ledger.ErrNoActivePoll) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &poll, nil
}

// History returns every closed poll, newest first, with final counts.
func (m *Manager) History(ctx context.Context) ([]models.Poll, error) {
	const op = "polls.History"

	history, err := m.store.ClosedPolls(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return history, nil
}

func validate(req models.CreatePollRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return fmt.Errorf("%w: question is required", ErrValidation)
	}
	if len(req.Options) < 2 {
		return fmt.Errorf("%w: at least 2 options are required", ErrValidation)
	}
	for i, o := range req.Options {
		if strings.TrimSpace(o.Text) == "" {
			return fmt.Errorf("%w: option %d text is required", ErrValidation, i+1)
		}
	}
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	return nil
}
