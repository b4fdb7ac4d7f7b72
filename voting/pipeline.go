// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-poll/ledger"
	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/realtime"
)

var (
	ErrValidation    = errors.New("invalid vote")
	ErrPollNotActive = errors.New("poll is not active")
	ErrInvalidOption = errors.New("option does not belong to poll")
	ErrAlreadyVoted  = errors.New("student has already voted")
)

// VoteStore is the subset of the ledger the pipeline needs.
type VoteStore interface {
	Poll(ctx context.Context, id string) (models.Poll, error)
	InsertVote(ctx context.Context, v models.Vote) (models.Vote, error)
}

type Pipeline struct {
	store      VoteStore
	publisher  realtime.Publisher
	replicator mirror.Replicator
	now        func() time.Time
}

func NewPipeline(store VoteStore, publisher realtime.Publisher, replicator mirror.Replicator) *Pipeline {
	if replicator == nil {
		replicator = mirror.Nop{}
	}
	return &Pipeline{
		store:      store,
		publisher:  publisher,
		replicator: replicator,
		now:        time.Now,
	}
}

// SubmitVote records one vote and broadcasts vote:update with fresh counts.
// Votes on an expired poll are accepted until a new poll replaces it.
func (p *Pipeline) SubmitVote(ctx context.Context, req models.SubmitVoteRequest) (models.Vote, error) {
	const op = "voting.SubmitVote"

	vote := models.Vote{
		PollID:      strings.TrimSpace(req.PollID),
		OptionID:    strings.TrimSpace(req.OptionID),
		StudentName: strings.TrimSpace(req.StudentName),
	}
	switch {
	case vote.PollID == "":
		return models.Vote{}, fmt.Errorf("%w: pollId is required", ErrValidation)
	case vote.OptionID == "":
		return models.Vote{}, fmt.Errorf("%w: optionId is required", ErrValidation)
	case vote.StudentName == "":
		return models.Vote{}, fmt.Errorf("%w: studentName is required", ErrValidation)
	}

	poll, err := p.store.Poll(ctx, vote.PollID)
	if errors.Is(err, ledger.ErrPollNotFound) {
		return models.Vote{}, ErrPollNotActive
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("%s: %w", op, err)
	}
	if poll.Status != models.StatusOpen {
		return models.Vote{}, ErrPollNotActive
	}
	if _, ok := poll.Option(vote.OptionID); !ok {
		return models.Vote{}, ErrInvalidOption
	}

	now := p.now().UTC()
	if poll.Expired(now) {
		slog.Debug("late vote accepted",
			"poll_id", poll.ID,
			"student", vote.StudentName,
			"late_by", now.Sub(poll.ExpiresAt()).String(),
		)
	}

	vote.ID = uuid.NewString()
	vote.CreatedAt = now

	vote, err = p.store.InsertVote(ctx, vote)
	switch {
	case errors.Is(err, ledger.ErrDuplicateVote):
		return models.Vote{}, ErrAlreadyVoted
	case errors.Is(err, ledger.ErrOptionNotFound):
		return models.Vote{}, ErrInvalidOption
	case err != nil:
		return models.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("vote recorded", "poll_id", vote.PollID, "option_id", vote.OptionID, "student", vote.StudentName)

	// The vote is committed; a failed re-read only costs this broadcast.
	updated, err := p.store.Poll(ctx, vote.PollID)
	if err != nil {
		slog.Error("failed to reload poll after vote", "poll_id", vote.PollID, "error", err)
	} else {
		p.publisher.Publish(realtime.Event{Name: realtime.EventVoteUpdate, Data: updated})
	}

	p.replicator.Mirror(mirror.Event{Kind: mirror.KindVoteCast, Vote: &vote})

	return vote, nil
}
