// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/live-poll/models"
)

// createPollAttempts bounds retries when a concurrent creator commits
// its OPEN poll between our close step and our insert.
const createPollAttempts = 5

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// CreatePoll closes every OPEN poll and inserts p with its options as the
// new OPEN poll, in one transaction. The returned poll has zero counts.
func (s *Store) CreatePoll(ctx context.Context, p models.Poll) (models.Poll, error) {
	const op = "ledger.CreatePoll"

	p.Status = models.StatusOpen
	p.ClosedAt = nil
	p.Options = append([]models.Option(nil), p.Options...)
	for i := range p.Options {
		p.Options[i].PollID = p.ID
		p.Options[i].Votes = 0
	}

	var err error
	for attempt := 1; attempt <= createPollAttempts; attempt++ {
		err = s.createPoll(ctx, p)
		if err == nil {
			return p, nil
		}
		if !isOpenPollConflict(err) {
			return models.Poll{}, fmt.Errorf("%s: %w", op, err)
		}
		slog.Debug("open poll conflict, retrying", "poll_id", p.ID, "attempt", attempt)
	}

	return models.Poll{}, fmt.Errorf("%s: %w", op, ErrOpenPollConflict)
}

func (s *Store) createPoll(ctx context.Context, p models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE poll
		SET status = $1, closed_at = $2
		WHERE status = $3
	`, models.StatusClosed, s.now().UTC(), models.StatusOpen)
	if err != nil {
		return fmt.Errorf("close open polls: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, duration, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Question, p.Duration, p.Status, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}

	for i, o := range p.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO option (id, poll_id, text, is_correct, position)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, p.ID, o.Text, o.IsCorrect, i)
		if err != nil {
			return fmt.Errorf("insert option: %w", err)
		}
	}

	return tx.Commit()
}

// Poll returns a poll by ID with live per-option vote counts.
func (s *Store) Poll(ctx context.Context, id string) (models.Poll, error) {
	const op = "ledger.Poll"

	poll, err := s.scanPoll(ctx, `
		SELECT id, question, duration, status, created_at, closed_at
		FROM poll
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachOptions(ctx, &poll); err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

// ActivePoll returns the OPEN poll with live counts.
func (s *Store) ActivePoll(ctx context.Context) (models.Poll, error) {
	const op = "ledger.ActivePoll"

	poll, err := s.scanPoll(ctx, `
		SELECT id, question, duration, status, created_at, closed_at
		FROM poll
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, models.StatusOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, fmt.Errorf("%s: %w", op, ErrNoActivePoll)
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachOptions(ctx, &poll); err != nil {
		return models.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

// ClosedPolls returns every CLOSED poll, newest first, with final counts.
func (s *Store) ClosedPolls(ctx context.Context) ([]models.Poll, error) {
	const op = "ledger.ClosedPolls"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, duration, status, created_at, closed_at
		FROM poll
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
	`, models.StatusClosed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	polls := []models.Poll{}
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanPollRow(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		p.Options = []models.Option{}
		index[p.ID] = len(polls)
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}
	rows.Close()

	if len(polls) == 0 {
		return polls, nil
	}

	options, err := s.queryOptions(ctx, `
		SELECT o.id, o.poll_id, o.text, o.is_correct, COUNT(v.id)
		FROM option o
		JOIN poll p ON p.id = o.poll_id
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE p.status = $1
		GROUP BY o.id, o.poll_id, o.text, o.is_correct, o.position
		ORDER BY o.poll_id, o.position
	`, models.StatusClosed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, o := range options {
		// A poll closed after the first query has options but no row here.
		if i, ok := index[o.PollID]; ok {
			polls[i].Options = append(polls[i].Options, o)
		}
	}

	return polls, nil
}

// InsertVote records a vote. The (poll_id, student_name) constraint is the
// only duplicate check; a second vote fails with ErrDuplicateVote.
func (s *Store) InsertVote(ctx context.Context, v models.Vote) (models.Vote, error) {
	const op = "ledger.InsertVote"

	v.CreatedAt = v.CreatedAt.UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, option_id, student_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.PollID, v.OptionID, v.StudentName, v.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return models.Vote{}, fmt.Errorf("%s: %w", op, ErrDuplicateVote)
		case isForeignKeyViolation(err):
			return models.Vote{}, fmt.Errorf("%s: %w", op, ErrOptionNotFound)
		}
		return models.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Ping checks the ledger connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPollRow(row rowScanner) (models.Poll, error) {
	var (
		p        models.Poll
		closedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Question, &p.Duration, &p.Status, &p.CreatedAt, &closedAt); err != nil {
		return models.Poll{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		p.ClosedAt = &t
	}
	return p, nil
}

func (s *Store) scanPoll(ctx context.Context, query string, args ...any) (models.Poll, error) {
	return scanPollRow(s.db.QueryRowContext(ctx, query, args...))
}

func (s *Store) attachOptions(ctx context.Context, p *models.Poll) error {
	options, err := s.queryOptions(ctx, `
		SELECT o.id, o.poll_id, o.text, o.is_correct, COUNT(v.id)
		FROM option o
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.poll_id, o.text, o.is_correct, o.position
		ORDER BY o.position
	`, p.ID)
	if err != nil {
		return err
	}
	p.Options = options
	return nil
}

func (s *Store) queryOptions(ctx context.Context, query string, args ...any) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text, &o.IsCorrect, &o.Votes); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return options, nil
}
