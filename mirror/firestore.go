// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mirror

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/danielhkuo/live-poll/models"
)

const (
	pollsCollection = "polls"
	votesCollection = "votes"
)

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

// Firestore mirrors polls and votes into Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(ctx context.Context, cfg FirestoreConfig) (*Firestore, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect firestore: %w", err)
	}

	return &Firestore{client: client}, nil
}

func (f *Firestore) Write(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case KindPollCreated:
		if ev.Poll == nil {
			return errors.New("poll event without poll")
		}
		return f.writePoll(ctx, *ev.Poll)
	case KindVoteCast:
		if ev.Vote == nil {
			return errors.New("vote event without vote")
		}
		return f.writeVote(ctx, *ev.Vote)
	default:
		return fmt.Errorf("unknown mirror event kind %q", ev.Kind)
	}
}

// writePoll closes the mirror's open polls and stores the new one together.
func (f *Firestore) writePoll(ctx context.Context, p models.Poll) error {
	polls := f.client.Collection(pollsCollection)
	open := polls.Where("status", "==", models.StatusOpen)

	return f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(open).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if doc.Ref.ID == p.ID {
				continue
			}
			if err := tx.Update(doc.Ref, []firestore.Update{{Path: "status", Value: models.StatusClosed}}); err != nil {
				return err
			}
		}
		return tx.Set(polls.Doc(p.ID), pollDocument(p))
	})
}

func (f *Firestore) writeVote(ctx context.Context, v models.Vote) error {
	_, err := f.client.Collection(votesCollection).Doc(v.ID).Set(ctx, map[string]interface{}{
		"poll_id":      v.PollID,
		"option_id":    v.OptionID,
		"student_name": v.StudentName,
		"created_at":   v.CreatedAt,
	})
	return err
}

// Ping reads at most one poll document.
func (f *Firestore) Ping(ctx context.Context) error {
	it := f.client.Collection(pollsCollection).Limit(1).Documents(ctx)
	defer it.Stop()

	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func pollDocument(p models.Poll) map[string]interface{} {
	options := make([]map[string]interface{}, 0, len(p.Options))
	for _, o := range p.Options {
		options = append(options, map[string]interface{}{
			"id":         o.ID,
			"text":       o.Text,
			"is_correct": o.IsCorrect,
		})
	}

	return map[string]interface{}{
		"question":   p.Question,
		"duration":   p.Duration,
		"status":     p.Status,
		"created_at": p.CreatedAt,
		"options":    options,
	}
}
