// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Participant roles announced on join
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Request types

type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreatePollRequest struct {
	Question string        `json:"question"`
	Options  []OptionInput `json:"options"`
	Duration int           `json:"duration"` // seconds
}

type SubmitVoteRequest struct {
	PollID      string `json:"pollId"`
	StudentName string `json:"studentName"`
	OptionID    string `json:"optionId"`
}

// Domain types

type Poll struct {
	ID        string     `json:"id"`
	Question  string     `json:"question"`
	Options   []Option   `json:"options"`
	Duration  int        `json:"duration"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// Votes is derived from the vote rows and never stored.
type Option struct {
	ID        string `json:"id"`
	PollID    string `json:"pollId"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Votes     int    `json:"votes"`
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"pollId"`
	OptionID    string    `json:"optionId"`
	StudentName string    `json:"studentName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Response types

// CurrentPollResponse is the open poll plus the whole seconds left on its
// countdown, so a client that reconnects can resume the timer.
type CurrentPollResponse struct {
	Poll
	SecondsLeft int `json:"timeLeft"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ExpiresAt is when the countdown shown to students reaches zero.
func (p Poll) ExpiresAt() time.Time {
	return p.CreatedAt.Add(time.Duration(p.Duration) * time.Second)
}

// Expired reports whether the poll's duration has elapsed at now.
// Expiry is advisory: an expired poll stays OPEN until a new poll replaces it.
func (p Poll) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt())
}

// TimeLeft returns the remaining countdown, never negative.
func (p Poll) TimeLeft(now time.Time) time.Duration {
	left := p.ExpiresAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Option returns the option with the given ID, if it belongs to the poll.
func (p Poll) Option(id string) (Option, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// TotalVotes sums the per-option counts.
func (p Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Error codes clients can switch on
const (
	CodeValidation    = "validation"
	CodeAlreadyVoted  = "already_voted"
	CodePollNotActive = "poll_not_active"
	CodeInvalidOption = "invalid_option"
)
