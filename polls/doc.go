// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls manages the lifecycle of the single open poll.

Creating a poll closes the previous one and opens the new one in a single
ledger transaction. Only after that commits is poll:created broadcast to
every connected client and the poll handed to the mirror. Polls are never
closed by a timer; the duration is advisory and lets clients count down.

# Usage

	m := polls.NewManager(store, hub, replicator)
	poll, err := m.CreatePoll(ctx, models.CreatePollRequest{
		Question: "2 + 2?",
		Options:  []models.OptionInput{{Text: "4", IsCorrect: true}, {Text: "5"}},
		Duration: 60,
	})
*/
package polls
