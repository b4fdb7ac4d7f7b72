// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package voting records student votes against the open poll and pushes the
// updated tallies to every connected client.
//
// A student votes at most once per poll. The ledger's uniqueness constraint
// is the only arbiter, so concurrent duplicates from any number of processes
// resolve to exactly one stored vote.
package voting
