// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the authoritative store of polls, options and votes.

Vote counts are never stored; every read aggregates the vote table, so a
count always equals the number of vote rows behind it. The schema enforces
the two rules the rest of the server relies on:

  - at most one poll has status OPEN (partial unique index)
  - a student name votes at most once per poll (unique constraint)

Constraint violations surface as sentinel errors (ErrDuplicateVote,
ErrOptionNotFound) for both PostgreSQL and SQLite.
*/
package ledger
