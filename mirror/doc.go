// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mirror replicates ledger writes to a secondary Firestore database.
// The mirror is not authoritative and is never read to decide anything;
// callers hand events to a Replicator and move on.
package mirror
