// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package presence tracks which students are connected. State lives in
// process memory and is lost on restart.
package presence
