// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logger builds the process-wide slog logger.
//
// Output to a terminal is human-readable text; anything else (files, pipes,
// container log collectors) gets one JSON object per line. The local
// environment logs at debug level.
package logger
