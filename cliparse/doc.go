// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources, lowest precedence first:

 1. .env in the working directory (github.com/joho/godotenv; optional)
 2. the YAML file given with -c, or the process environment
    (github.com/ilyakaznacheev/cleanenv, with env-default fallbacks)
 3. CLI flags that were actually set

# Config Fields

  - Port: server listen port (default: 3000)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string or SQLite file (default: live-poll.db)
  - Env: local, dev or prod (default: local)
  - AllowedOrigins: CORS and WebSocket origins (default: *)
  - ShutdownTimeout: graceful shutdown bound (default: 5s)
  - Mirror: Firestore project, credentials, write timeout, max in-flight writes

# CLI Flags

	-c  YAML config file
	-p  Server port
	-d  Database URL
	-t  Database type

# Validation

ParseFlags returns an error for an out-of-range port, an unknown database
type, an empty database URL or a non-positive timeout.
*/
package cliparse
