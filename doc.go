// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the live poll server.

A teacher opens one multiple-choice poll at a time; students vote once each
and every connected client sees the tallies move in real time.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..."

# Configuration

Settings come from .env, then the environment or a YAML file (-c), then
flags:

  - PORT (-p): server port (default 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - DATABASE_URL (-d): connection string or SQLite file path
  - ENV: local, dev or prod; local and dev log at debug level
  - ALLOWED_ORIGINS: comma-separated CORS and WebSocket origins (default *)
  - FIREBASE_PROJECT_ID: enables the Firestore mirror
  - GOOGLE_APPLICATION_CREDENTIALS / GOOGLE_CREDENTIALS: mirror credentials

# Architecture

  - ledger: authoritative SQL store for polls, options and votes
  - polls, voting, presence: the domain services
  - realtime: WebSocket hub
  - mirror: best-effort Firestore copy of polls and votes
  - handlers, router, middleware: HTTP surface
  - db, cliparse, logger: bootstrap

PostgreSQL deployments can manage the schema with cmd/migrator.
*/
package main
