// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OpenBallot API server.

OpenBallot is an accountless ranked-choice polling service. Winners are
computed with the Stable Voting method over Split Cycle defeats.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3333 -d polls.db -ip-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - IP_HASH_SALT (-ip-salt): Secret for hashing voter IP addresses

Optional settings:

  - PORT (-p): Server port (default: 3333)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SITE_URL (-site-url): Base URL used in emailed vote links
  - TALLY_TIMEOUT (-tally-timeout): Per-algorithm compute budget
  - SKIP_EMAILS: Log emails instead of sending (default: true)
  - POSTMARK_SERVER_TOKEN, FROM_EMAIL, FROM_NAME: Postmark delivery

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, results, voters)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Poll document and request/response types
  - polls: The domain manager (lifecycle, ballots, outcomes)
  - tally: Voting-theory algorithms (margins, Split Cycle, Stable Voting)
  - lifecycle: Poll phase and permission rules
  - store: Document store with optimistic concurrency
  - mailer: Voter invitation delivery
  - auth: Token generation and IP hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
