// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are resolved.

# Config Fields

  - Port: Server listen port (default: 3333)
  - DatabaseURL: SQLite or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SiteURL: Public base URL used when building voting links
  - TallyTimeout: Time budget for each tally algorithm (default: 2s)
  - IPHashSalt: Secret for hashing client IPs on public votes (required)
  - MultiVotePassword: Password that unlocks repeat public voting
  - SkipEmails, PostmarkToken, FromEmail, FromName: email delivery

# Environment Variables

Flags fall back to environment variables:

	PORT                    → -p
	DATABASE_URL            → -d
	DATABASE_TYPE           → -t
	SITE_URL                → -site-url
	TALLY_TIMEOUT           → -tally-timeout
	IP_HASH_SALT            → -ip-salt
	ALLOW_MULTIPLE_VOTE_PWD → -multi-vote-pwd
	SKIP_EMAILS, POSTMARK_SERVER_TOKEN, FROM_EMAIL, FROM_NAME

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - IP_HASH_SALT must be provided
  - POSTMARK_SERVER_TOKEN must be provided unless SKIP_EMAILS=true
*/
package cliparse
