// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls is the core of the application: poll lifecycle, voter
identity, ballot admission, and outcome computation over a PollStore.

# Manager

All operations hang off a Manager, which owns the store, the mailer, and
the tally algorithms. Every mutation of a poll runs under that poll's
writer lock and is written back with the store's version check, so
concurrent ballot submissions to the same poll cannot lose updates.

# Outcome semantics

Outcome is idempotent for completed polls: the stored result, including the
randomly selected tie-break winner, is returned verbatim forever. An open
poll gets a fresh preview on every call and never retains a stored result.
Finalization (persisting the result and setting is_completed) happens
exactly when the poll is closed or was explicitly completed, and the
tie-break draw happens only then.

Tally algorithms run under a time budget; on timeout the engine degrades to
winner-only results with empty defeat edges and explanations rather than
failing the request.

# Errors

Operations return the sentinel errors in errors.go, wrapped with detail.
Handlers translate them to HTTP status codes with errors.Is.
*/
package polls
