// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer sends transactional email.

Two implementations of the Mailer interface:

  - Postmark: the Postmark HTTP API, used in production.
  - LogMailer: logs instead of sending, used in development and tests.

Senders treat email as fire-and-forget: failures are logged by the caller
and never roll back the mutation that triggered the send.
*/
package mailer
