// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"log/slog"
)

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	Tag      string
}

// Mailer sends email. Sends are fire-and-forget from the caller's point of
// view: a failed send is logged and never rolls back the poll mutation that
// triggered it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them. Used in development
// (SKIP_EMAILS) and in tests.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email skipped", "to", msg.To, "subject", msg.Subject, "tag", msg.Tag)
	return nil
}
