// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/openballot/openballot/models"
)

// Closed reports whether the poll's closing datetime has passed. A poll
// without a closing datetime never closes on its own; it stays open until
// explicitly completed.
func Closed(p *models.Poll, now time.Time) bool {
	if p.ClosingAt == nil {
		return false
	}
	return now.After(*p.ClosingAt)
}

// Phase derives the poll's temporal phase from the closing datetime. It is
// a pure function of the poll and the supplied clock reading; the phase is
// never stored.
func Phase(p *models.Poll, now time.Time) string {
	if Closed(p, now) {
		return models.PhaseClosed
	}
	return models.PhaseOpen
}

// CanVote reports whether the holder of the given token may submit a ballot
// right now: the poll must be open and not completed, and for private polls
// the token must be enrolled.
func CanVote(p *models.Poll, token string, now time.Time) bool {
	if p.IsCompleted || Closed(p, now) {
		return false
	}
	return !p.IsPrivate || p.HasVoter(token)
}

// MutationLocked reports whether destructive ballot operations (deletion,
// bulk replace) are forbidden. Completion is final: once set, no operation
// in this engine reopens the poll, regardless of phase.
func MutationLocked(p *models.Poll) bool {
	return p.IsCompleted
}

// CanViewOutcome decides outcome visibility. The owner always may view.
// A voter may view when the owner enabled show_outcome and the poll either
// has no closing datetime, is already closed or completed, or early viewing
// is allowed.
func CanViewOutcome(p *models.Poll, now time.Time, isOwner, isVoter bool) bool {
	if isOwner {
		return true
	}
	if !isVoter || !p.ShowOutcome {
		return false
	}
	return p.ClosingAt == nil || Closed(p, now) || p.IsCompleted || p.CanViewOutcomeBeforeClosing
}

// VoterType classifies a caller. The owner is whoever presents the owner
// token. Everyone is a voter on a public poll; on a private poll only
// enrolled tokens are.
func VoterType(p *models.Poll, vid, oid string) (isVoter, isOwner bool) {
	isOwner = oid != "" && oid == p.OwnerID
	isVoter = !p.IsPrivate || p.HasVoter(vid)
	return isVoter, isOwner
}

// ParseClosing parses a closing datetime in the given IANA timezone.
// Accepts RFC 3339 or "2006-01-02T15:04"; the latter is interpreted in the
// poll's timezone (UTC when the timezone is empty or unknown).
func ParseClosing(value, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid closing datetime %q: %w", value, err)
	}
	return t, nil
}

// ClosingLabel formats the closing datetime in the poll's timezone for
// display, or "N/A" when there is none.
func ClosingLabel(p *models.Poll) string {
	if p.ClosingAt == nil {
		return "N/A"
	}
	loc := time.UTC
	if p.Timezone != "" {
		if l, err := time.LoadLocation(p.Timezone); err == nil {
			loc = l
		}
	}
	return p.ClosingAt.In(loc).Format("January 2 2006 @ 15:04 (MST)")
}

// TimeRemaining renders a humanized "closes in ..." string for the vote
// page, or "" when the poll has no closing datetime or is already closed.
func TimeRemaining(p *models.Poll, now time.Time) string {
	if p.ClosingAt == nil || Closed(p, now) {
		return ""
	}
	rel := strings.TrimSpace(humanize.RelTime(now, *p.ClosingAt, "", ""))
	return fmt.Sprintf("The poll closes in %s", rel)
}
