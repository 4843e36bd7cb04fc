// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"strings"
	"testing"
	"time"

	"github.com/openballot/openballot/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPhase(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		poll *models.Poll
		want string
	}{
		{
			name: "no closing datetime stays open",
			poll: &models.Poll{},
			want: models.PhaseOpen,
		},
		{
			name: "closing in the future",
			poll: &models.Poll{ClosingAt: timePtr(now.Add(time.Hour))},
			want: models.PhaseOpen,
		},
		{
			name: "closing one second in the past",
			poll: &models.Poll{ClosingAt: timePtr(now.Add(-time.Second))},
			want: models.PhaseClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phase(tt.poll, now); got != tt.want {
				t.Errorf("Phase() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanVote(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		poll  *models.Poll
		token string
		want  bool
	}{
		{
			name: "public open poll, anyone",
			poll: &models.Poll{},
			want: true,
		},
		{
			name: "completed poll rejects votes",
			poll: &models.Poll{IsCompleted: true},
			want: false,
		},
		{
			name: "closed poll rejects votes",
			poll: &models.Poll{ClosingAt: timePtr(now.Add(-time.Minute))},
			want: false,
		},
		{
			name:  "private poll, enrolled voter",
			poll:  &models.Poll{IsPrivate: true, VoterIDs: []string{"tok1"}},
			token: "tok1",
			want:  true,
		},
		{
			name:  "private poll, unknown token",
			poll:  &models.Poll{IsPrivate: true, VoterIDs: []string{"tok1"}},
			token: "intruder",
			want:  false,
		},
		{
			name: "private poll, empty token",
			poll: &models.Poll{IsPrivate: true, VoterIDs: []string{"tok1"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanVote(tt.poll, tt.token, now); got != tt.want {
				t.Errorf("CanVote() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewOutcome(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := timePtr(now.Add(time.Hour))
	past := timePtr(now.Add(-time.Hour))

	tests := []struct {
		name    string
		poll    *models.Poll
		isOwner bool
		isVoter bool
		want    bool
	}{
		{
			name:    "owner always views",
			poll:    &models.Poll{ShowOutcome: false, ClosingAt: future},
			isOwner: true,
			want:    true,
		},
		{
			name:    "voter blocked when show_outcome off",
			poll:    &models.Poll{ShowOutcome: false},
			isVoter: true,
			want:    false,
		},
		{
			name:    "voter, no closing datetime",
			poll:    &models.Poll{ShowOutcome: true},
			isVoter: true,
			want:    true,
		},
		{
			name:    "voter, closed poll",
			poll:    &models.Poll{ShowOutcome: true, ClosingAt: past},
			isVoter: true,
			want:    true,
		},
		{
			name:    "voter, open poll, early viewing off",
			poll:    &models.Poll{ShowOutcome: true, ClosingAt: future},
			isVoter: true,
			want:    false,
		},
		{
			name:    "voter, open poll, early viewing on",
			poll:    &models.Poll{ShowOutcome: true, ClosingAt: future, CanViewOutcomeBeforeClosing: true},
			isVoter: true,
			want:    true,
		},
		{
			name:    "voter, open poll but completed",
			poll:    &models.Poll{ShowOutcome: true, ClosingAt: future, IsCompleted: true},
			isVoter: true,
			want:    true,
		},
		{
			name: "neither voter nor owner",
			poll: &models.Poll{ShowOutcome: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewOutcome(tt.poll, now, tt.isOwner, tt.isVoter); got != tt.want {
				t.Errorf("CanViewOutcome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVoterType(t *testing.T) {
	poll := &models.Poll{
		IsPrivate: true,
		OwnerID:   "owner-token",
		VoterIDs:  []string{"v1", "v2"},
	}

	tests := []struct {
		name      string
		vid, oid  string
		wantVoter bool
		wantOwner bool
	}{
		{"owner token", "", "owner-token", false, true},
		{"enrolled voter", "v1", "", true, false},
		{"stranger", "nope", "nope", false, false},
		{"empty tokens", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isVoter, isOwner := VoterType(poll, tt.vid, tt.oid)
			if isVoter != tt.wantVoter || isOwner != tt.wantOwner {
				t.Errorf("VoterType() = (%v, %v), want (%v, %v)",
					isVoter, isOwner, tt.wantVoter, tt.wantOwner)
			}
		})
	}

	// Everyone is a voter on a public poll
	public := &models.Poll{OwnerID: "o"}
	if isVoter, _ := VoterType(public, "", ""); !isVoter {
		t.Error("VoterType() on public poll: expected isVoter=true")
	}
}

func TestParseClosing(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tz      string
		wantErr bool
	}{
		{"rfc3339", "2025-06-15T12:00:00Z", "", false},
		{"local datetime with timezone", "2025-06-15T12:00", "America/New_York", false},
		{"local datetime without timezone", "2025-06-15T12:00", "", false},
		{"garbage", "next tuesday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClosing(tt.value, tt.tz)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClosing() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.IsZero() {
				t.Error("ParseClosing() returned zero time without error")
			}
		})
	}

	// A local datetime in New York is 4-5 hours behind UTC
	ny, err := ParseClosing("2025-06-15T12:00", "America/New_York")
	if err != nil {
		t.Fatalf("ParseClosing() error = %v", err)
	}
	utc, _ := ParseClosing("2025-06-15T12:00", "")
	if !ny.After(utc) {
		t.Error("New York noon should be later than UTC noon")
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	open := &models.Poll{ClosingAt: timePtr(now.Add(48 * time.Hour))}
	got := TimeRemaining(open, now)
	if !strings.HasPrefix(got, "The poll closes in ") {
		t.Errorf("TimeRemaining() = %q", got)
	}

	if got := TimeRemaining(&models.Poll{}, now); got != "" {
		t.Errorf("TimeRemaining() without closing datetime = %q, want empty", got)
	}

	closed := &models.Poll{ClosingAt: timePtr(now.Add(-time.Hour))}
	if got := TimeRemaining(closed, now); got != "" {
		t.Errorf("TimeRemaining() on closed poll = %q, want empty", got)
	}
}
