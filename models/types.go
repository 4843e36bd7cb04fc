// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll phases derived from the closing datetime
const (
	PhaseOpen   = "open"
	PhaseClosed = "closed"
)

// Request types

type CreatePollRequest struct {
	Title                       string   `json:"title"`
	Description                 string   `json:"description"`
	HideDescription             bool     `json:"hide_description"`
	Candidates                  []string `json:"candidates"`
	IsPrivate                   bool     `json:"is_private"`
	VoterEmails                 []string `json:"voter_emails"`
	ShowRankings                bool     `json:"show_rankings"`
	ClosingDatetime             string   `json:"closing_datetime,omitempty"`
	Timezone                    string   `json:"timezone,omitempty"`
	CanViewOutcomeBeforeClosing bool     `json:"can_view_outcome_before_closing"`
	ShowOutcome                 bool     `json:"show_outcome"`
	AllowMultipleVotes          bool     `json:"allow_multiple_votes"`
}

// UpdatePollRequest is a partial update: nil fields mean "keep existing".
// ClearClosing removes the closing datetime entirely (distinct from leaving
// it unchanged).
type UpdatePollRequest struct {
	Title                       *string  `json:"title,omitempty"`
	Description                 *string  `json:"description,omitempty"`
	HideDescription             *bool    `json:"hide_description,omitempty"`
	Candidates                  []string `json:"candidates,omitempty"`
	IsPrivate                   *bool    `json:"is_private,omitempty"`
	IsCompleted                 *bool    `json:"is_completed,omitempty"`
	NewVoterEmails              []string `json:"new_voter_emails,omitempty"`
	ShowRankings                *bool    `json:"show_rankings,omitempty"`
	ClosingDatetime             *string  `json:"closing_datetime,omitempty"`
	ClearClosing                bool     `json:"clear_closing,omitempty"`
	Timezone                    *string  `json:"timezone,omitempty"`
	CanViewOutcomeBeforeClosing *bool    `json:"can_view_outcome_before_closing,omitempty"`
	ShowOutcome                 *bool    `json:"show_outcome,omitempty"`
	AllowMultipleVotes          *bool    `json:"allow_multiple_votes,omitempty"`
}

type SubmitBallotRequest struct {
	Ranking map[string]int `json:"ranking"`
}

type ResendInviteRequest struct {
	Email string `json:"email"`
}

// Response types

type CreatePollResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

type UpdatePollResponse struct {
	Success string `json:"success"`
	Message string `json:"message,omitempty"`
}

type SubmitBallotResponse struct {
	Success string `json:"success"`
}

type BulkImportResponse struct {
	Success    string   `json:"success"`
	NumBallots int      `json:"num_ballots"`
	Warnings   []string `json:"warnings,omitempty"`
}

type RotateVoterResponse struct {
	Success    string `json:"success"`
	NewVoterID string `json:"new_voter_id"`
	VoteURL    string `json:"vote_url"`
}

type VoterDetail struct {
	VoterID    string `json:"voter_id"`
	Email      string `json:"email"`
	EmailsSent int    `json:"emails_sent"`
}

// PollInfo is the admin/data view of a poll. VoterDetails is populated only
// for the owner of a private poll.
type PollInfo struct {
	IsOwner                     bool          `json:"is_owner"`
	Title                       string        `json:"title"`
	Description                 string        `json:"description"`
	HideDescription             bool          `json:"hide_description"`
	ElectionID                  string        `json:"election_id"`
	Candidates                  []string      `json:"candidates"`
	NumBallots                  int           `json:"num_ballots"`
	IsPrivate                   bool          `json:"is_private"`
	NumInvitedVoters            *int          `json:"num_invited_voters,omitempty"`
	IsClosed                    bool          `json:"is_closed"`
	IsCompleted                 bool          `json:"is_completed"`
	ShowRankings                bool          `json:"show_rankings"`
	AllowMultipleVotes          bool          `json:"allow_multiple_votes"`
	ClosingDatetime             string        `json:"closing_datetime,omitempty"`
	Timezone                    string        `json:"timezone,omitempty"`
	ShowOutcome                 bool          `json:"show_outcome"`
	CanViewOutcomeBeforeClosing bool          `json:"can_view_outcome_before_closing"`
	CreatedAt                   time.Time     `json:"created_at"`
	VoterDetails                []VoterDetail `json:"voter_details,omitempty"`
}

// RankingInfo is the vote-page view for a prospective voter.
type RankingInfo struct {
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	HideDescription    bool           `json:"hide_description"`
	Candidates         []string       `json:"candidates"`
	Ranking            map[string]int `json:"ranking"`
	CanVote            bool           `json:"can_vote"`
	CanViewOutcome     bool           `json:"can_view_outcome"`
	IsCompleted        bool           `json:"is_completed"`
	IsClosed           bool           `json:"is_closed"`
	IsPrivate          bool           `json:"is_private"`
	AllowMultipleVotes bool           `json:"allow_multiple_votes"`
	ClosingDatetime    string         `json:"closing_datetime_str,omitempty"`
	Timezone           string         `json:"timezone,omitempty"`
	TimeRemaining      string         `json:"time_remaining_str,omitempty"`
}

// SubmittedRankings is the owner's view of the raw ballot data.
type SubmittedRankings struct {
	NumVoters          int               `json:"num_voters"`
	NumEmptyBallots    int               `json:"num_empty_ballots"`
	UnrankedCandidates []string          `json:"unranked_candidates"`
	Columns            [][]string        `json:"columns"`
	CSVData            [][]string        `json:"csv_data"`
	NumRows            int               `json:"num_rows"`
	Cmap               map[string]string `json:"cmap"`
}

// Domain types

// Ballot is one submitted ranking. VoterID is empty for anonymous public
// ballots. Source is the ballot's origin marker: a hashed client IP for
// public submissions, or a synthetic bulk-import marker.
type Ballot struct {
	Ranking     map[string]int `json:"ranking"`
	VoterID     string         `json:"voter_id,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Source      string         `json:"source,omitempty"`
}

// Explanation records one step of the stable-winner computation: Winner won
// the match-up against RunnerUp with the given margin after RunnerUp was
// removed from the field.
type Explanation struct {
	Winner     string   `json:"winner"`
	RunnerUp   string   `json:"runner_up"`
	Margin     int      `json:"margin"`
	SubWinners []string `json:"sub_winners"`
}

// Result is the computed outcome of a poll. Once attached to a completed
// poll it is immutable and returned verbatim on every later read.
type Result struct {
	Margins            map[string]map[string]int  `json:"margins"`
	NumVoters          int                        `json:"num_voters"`
	Cmap               map[string]string          `json:"cmap"`
	ShowRankings       bool                       `json:"show_rankings"`
	SVWinners          []string                   `json:"sv_winners"`
	SelectedSVWinner   string                     `json:"selected_sv_winner,omitempty"`
	SCWinners          []string                   `json:"sc_winners"`
	CondorcetWinner    string                     `json:"condorcet_winner,omitempty"`
	Explanations       map[string][]Explanation   `json:"explanations"`
	Defeats            map[string]map[string]bool `json:"defeats"`
	SplittingNumbers   map[string]int             `json:"splitting_numbers"`
	ProfIsLinear       bool                       `json:"prof_is_linear"`
	LinearOrder        []string                   `json:"linear_order"`
	NumRows            int                        `json:"num_rows"`
	Columns            [][]string                 `json:"columns"`
	NoCandidatesRanked bool                       `json:"no_candidates_ranked,omitempty"`
}

// OutcomeInfo wraps a Result with the poll metadata the outcome page needs.
// CanView false means the caller may not see the result; only metadata is
// populated in that case.
type OutcomeInfo struct {
	Title           string  `json:"title"`
	ElectionID      string  `json:"election_id"`
	CanView         bool    `json:"can_view"`
	IsClosed        bool    `json:"is_closed"`
	IsCompleted     bool    `json:"is_completed"`
	ClosingDatetime string  `json:"closing_datetime,omitempty"`
	Timezone        string  `json:"timezone,omitempty"`
	Result          *Result `json:"result,omitempty"`
}

// Poll is the aggregate root, stored as a single document. Version is the
// store's optimistic-concurrency counter, not part of the document body.
type Poll struct {
	ID                          string            `json:"id"`
	Title                       string            `json:"title"`
	Description                 string            `json:"description"`
	HideDescription             bool              `json:"hide_description"`
	Candidates                  []string          `json:"candidates"`
	IsPrivate                   bool              `json:"is_private"`
	VoterIDs                    []string          `json:"voter_ids"`
	VoterEmailMap               map[string]string `json:"voter_email_map,omitempty"`
	OwnerID                     string            `json:"owner_id"`
	ShowRankings                bool              `json:"show_rankings"`
	ClosingAt                   *time.Time        `json:"closing_at,omitempty"`
	Timezone                    string            `json:"timezone,omitempty"`
	CanViewOutcomeBeforeClosing bool              `json:"can_view_outcome_before_closing"`
	ShowOutcome                 bool              `json:"show_outcome"`
	AllowMultipleVotes          bool              `json:"allow_multiple_votes"`
	Ballots                     []Ballot          `json:"ballots"`
	IsCompleted                 bool              `json:"is_completed"`
	Result                      *Result           `json:"result,omitempty"`
	EmailSendCounts             map[string]int    `json:"email_send_counts,omitempty"`
	CreatedAt                   time.Time         `json:"created_at"`

	Version int64 `json:"-"`
}

// HasVoter reports whether the token is an enrolled voter id.
func (p *Poll) HasVoter(token string) bool {
	for _, v := range p.VoterIDs {
		if v == token {
			return true
		}
	}
	return false
}

// BallotFor returns the index of the ballot owned by the voter token, or -1.
func (p *Poll) BallotFor(token string) int {
	for i, b := range p.Ballots {
		if b.VoterID != "" && b.VoterID == token {
			return i
		}
	}
	return -1
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
