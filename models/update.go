// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Apply merges the request's non-nil scalar fields into the poll. Nil
// pointers leave the existing value untouched. Candidate-list, voter-email
// and closing-datetime changes carry their own validation rules and are
// applied by the caller, not here.
//
// Completion is one-way: a true IsCompleted is applied, a false one is
// ignored so a completed poll can never be reopened through an update.
func (u *UpdatePollRequest) Apply(p *Poll) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.HideDescription != nil {
		p.HideDescription = *u.HideDescription
	}
	if u.IsPrivate != nil {
		p.IsPrivate = *u.IsPrivate
	}
	if u.IsCompleted != nil && *u.IsCompleted {
		p.IsCompleted = true
	}
	if u.ShowRankings != nil {
		p.ShowRankings = *u.ShowRankings
	}
	if u.Timezone != nil {
		p.Timezone = *u.Timezone
	}
	if u.CanViewOutcomeBeforeClosing != nil {
		p.CanViewOutcomeBeforeClosing = *u.CanViewOutcomeBeforeClosing
	}
	if u.ShowOutcome != nil {
		p.ShowOutcome = *u.ShowOutcome
	}
	if u.AllowMultipleVotes != nil {
		p.AllowMultipleVotes = *u.AllowMultipleVotes
	}
}
