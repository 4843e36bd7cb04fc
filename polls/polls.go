// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"strings"

	"github.com/openballot/openballot/auth"
	"github.com/openballot/openballot/lifecycle"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/models"
)

func validateCandidates(candidates []string) ([]string, error) {
	cleaned := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: blank candidate name", ErrValidation)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate candidate %q", ErrValidation, c)
		}
		seen[c] = true
		cleaned = append(cleaned, c)
	}
	if len(cleaned) < 2 {
		return nil, fmt.Errorf("%w: a poll needs at least two candidates", ErrValidation)
	}
	return cleaned, nil
}

// enroll issues one token per email and extends the poll's voter lists,
// merging with any existing enrollment.
func enroll(p *models.Poll, emails []string) ([]string, error) {
	tokens, err := auth.GenerateVoterIDs(len(emails))
	if err != nil {
		return nil, fmt.Errorf("failed to issue voter ids: %w", err)
	}
	if p.VoterEmailMap == nil {
		p.VoterEmailMap = make(map[string]string, len(emails))
	}
	for i, email := range emails {
		p.VoterIDs = append(p.VoterIDs, tokens[i])
		p.VoterEmailMap[tokens[i]] = email
	}
	return tokens, nil
}

// Create makes a new poll and returns its id and owner token. For private
// polls one voter token per email is issued and invitations are sent in the
// background.
func (m *Manager) Create(ctx context.Context, req *models.CreatePollRequest) (*models.CreatePollResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	candidates, err := validateCandidates(req.Candidates)
	if err != nil {
		return nil, err
	}

	ownerID, err := auth.GenerateVoterID()
	if err != nil {
		return nil, fmt.Errorf("failed to issue owner id: %w", err)
	}

	p := &models.Poll{
		Title:                       strings.TrimSpace(req.Title),
		Description:                 req.Description,
		HideDescription:             req.HideDescription,
		Candidates:                  candidates,
		IsPrivate:                   req.IsPrivate,
		OwnerID:                     ownerID,
		ShowRankings:                req.ShowRankings,
		Timezone:                    req.Timezone,
		CanViewOutcomeBeforeClosing: req.CanViewOutcomeBeforeClosing,
		ShowOutcome:                 req.ShowOutcome,
		AllowMultipleVotes:          req.AllowMultipleVotes,
		Ballots:                     []models.Ballot{},
		CreatedAt:                   m.now().UTC(),
	}

	if req.ClosingDatetime != "" {
		t, err := lifecycle.ParseClosing(req.ClosingDatetime, req.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		p.ClosingAt = &t
	}

	var tokens []string
	if p.IsPrivate {
		if tokens, err = enroll(p, req.VoterEmails); err != nil {
			return nil, err
		}
	}

	id, err := m.store.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	m.logger.Info("poll created", "poll", id, "private", p.IsPrivate, "voters", len(tokens))

	closing := lifecycle.ClosingLabel(p)
	if closing == "N/A" {
		closing = ""
	}
	invites := make([]mailer.Message, 0, len(tokens)+1)
	for i, tok := range tokens {
		invites = append(invites, mailer.Invitation(req.VoterEmails[i], p.Title, m.voteURL(id, tok), closing))
	}
	if m.cfg.AdminEmail != "" {
		invites = append(invites, mailer.PollCreatedNotice(m.cfg.AdminEmail, p.Title, m.adminURL(id, ownerID)))
	}
	m.sendMail(invites...)

	return &models.CreatePollResponse{ID: id, OwnerID: ownerID}, nil
}

// Update applies a partial update. Candidate names cannot change once any
// ballot exists; the rest of the update still goes through with a message
// saying so. New voter emails are enrolled and invited. A completed poll's
// ballots and result are never touched.
func (m *Manager) Update(ctx context.Context, id, ownerID string, req *models.UpdatePollRequest) (*models.UpdatePollResponse, error) {
	resp := &models.UpdatePollResponse{Success: "Poll updated."}
	var newTokens []string
	var newEmails []string
	var title string

	_, err := m.mutate(ctx, id, func(p *models.Poll) error {
		if ownerID == "" || ownerID != p.OwnerID {
			return ErrNotAuthorized
		}

		req.Apply(p)

		if req.Candidates != nil {
			if len(p.Ballots) > 0 {
				resp.Message = "Since voters have submitted ballots, candidate names cannot be changed. The other changes have been made to the poll."
			} else {
				candidates, err := validateCandidates(req.Candidates)
				if err != nil {
					return err
				}
				p.Candidates = candidates
			}
		}

		if req.ClearClosing {
			p.ClosingAt = nil
		} else if req.ClosingDatetime != nil {
			t, err := lifecycle.ParseClosing(*req.ClosingDatetime, p.Timezone)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			p.ClosingAt = &t
		}

		newTokens, newEmails = nil, nil
		if p.IsPrivate && len(req.NewVoterEmails) > 0 {
			tokens, err := enroll(p, req.NewVoterEmails)
			if err != nil {
				return err
			}
			newTokens, newEmails = tokens, req.NewVoterEmails
		}
		title = p.Title
		return nil
	})
	if err != nil {
		return nil, err
	}

	invites := make([]mailer.Message, 0, len(newTokens))
	for i, tok := range newTokens {
		invites = append(invites, mailer.Invitation(newEmails[i], title, m.voteURL(id, tok), ""))
	}
	m.sendMail(invites...)

	return resp, nil
}

// Delete removes the poll. Owner only.
func (m *Manager) Delete(ctx context.Context, id, ownerID string) error {
	lock := m.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	if ownerID == "" || ownerID != p.OwnerID {
		return ErrNotAuthorized
	}
	return m.store.DeleteOne(ctx, id)
}

// Info is the admin/data view. Voter details are attached only for the
// owner of a private poll.
func (m *Manager) Info(ctx context.Context, id, ownerID string) (*models.PollInfo, error) {
	p, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	isOwner := ownerID != "" && ownerID == p.OwnerID

	info := &models.PollInfo{
		IsOwner:                     isOwner,
		Title:                       p.Title,
		Description:                 p.Description,
		HideDescription:             p.HideDescription,
		ElectionID:                  p.ID,
		Candidates:                  p.Candidates,
		NumBallots:                  len(p.Ballots),
		IsPrivate:                   p.IsPrivate,
		IsClosed:                    lifecycle.Closed(p, now),
		IsCompleted:                 p.IsCompleted,
		ShowRankings:                p.ShowRankings,
		AllowMultipleVotes:          p.AllowMultipleVotes,
		ClosingDatetime:             lifecycle.ClosingLabel(p),
		Timezone:                    p.Timezone,
		ShowOutcome:                 p.ShowOutcome,
		CanViewOutcomeBeforeClosing: p.CanViewOutcomeBeforeClosing,
		CreatedAt:                   p.CreatedAt,
	}
	if p.IsPrivate {
		n := len(p.VoterIDs)
		info.NumInvitedVoters = &n
	}

	if isOwner && p.IsPrivate {
		details := make([]models.VoterDetail, 0, len(p.VoterIDs))
		for _, vid := range p.VoterIDs {
			if len(p.VoterEmailMap) == 0 {
				// polls enrolled before emails were tracked
				details = append(details, models.VoterDetail{
					VoterID: vid,
					Email:   "Email not available (legacy poll)",
				})
				continue
			}
			email, ok := p.VoterEmailMap[vid]
			if !ok {
				email = "Email not available"
			}
			sent := 1
			if n, ok := p.EmailSendCounts[email]; ok {
				sent = n
			}
			details = append(details, models.VoterDetail{VoterID: vid, Email: email, EmailsSent: sent})
		}
		info.VoterDetails = details
	}

	return info, nil
}

// RankingInfo is the vote-page view: what the holder of vid may do right
// now, plus their current ballot on a private poll so they can revise it.
func (m *Manager) RankingInfo(ctx context.Context, id, vid, multiVotePwd string) (*models.RankingInfo, error) {
	p, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	isVoter, isOwner := lifecycle.VoterType(p, vid, vid)
	allowMultiple := p.AllowMultipleVotes ||
		(multiVotePwd != "" && multiVotePwd == m.cfg.MultiVotePassword)

	info := &models.RankingInfo{
		Title:              p.Title,
		Description:        p.Description,
		HideDescription:    p.HideDescription,
		Candidates:         p.Candidates,
		Ranking:            map[string]int{},
		CanVote:            lifecycle.CanVote(p, vid, now),
		CanViewOutcome:     lifecycle.CanViewOutcome(p, now, isOwner, isVoter),
		IsCompleted:        p.IsCompleted || lifecycle.Closed(p, now),
		IsClosed:           lifecycle.Closed(p, now),
		IsPrivate:          p.IsPrivate,
		AllowMultipleVotes: allowMultiple,
		ClosingDatetime:    lifecycle.ClosingLabel(p),
		Timezone:           p.Timezone,
		TimeRemaining:      lifecycle.TimeRemaining(p, now),
	}

	if p.IsPrivate && p.HasVoter(vid) {
		if i := p.BallotFor(vid); i >= 0 {
			info.Ranking = p.Ballots[i].Ranking
		}
	}
	return info, nil
}
