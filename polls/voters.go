// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"

	"github.com/openballot/openballot/auth"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/models"
)

// voterAdmin gates the voter-management operations: owner token required,
// private polls only.
func voterAdmin(p *models.Poll, ownerID string) error {
	if ownerID == "" || ownerID != p.OwnerID {
		return ErrNotAuthorized
	}
	if !p.IsPrivate {
		return fmt.Errorf("%w: voters can only be managed on private polls", ErrInvalidState)
	}
	return nil
}

// rotate swaps the voter's token for a fresh one: the email mapping moves
// over, any existing ballot is re-pointed, and the old token stops working.
func rotate(p *models.Poll, oldToken string) (string, error) {
	newToken, err := auth.GenerateVoterID()
	if err != nil {
		return "", fmt.Errorf("failed to issue voter id: %w", err)
	}
	replaced := false
	for i, vid := range p.VoterIDs {
		if vid == oldToken {
			p.VoterIDs[i] = newToken
			replaced = true
			break
		}
	}
	if !replaced {
		return "", ErrVoterNotFound
	}
	if email, ok := p.VoterEmailMap[oldToken]; ok {
		delete(p.VoterEmailMap, oldToken)
		p.VoterEmailMap[newToken] = email
	}
	for i := range p.Ballots {
		if p.Ballots[i].VoterID == oldToken {
			p.Ballots[i].VoterID = newToken
		}
	}
	return newToken, nil
}

// RotateVoter regenerates a voter's voting link. The voter's ballot, if
// any, survives under the new token.
func (m *Manager) RotateVoter(ctx context.Context, pollID, voterID, ownerID string) (*models.RotateVoterResponse, error) {
	var newToken, email, title string

	_, err := m.mutate(ctx, pollID, func(p *models.Poll) error {
		if err := voterAdmin(p, ownerID); err != nil {
			return err
		}
		email = p.VoterEmailMap[voterID]
		tok, err := rotate(p, voterID)
		if err != nil {
			return err
		}
		newToken, title = tok, p.Title
		return nil
	})
	if err != nil {
		return nil, err
	}

	url := m.voteURL(pollID, newToken)
	if email != "" {
		m.sendMail(mailer.RegeneratedLink(email, title, url))
	}
	m.logger.Info("voter link regenerated", "poll", pollID)

	return &models.RotateVoterResponse{
		Success:    "New voter link generated.",
		NewVoterID: newToken,
		VoteURL:    url,
	}, nil
}

// ResendInvite rotates the token belonging to the given email, bumps the
// per-email send counter, and re-sends the invitation. The counter starts
// at 1 for voters enrolled before send tracking existed.
func (m *Manager) ResendInvite(ctx context.Context, pollID, email, ownerID string) (string, error) {
	var newToken, title string
	var sent int

	_, err := m.mutate(ctx, pollID, func(p *models.Poll) error {
		if err := voterAdmin(p, ownerID); err != nil {
			return err
		}
		oldToken := ""
		for vid, em := range p.VoterEmailMap {
			if em == email {
				oldToken = vid
				break
			}
		}
		if oldToken == "" {
			return fmt.Errorf("%w: no voter with that email", ErrVoterNotFound)
		}
		tok, err := rotate(p, oldToken)
		if err != nil {
			return err
		}
		if p.EmailSendCounts == nil {
			p.EmailSendCounts = make(map[string]int)
		}
		count, ok := p.EmailSendCounts[email]
		if !ok {
			count = 1
		}
		p.EmailSendCounts[email] = count + 1

		newToken, title, sent = tok, p.Title, count+1
		return nil
	})
	if err != nil {
		return "", err
	}

	m.sendMail(mailer.Invitation(email, title, m.voteURL(pollID, newToken), ""))
	m.logger.Info("invitation resent", "poll", pollID, "sends", sent)

	return fmt.Sprintf("Email resent to %s. Total emails sent: %d", email, sent), nil
}

// RemoveVoter deletes the voter's token, email mapping, and ballot.
func (m *Manager) RemoveVoter(ctx context.Context, pollID, voterID, ownerID string) error {
	_, err := m.mutate(ctx, pollID, func(p *models.Poll) error {
		if err := voterAdmin(p, ownerID); err != nil {
			return err
		}
		if p.IsCompleted {
			// removal deletes the voter's ballot, which is frozen now
			return fmt.Errorf("%w: poll is completed", ErrInvalidState)
		}
		if !p.HasVoter(voterID) {
			return ErrVoterNotFound
		}

		kept := p.VoterIDs[:0]
		for _, vid := range p.VoterIDs {
			if vid != voterID {
				kept = append(kept, vid)
			}
		}
		p.VoterIDs = kept
		delete(p.VoterEmailMap, voterID)

		ballots := p.Ballots[:0]
		for _, b := range p.Ballots {
			if b.VoterID != voterID {
				ballots = append(ballots, b)
			}
		}
		p.Ballots = ballots
		return nil
	})
	return err
}
