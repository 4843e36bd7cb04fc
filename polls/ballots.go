// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/openballot/openballot/lifecycle"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/tally"
)

func validateRanking(p *models.Poll, ranking map[string]int) error {
	known := make(map[string]bool, len(p.Candidates))
	for _, c := range p.Candidates {
		known[c] = true
	}
	for c, rank := range ranking {
		if !known[c] {
			return fmt.Errorf("%w: unknown candidate %q", ErrValidation, c)
		}
		if rank < 1 {
			return fmt.Errorf("%w: rank for %q must be positive", ErrValidation, c)
		}
	}
	return nil
}

// SubmitBallot admits one ballot. On a private poll the voter's existing
// ballot is replaced in place so re-voting keeps its position; on a public
// poll the source marker (hashed client IP) blocks duplicates unless the
// poll or the multi-vote password permits them.
func (m *Manager) SubmitBallot(ctx context.Context, id, vid, source, multiVotePwd string, req *models.SubmitBallotRequest) error {
	_, err := m.mutate(ctx, id, func(p *models.Poll) error {
		if err := validateRanking(p, req.Ranking); err != nil {
			return err
		}

		now := m.now()
		if p.IsCompleted || lifecycle.Closed(p, now) {
			return fmt.Errorf("%w: the poll is closed", ErrInvalidState)
		}

		if p.IsPrivate {
			if !p.HasVoter(vid) {
				return fmt.Errorf("%w: the poll is private", ErrNotEligible)
			}
			b := models.Ballot{Ranking: req.Ranking, VoterID: vid, SubmittedAt: now}
			if i := p.BallotFor(vid); i >= 0 {
				p.Ballots[i] = b
			} else {
				p.Ballots = append(p.Ballots, b)
			}
			return nil
		}

		allowMultiple := p.AllowMultipleVotes ||
			(multiVotePwd != "" && multiVotePwd == m.cfg.MultiVotePassword)
		if !allowMultiple && source != "" {
			for _, b := range p.Ballots {
				if b.Source == source {
					return ErrDuplicateVote
				}
			}
		}
		p.Ballots = append(p.Ballots, models.Ballot{
			Ranking:     req.Ranking,
			VoterID:     vid,
			SubmittedAt: now,
			Source:      source,
		})
		return nil
	})
	return err
}

// DeleteBallot removes the ballot owned by vid. Private polls only.
func (m *Manager) DeleteBallot(ctx context.Context, id, vid string) error {
	_, err := m.mutate(ctx, id, func(p *models.Poll) error {
		if !p.IsPrivate {
			return fmt.Errorf("%w: ballots can only be deleted on private polls", ErrInvalidState)
		}
		if lifecycle.MutationLocked(p) {
			return fmt.Errorf("%w: poll is completed", ErrInvalidState)
		}
		if !p.HasVoter(vid) {
			return fmt.Errorf("%w: cannot delete the ballot", ErrVoterNotFound)
		}
		i := p.BallotFor(vid)
		if i < 0 {
			return ErrBallotNotFound
		}
		p.Ballots = append(p.Ballots[:i], p.Ballots[i+1:]...)
		return nil
	})
	return err
}

// DeleteAllBallots clears the ballot collection. Rejected once the poll is
// closed or completed.
func (m *Manager) DeleteAllBallots(ctx context.Context, id, ownerID string) (int, error) {
	deleted := 0
	_, err := m.mutate(ctx, id, func(p *models.Poll) error {
		if ownerID == "" || ownerID != p.OwnerID {
			return ErrNotAuthorized
		}
		if p.IsCompleted {
			return fmt.Errorf("%w: cannot delete ballots from a completed poll", ErrInvalidState)
		}
		if lifecycle.Closed(p, m.now()) {
			return fmt.Errorf("%w: cannot delete ballots from a closed poll", ErrInvalidState)
		}
		if len(p.Ballots) == 0 {
			return fmt.Errorf("%w: no ballots to delete", ErrValidation)
		}
		deleted = len(p.Ballots)
		p.Ballots = []models.Ballot{}
		return nil
	})
	return deleted, err
}

// BulkImport parses CSV rows into ballots. The header must list the poll's
// candidates (set equality); an optional trailing count column replicates a
// row into that many ballots, each with a synthetic voter id of the form
// bulk<row>_<replica>. A header mismatch only aborts when strict is set,
// otherwise it is reported as a warning.
func (m *Manager) BulkImport(ctx context.Context, id, ownerID string, file io.Reader, filename string, overwrite, strict bool) (*models.BulkImportResponse, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed csv: %v", ErrValidation, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrValidation)
	}

	header := make([]string, len(records[0]))
	for i, c := range records[0] {
		header[i] = strings.TrimSpace(c)
	}

	resp := &models.BulkImportResponse{}
	_, err = m.mutate(ctx, id, func(p *models.Poll) error {
		if ownerID == "" || ownerID != p.OwnerID {
			return ErrNotAuthorized
		}
		if lifecycle.MutationLocked(p) {
			return fmt.Errorf("%w: poll is completed", ErrInvalidState)
		}
		resp.Warnings = nil

		numCands := len(p.Candidates)
		if len(header) < numCands || !sameCandidateSet(p.Candidates, header[:numCands]) {
			msg := "The candidates in the file do not match the candidates in the poll."
			if strict {
				return fmt.Errorf("%w: %s", ErrValidation, msg)
			}
			resp.Warnings = append(resp.Warnings, msg)
		}

		cands := header
		if len(cands) > numCands {
			cands = cands[:numCands]
		}

		var newBallots []models.Ballot
		now := m.now()
		for rowIdx, row := range records[1:] {
			if blankRow(row) {
				continue
			}
			ranking := make(map[string]int)
			for i, c := range cands {
				if i >= len(row) {
					break
				}
				cell := strings.TrimSpace(row[i])
				if cell == "" {
					continue
				}
				rank, err := strconv.Atoi(cell)
				if err != nil {
					return fmt.Errorf("%w: row %d: rank %q for %q is not an integer",
						ErrValidation, rowIdx+1, cell, c)
				}
				ranking[c] = rank
			}
			count := 1
			if len(row) > numCands {
				if cell := strings.TrimSpace(row[numCands]); cell != "" {
					if n, err := strconv.Atoi(cell); err == nil && n > 0 {
						count = n
					}
				}
			}
			for replica := 1; replica <= count; replica++ {
				newBallots = append(newBallots, models.Ballot{
					Ranking:     ranking,
					VoterID:     fmt.Sprintf("bulk%d_%d", rowIdx, replica),
					SubmittedAt: now,
					Source:      filename,
				})
			}
		}

		if overwrite {
			p.Ballots = newBallots
			resp.Success = fmt.Sprintf("Replaced all the ballots with %d ballots in the poll: %s.", len(newBallots), p.Title)
		} else {
			p.Ballots = append(p.Ballots, newBallots...)
			resp.Success = fmt.Sprintf("Added %d ballots to the poll: %s.", len(newBallots), p.Title)
		}
		resp.NumBallots = len(newBallots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("ballots imported", "poll", id, "ballots", resp.NumBallots, "overwrite", overwrite)
	return resp, nil
}

func sameCandidateSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// SubmittedRankings is the owner's raw view of the ballot data, including
// the grouped column layout and a CSV export that round-trips through
// BulkImport.
func (m *Manager) SubmittedRankings(ctx context.Context, id, ownerID string) (*models.SubmittedRankings, error) {
	p, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID == "" || ownerID != p.OwnerID {
		return nil, fmt.Errorf("%w: only the owner can view the ranking data", ErrNotAuthorized)
	}

	resp := &models.SubmittedRankings{
		UnrankedCandidates: []string{},
		Columns:            [][]string{{}},
		CSVData:            [][]string{{}},
	}

	for _, c := range p.Candidates {
		ranked := false
		for _, b := range p.Ballots {
			if _, ok := b.Ranking[c]; ok {
				ranked = true
				break
			}
		}
		if !ranked {
			resp.UnrankedCandidates = append(resp.UnrankedCandidates, c)
		}
	}
	for _, b := range p.Ballots {
		if len(b.Ranking) == 0 {
			resp.NumEmptyBallots++
		}
	}

	if len(p.Ballots) > 0 {
		prof := tally.NewProfile(p.Candidates, ballotRankings(p))
		resp.NumVoters = prof.NumVoters()
		resp.Columns, resp.NumRows = tally.Columns(prof)
		resp.CSVData = tally.CSVData(prof)
		resp.Cmap = tally.CandidateMap(p.Candidates)
	}
	return resp, nil
}

func ballotRankings(p *models.Poll) []tally.Ranking {
	out := make([]tally.Ranking, len(p.Ballots))
	for i, b := range p.Ballots {
		out[i] = tally.Ranking(b.Ranking)
	}
	return out
}
