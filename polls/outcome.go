// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openballot/openballot/lifecycle"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/store"
	"github.com/openballot/openballot/tally"
)

// runBounded invokes fn under the time budget. On timeout the computation
// is abandoned, not awaited: the zero value and false come back and fn's
// eventual result is discarded.
func runBounded[T any](budget time.Duration, fn func() T) (T, bool) {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()
	select {
	case v := <-ch:
		return v, true
	case <-time.After(budget):
		var zero T
		return zero, false
	}
}

// Outcome computes (or returns) the poll's result.
//
// A completed poll with a stored result returns it verbatim, with no
// recomputation and no new tie-break draw. A caller who may not view the
// outcome gets metadata only. Otherwise the result is computed fresh; it is
// persisted, with is_completed set permanently, exactly when the poll is
// closed or already completed. An open poll's stored result is nulled out
// instead, so previews never look finalized.
//
// The whole read-compute-write runs under the poll's writer lock, so the
// random draw and the completion write cannot race a second finalizer.
func (m *Manager) Outcome(ctx context.Context, id, ownerID, voterID string) (*models.OutcomeInfo, error) {
	lock := m.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		p, err := m.load(ctx, id)
		if err != nil {
			return nil, err
		}

		now := m.now()
		isVoter, isOwner := lifecycle.VoterType(p, voterID, ownerID)
		canView := lifecycle.CanViewOutcome(p, now, isOwner, isVoter)
		closed := lifecycle.Closed(p, now)

		tz := p.Timezone
		if tz == "" {
			tz = "N/A"
		}
		info := &models.OutcomeInfo{
			Title:           p.Title,
			ElectionID:      p.ID,
			CanView:         canView,
			IsClosed:        closed,
			IsCompleted:     p.IsCompleted,
			ClosingDatetime: lifecycle.ClosingLabel(p),
			Timezone:        tz,
		}

		if p.IsCompleted && p.Result != nil {
			info.Result = p.Result
			return info, nil
		}
		if !canView {
			return info, nil
		}

		result := m.computeResult(p)

		if closed || p.IsCompleted {
			// Finalize. The draw happens here and only here, so repeated
			// previews of an open poll never show different picks.
			if len(result.SVWinners) > 1 {
				result.SelectedSVWinner = result.SVWinners[m.pick(len(result.SVWinners))]
			}
			p.Result = result
			p.IsCompleted = true
			if err := m.store.UpdateOne(ctx, p); err != nil {
				if errors.Is(err, store.ErrVersionConflict) {
					lastErr = err
					continue
				}
				return nil, err
			}
			m.logger.Info("poll finalized", "poll", id, "winners", result.SVWinners,
				"selected", result.SelectedSVWinner)
			info.IsCompleted = true
			info.Result = result
			return info, nil
		}

		if p.Result != nil {
			p.Result = nil
			if err := m.store.UpdateOne(ctx, p); err != nil {
				if errors.Is(err, store.ErrVersionConflict) {
					lastErr = err
					continue
				}
				return nil, err
			}
		}
		info.Result = result
		return info, nil
	}
	return nil, fmt.Errorf("poll %s: too many concurrent writers: %w", id, lastErr)
}

type svOutput struct {
	winners      []string
	explanations map[string][]tally.Explanation
}

// computeResult builds the full Result for the poll's current ballots. The
// defeat, stable-winner, and splitting-number computations each run under
// the configured time budget; on timeout a cheaper winner-only fallback
// fills in and the premium details (defeat edges, explanations) stay empty.
func (m *Manager) computeResult(p *models.Poll) *models.Result {
	res := &models.Result{
		Margins:          map[string]map[string]int{},
		Cmap:             tally.CandidateMap(p.Candidates),
		ShowRankings:     p.ShowRankings,
		SVWinners:        []string{},
		SCWinners:        []string{},
		Explanations:     map[string][]models.Explanation{},
		Defeats:          map[string]map[string]bool{},
		SplittingNumbers: map[string]int{},
		LinearOrder:      []string{},
		Columns:          [][]string{{}},
	}

	if len(p.Ballots) == 0 {
		res.NoCandidatesRanked = true
		return res
	}
	prof := tally.NewProfile(p.Candidates, ballotRankings(p))
	if !prof.AnyRanked() {
		res.NoCandidatesRanked = true
		return res
	}

	budget := m.cfg.TallyTimeout
	if budget <= 0 {
		budget = 2 * time.Second
	}

	res.Margins = prof.MarginMatrix()
	res.NumVoters = prof.NumVoters()
	res.Columns, res.NumRows = tally.Columns(prof)
	if w, ok := prof.CondorcetWinner(); ok {
		res.CondorcetWinner = w
	}
	if linear, order := prof.IsLinear(); linear {
		res.ProfIsLinear = true
		res.LinearOrder = order
	}

	if defeat, ok := runBounded(budget, func() *tally.Defeat {
		return m.algs.SplitCycleDefeat(prof)
	}); ok {
		res.Defeats = defeat.Matrix(p.Candidates)
		for _, c := range p.Candidates {
			defeated := false
			for _, c2 := range p.Candidates {
				if c2 != c && defeat.HasEdge(c2, c) {
					defeated = true
					break
				}
			}
			if !defeated {
				res.SCWinners = append(res.SCWinners, c)
			}
		}
	} else {
		res.SCWinners = m.algs.SplitCycleWinners(prof)
		for _, c := range p.Candidates {
			res.Defeats[c] = map[string]bool{}
		}
	}

	if sv, ok := runBounded(budget, func() svOutput {
		winners, explanations := m.algs.StableVotingWithExplanations(prof)
		return svOutput{winners, explanations}
	}); ok {
		res.SVWinners = sv.winners
		for winner, exps := range sv.explanations {
			converted := make([]models.Explanation, len(exps))
			for i, e := range exps {
				converted[i] = models.Explanation{
					Winner:     e.Winner,
					RunnerUp:   e.RunnerUp,
					Margin:     e.Margin,
					SubWinners: e.SubWinners,
				}
			}
			res.Explanations[winner] = converted
		}
	} else {
		res.SVWinners = m.algs.StableVoting(prof)
	}

	// Splitting numbers only matter when the margin graph has cycles.
	if res.CondorcetWinner == "" {
		if sn, ok := runBounded(budget, func() map[string]int {
			return m.algs.SplittingNumbers(prof)
		}); ok {
			res.SplittingNumbers = sn
		}
	}

	return res
}
