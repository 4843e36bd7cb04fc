// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "sort"

// Explanation records one winning match in the Stable Voting recursion: the
// winner beat the runner-up by the given margin and remained a winner after
// the runner-up was removed.
type Explanation struct {
	Winner     string   `json:"winner"`
	RunnerUp   string   `json:"runner_up"`
	Margin     int      `json:"margin"`
	SubWinners []string `json:"sub_winners"`
}

// StableVoting returns the Stable Voting winners.
func StableVoting(p *Profile) []string {
	w, _ := stableVoting(p, p.Candidates, map[string][]string{}, nil)
	return w
}

// StableVotingWithExplanations additionally returns, for each winner, the
// matches that made it one. Only the top-level recursion is traced.
func StableVotingWithExplanations(p *Profile) ([]string, map[string][]Explanation) {
	explanations := make(map[string][]Explanation)
	w, _ := stableVoting(p, p.Candidates, map[string][]string{}, explanations)
	return w, explanations
}

type match struct {
	a, b   string
	margin int
}

// stableVoting implements the recursion: with one candidate left that
// candidate wins; otherwise consider matches (a, b) with a among the Split
// Cycle winners, in descending margin order, and declare a a winner if a
// still wins once b is removed. All matches at the highest margin that
// produces any winner are taken. Subsets are memoized since the recursion
// revisits them.
func stableVoting(p *Profile, curr []string, mem map[string][]string, explanations map[string][]Explanation) ([]string, map[string][]string) {
	if len(curr) == 1 {
		return curr, mem
	}
	key := setKey(curr)
	if w, ok := mem[key]; ok {
		return w, mem
	}

	pos := make(map[string]int, len(curr))
	for i, c := range curr {
		pos[c] = i
	}

	var matches []match
	for _, a := range SplitCycleWinners(p, curr) {
		for _, b := range curr {
			if a != b {
				matches = append(matches, match{a, b, p.Margin(a, b)})
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].margin != matches[j].margin {
			return matches[i].margin > matches[j].margin
		}
		if matches[i].a != matches[j].a {
			return pos[matches[i].a] < pos[matches[j].a]
		}
		return pos[matches[i].b] < pos[matches[j].b]
	})

	var winners []string
	won := make(map[string]bool)
	for i := 0; i < len(matches); {
		m := matches[i].margin
		for ; i < len(matches) && matches[i].margin == m; i++ {
			mt := matches[i]
			if won[mt.a] {
				continue
			}
			var sub []string
			sub, mem = stableVoting(p, subset(curr, mt.b), mem, nil)
			for _, w := range sub {
				if w == mt.a {
					winners = append(winners, mt.a)
					won[mt.a] = true
					if explanations != nil {
						explanations[mt.a] = append(explanations[mt.a], Explanation{
							Winner:     mt.a,
							RunnerUp:   mt.b,
							Margin:     mt.margin,
							SubWinners: sub,
						})
					}
					break
				}
			}
		}
		if len(winners) > 0 {
			break
		}
	}

	mem[key] = winners
	return winners, mem
}
