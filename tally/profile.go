// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"strconv"
	"strings"
)

// Ranking maps candidate name to rank. Smaller ranks are better; candidates
// absent from the map are unranked. Ties (equal ranks) are permitted.
type Ranking map[string]int

// Profile is a ranked ballot profile. Identical rankings are grouped with a
// count so the algorithms iterate over distinct ballot types.
type Profile struct {
	Candidates []string
	Rankings   []Ranking
	Counts     []int

	margins map[string]map[string]int
}

// NewProfile groups the given ballots into a profile over the candidate
// list. Ballot entries for unknown candidates are dropped.
func NewProfile(candidates []string, ballots []Ranking) *Profile {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}

	index := make(map[string]int)
	p := &Profile{Candidates: candidates}
	for _, b := range ballots {
		r := make(Ranking, len(b))
		for c, rank := range b {
			if known[c] {
				r[c] = rank
			}
		}
		key := rankingKey(candidates, r)
		if i, ok := index[key]; ok {
			p.Counts[i]++
			continue
		}
		index[key] = len(p.Rankings)
		p.Rankings = append(p.Rankings, r)
		p.Counts = append(p.Counts, 1)
	}

	p.buildMargins()
	return p
}

func rankingKey(candidates []string, r Ranking) string {
	var b strings.Builder
	for _, c := range candidates {
		if rank, ok := r[c]; ok {
			b.WriteString(strconv.Itoa(rank))
		}
		b.WriteByte('|')
	}
	return b.String()
}

// prefers reports whether the ranking places a strictly above b. A ranked
// candidate is above every unranked one.
func (r Ranking) prefers(a, b string) bool {
	ra, oka := r[a]
	rb, okb := r[b]
	if !oka {
		return false
	}
	return !okb || ra < rb
}

// Empty reports whether no candidate is ranked.
func (r Ranking) Empty() bool { return len(r) == 0 }

func (p *Profile) buildMargins() {
	p.margins = make(map[string]map[string]int, len(p.Candidates))
	for _, a := range p.Candidates {
		p.margins[a] = make(map[string]int, len(p.Candidates))
	}
	for _, a := range p.Candidates {
		for _, b := range p.Candidates {
			if a == b {
				continue
			}
			m := 0
			for i, r := range p.Rankings {
				if r.prefers(a, b) {
					m += p.Counts[i]
				} else if r.prefers(b, a) {
					m -= p.Counts[i]
				}
			}
			p.margins[a][b] = m
		}
	}
}

// Margin returns the number of voters preferring a to b minus the number
// preferring b to a. Antisymmetric: Margin(a, b) == -Margin(b, a).
func (p *Profile) Margin(a, b string) int {
	return p.margins[a][b]
}

// MarginMatrix returns the full margin matrix keyed by candidate name.
func (p *Profile) MarginMatrix() map[string]map[string]int {
	out := make(map[string]map[string]int, len(p.Candidates))
	for _, a := range p.Candidates {
		row := make(map[string]int, len(p.Candidates))
		for _, b := range p.Candidates {
			if a != b {
				row[b] = p.margins[a][b]
			}
		}
		out[a] = row
	}
	return out
}

// NumVoters returns the total ballot count.
func (p *Profile) NumVoters() int {
	n := 0
	for _, c := range p.Counts {
		n += c
	}
	return n
}

// AnyRanked reports whether at least one ballot ranks at least one
// candidate.
func (p *Profile) AnyRanked() bool {
	for _, r := range p.Rankings {
		if !r.Empty() {
			return true
		}
	}
	return false
}

// CondorcetWinner returns the candidate with a positive margin against
// every other candidate, if one exists.
func (p *Profile) CondorcetWinner() (string, bool) {
	for _, a := range p.Candidates {
		wins := true
		for _, b := range p.Candidates {
			if a != b && p.margins[a][b] <= 0 {
				wins = false
				break
			}
		}
		if wins {
			return a, true
		}
	}
	return "", false
}

// IsLinear reports whether the margin graph is a strict linear order, and
// if so returns candidates from strongest to weakest.
func (p *Profile) IsLinear() (bool, []string) {
	order := make([]string, len(p.Candidates))
	copy(order, p.Candidates)
	wins := make(map[string]int, len(p.Candidates))
	for _, a := range p.Candidates {
		for _, b := range p.Candidates {
			if a != b && p.margins[a][b] > 0 {
				wins[a]++
			}
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return wins[order[i]] > wins[order[j]]
	})
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if p.margins[order[i]][order[j]] <= 0 {
				return false, nil
			}
		}
	}
	return true, order
}

// CandidateMap assigns each candidate a compact string index for display
// layers, in candidate-list order.
func CandidateMap(candidates []string) map[string]string {
	cmap := make(map[string]string, len(candidates))
	for i, c := range candidates {
		cmap[strconv.Itoa(i)] = c
	}
	return cmap
}
