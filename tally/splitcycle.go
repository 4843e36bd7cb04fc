// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"strings"
)

// Defeat is the defeat relation produced by SplitCycleDefeat.
type Defeat struct {
	edges map[string]map[string]bool
}

// HasEdge reports whether a defeats b.
func (d *Defeat) HasEdge(a, b string) bool {
	return d.edges[a][b]
}

// Matrix renders the relation over the given candidates for serialization.
func (d *Defeat) Matrix(candidates []string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(candidates))
	for _, a := range candidates {
		row := make(map[string]bool, len(candidates))
		for _, b := range candidates {
			if a != b {
				row[b] = d.edges[a][b]
			}
		}
		out[a] = row
	}
	return out
}

// strengths computes, for every ordered pair, the widest-path strength over
// the positive-margin graph restricted to curr: the maximum over paths of
// the minimum margin along the path.
func strengths(p *Profile, curr []string) map[string]map[string]int {
	s := make(map[string]map[string]int, len(curr))
	for _, a := range curr {
		s[a] = make(map[string]int, len(curr))
		for _, b := range curr {
			if a != b && p.Margin(a, b) > 0 {
				s[a][b] = p.Margin(a, b)
			}
		}
	}
	for _, k := range curr {
		for _, a := range curr {
			for _, b := range curr {
				if a == b || a == k || b == k {
					continue
				}
				w := s[a][k]
				if s[k][b] < w {
					w = s[k][b]
				}
				if w > s[a][b] {
					s[a][b] = w
				}
			}
		}
	}
	return s
}

// SplitCycleDefeat computes the Split Cycle defeat relation restricted to
// curr (all candidates when curr is nil): a defeats b when the margin of a
// over b is positive and exceeds the strength of every path from b back to
// a, so the edge survives the weakest link of every cycle through it.
func SplitCycleDefeat(p *Profile, curr []string) *Defeat {
	if curr == nil {
		curr = p.Candidates
	}
	s := strengths(p, curr)
	d := &Defeat{edges: make(map[string]map[string]bool, len(curr))}
	for _, a := range curr {
		d.edges[a] = make(map[string]bool, len(curr))
		for _, b := range curr {
			if a == b {
				continue
			}
			m := p.Margin(a, b)
			d.edges[a][b] = m > 0 && m > s[b][a]
		}
	}
	return d
}

// SplitCycleWinners returns the candidates in curr left undefeated by
// SplitCycleDefeat, in candidate-list order.
func SplitCycleWinners(p *Profile, curr []string) []string {
	if curr == nil {
		curr = p.Candidates
	}
	d := SplitCycleDefeat(p, curr)
	var winners []string
	for _, a := range curr {
		defeated := false
		for _, b := range curr {
			if b != a && d.HasEdge(b, a) {
				defeated = true
				break
			}
		}
		if !defeated {
			winners = append(winners, a)
		}
	}
	return winners
}

// SplittingNumbers enumerates the simple cycles of the positive-margin
// graph and maps each cycle to the minimal margin along it, the number of
// voters whose removal would break the cycle. Only meaningful when there is
// no Condorcet winner.
func SplittingNumbers(p *Profile) map[string]int {
	n := len(p.Candidates)
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		for j := range adj[i] {
			adj[i][j] = i != j && p.Margin(p.Candidates[i], p.Candidates[j]) > 0
		}
	}

	out := make(map[string]int)
	// Each cycle is found once, rooted at its smallest-index vertex.
	var path []int
	onPath := make([]bool, n)
	var dfs func(root, v int)
	dfs = func(root, v int) {
		path = append(path, v)
		onPath[v] = true
		for w := 0; w < n; w++ {
			if !adj[v][w] || w < root {
				continue
			}
			if w == root && len(path) >= 2 {
				recordCycle(p, path, out)
				continue
			}
			if !onPath[w] {
				dfs(root, w)
			}
		}
		onPath[v] = false
		path = path[:len(path)-1]
	}
	for root := 0; root < n; root++ {
		dfs(root, root)
	}
	return out
}

func recordCycle(p *Profile, path []int, out map[string]int) {
	names := make([]string, len(path))
	for i, v := range path {
		names[i] = p.Candidates[v]
	}
	min := 0
	for i := range names {
		m := p.Margin(names[i], names[(i+1)%len(names)])
		if i == 0 || m < min {
			min = m
		}
	}
	out[strings.Join(names, " -> ")+" -> "+names[0]] = min
}

// subset returns curr without the excluded candidate.
func subset(curr []string, excluded string) []string {
	out := make([]string, 0, len(curr)-1)
	for _, c := range curr {
		if c != excluded {
			out = append(out, c)
		}
	}
	return out
}

func setKey(curr []string) string {
	s := make([]string, len(curr))
	copy(s, curr)
	sort.Strings(s)
	return strings.Join(s, "|")
}
