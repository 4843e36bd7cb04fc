// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"strconv"
	"strings"
)

// Columns lays out the grouped profile for rendering: one column per
// distinct ballot type, the first cell holding the ballot count and each
// following cell the candidates tied at the next rank. Returns the columns
// and the row count of the tallest column.
func Columns(p *Profile) ([][]string, int) {
	if len(p.Rankings) == 0 {
		return [][]string{{}}, 0
	}

	columns := make([][]string, 0, len(p.Rankings))
	numRows := 0
	for i, r := range p.Rankings {
		col := []string{strconv.Itoa(p.Counts[i])}
		for _, group := range rankGroups(p.Candidates, r) {
			col = append(col, strings.Join(group, ", "))
		}
		if len(col) > numRows {
			numRows = len(col)
		}
		columns = append(columns, col)
	}
	return columns, numRows
}

// rankGroups returns the ranked candidates grouped by rank, best first,
// each group in candidate-list order.
func rankGroups(candidates []string, r Ranking) [][]string {
	byRank := make(map[int][]string)
	var ranks []int
	for _, c := range candidates {
		rank, ok := r[c]
		if !ok {
			continue
		}
		if _, seen := byRank[rank]; !seen {
			ranks = append(ranks, rank)
		}
		byRank[rank] = append(byRank[rank], c)
	}
	sort.Ints(ranks)
	groups := make([][]string, 0, len(ranks))
	for _, rank := range ranks {
		groups = append(groups, byRank[rank])
	}
	return groups
}

// CSVData renders the grouped profile as rows for download: a header row of
// candidate names plus a trailing count column, then one row per distinct
// ballot type with per-candidate ranks, blank for unranked. The layout
// round-trips through the bulk-import parser.
func CSVData(p *Profile) [][]string {
	header := make([]string, 0, len(p.Candidates)+1)
	header = append(header, p.Candidates...)
	header = append(header, "count")

	rows := [][]string{header}
	for i, r := range p.Rankings {
		row := make([]string, 0, len(p.Candidates)+1)
		for _, c := range p.Candidates {
			if rank, ok := r[c]; ok {
				row = append(row, strconv.Itoa(rank))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, strconv.Itoa(p.Counts[i]))
		rows = append(rows, row)
	}
	return rows
}
