// Package rules defines the scoring rule table and code parsing.
package rules

import (
	"sort"
	"strings"
)

// Code is a short symbolic tag for one scoring event, e.g. "D" for a
// maxi challenge win.
type Code string

// Rule describes how one code scores.
type Rule struct {
	Code   Code
	Points int
	Label  string
	// Accumulates allows the code to apply multiple times to one
	// contestant in one episode, each occurrence scoring independently.
	// Non-accumulating codes score at most once per episode.
	Accumulates bool
	// Seasonal marks finale-only bonuses.
	Seasonal bool
}

// Table maps each code to its rule. Codes are unique by construction
// and the table is treated as read-only after season load.
type Table map[Code]Rule

// CodeCounts is a multiset of codes applied to one contestant in one
// episode.
type CodeCounts map[Code]int

// DefaultTable returns the scoring table used by the demo season.
func DefaultTable() Table {
	return NewTable(
		Rule{Code: "E", Points: 1, Label: "Makes the host laugh", Accumulates: true},
		Rule{Code: "C", Points: 2, Label: "Wig snatch / clothing reveal", Accumulates: true},
		Rule{Code: "A", Points: 5, Label: "Mini challenge top contestant"},
		Rule{Code: "B", Points: 3, Label: "Safe / lip sync winner"},
		Rule{Code: "D", Points: 10, Label: "Maxi challenge winner"},
		Rule{Code: "F", Points: -2, Label: "Loses wig / wardrobe penalty"},
		Rule{Code: "G", Points: -1, Label: "Feuding contestants"},
		Rule{Code: "H", Points: 50, Label: "Correctly picked the season winner", Seasonal: true},
		Rule{Code: "I", Points: 30, Label: "Season winner is on your team", Seasonal: true},
		Rule{Code: "J", Points: 25, Label: "Miss Congeniality is on your team", Seasonal: true},
		Rule{Code: "K", Points: 20, Label: "Your contestant makes the finale", Seasonal: true},
	)
}

// NewTable builds a table from rules. Later rules with a duplicate
// code replace earlier ones so the code-uniqueness invariant holds.
func NewTable(rr ...Rule) Table {
	t := make(Table, len(rr))
	for _, r := range rr {
		t[r.Code] = r
	}
	return t
}

// Lookup returns the rule for code, reporting whether it exists.
func (t Table) Lookup(code Code) (Rule, bool) {
	r, ok := t[code]
	return r, ok
}

// ParseCodes parses a comma-separated code string like "D,E,E,B" into
// a count per code. Tokens are whitespace-trimmed; tokens not present
// in the table are silently discarded (documented policy, not an
// error). Empty input yields an empty multiset.
func ParseCodes(s string, t Table) CodeCounts {
	counts := CodeCounts{}
	if s == "" {
		return counts
	}
	for _, tok := range strings.Split(s, ",") {
		code := Code(strings.TrimSpace(tok))
		if _, ok := t[code]; !ok {
			continue
		}
		counts[code]++
	}
	return counts
}

// Clone returns an independent copy of the counts.
func (c CodeCounts) Clone() CodeCounts {
	out := make(CodeCounts, len(c))
	for code, n := range c {
		out[code] = n
	}
	return out
}

// IsEmpty reports whether no code has a positive count.
func (c CodeCounts) IsEmpty() bool {
	for _, n := range c {
		if n > 0 {
			return false
		}
	}
	return true
}

// String renders the counts back to the canonical comma-separated
// form, codes in table-independent sorted order, accumulating codes
// repeated per occurrence.
func (c CodeCounts) String() string {
	if len(c) == 0 {
		return ""
	}
	codes := make([]string, 0, len(c))
	for code, n := range c {
		for i := 0; i < n; i++ {
			codes = append(codes, string(code))
		}
	}
	sort.Strings(codes)
	return strings.Join(codes, ",")
}
