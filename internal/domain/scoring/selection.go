package scoring

import (
	"fmt"

	"github.com/halleloo/fantasy-league/internal/domain/rules"
)

// A draft selection is a per-code choice for one contestant in the
// upcoming episode. Toggle codes carry a boolean, accumulating codes
// carry a count; the two are distinct types validated against the rule
// table at construction, so a toggle code can never hold a count and
// vice versa.

// Pick is the tagged union over ToggleSelection and
// AccumulatingSelection.
type Pick interface {
	// Code returns the code this pick applies to.
	Code() rules.Code
	// Count returns the effective occurrence count (0 or 1 for
	// toggles).
	Count() int
}

// ToggleSelection marks a one-shot code as applied or not.
type ToggleSelection struct {
	code rules.Code
	on   bool
}

// Code returns the toggled code.
func (t ToggleSelection) Code() rules.Code { return t.code }

// Count returns 1 when the toggle is on, 0 otherwise.
func (t ToggleSelection) Count() int {
	if t.on {
		return 1
	}
	return 0
}

// AccumulatingSelection carries an occurrence count for an
// accumulating code.
type AccumulatingSelection struct {
	code  rules.Code
	count int
}

// Code returns the accumulating code.
func (a AccumulatingSelection) Code() rules.Code { return a.code }

// Count returns the occurrence count.
func (a AccumulatingSelection) Count() int { return a.count }

// NewToggle builds a toggle pick for code, rejecting accumulating or
// unknown codes.
func NewToggle(t rules.Table, code rules.Code, on bool) (Pick, error) {
	rule, ok := t.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("selection: %w: %s", ErrUnknownCode, code)
	}
	if rule.Accumulates {
		return nil, fmt.Errorf("selection: %w: %s accumulates, needs a count", ErrSelectionKind, code)
	}
	return ToggleSelection{code: code, on: on}, nil
}

// NewAccumulating builds a counted pick for code, rejecting toggle or
// unknown codes and negative counts.
func NewAccumulating(t rules.Table, code rules.Code, count int) (Pick, error) {
	rule, ok := t.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("selection: %w: %s", ErrUnknownCode, code)
	}
	if !rule.Accumulates {
		return nil, fmt.Errorf("selection: %w: %s is one-shot, needs a toggle", ErrSelectionKind, code)
	}
	if count < 0 {
		return nil, fmt.Errorf("selection: %w: count %d for %s", ErrNegativeCount, count, code)
	}
	return AccumulatingSelection{code: code, count: count}, nil
}

// Selection is a full draft selection for one contestant: at most one
// pick per code.
type Selection struct {
	picks map[rules.Code]Pick
}

// NewSelection builds a selection from picks. A later pick for the
// same code replaces an earlier one.
func NewSelection(picks ...Pick) Selection {
	s := Selection{picks: make(map[rules.Code]Pick, len(picks))}
	for _, p := range picks {
		s.picks[p.Code()] = p
	}
	return s
}

// Counts converts the selection to the multiset form consumed by
// Points.
func (s Selection) Counts() rules.CodeCounts {
	counts := make(rules.CodeCounts, len(s.picks))
	for code, p := range s.picks {
		if n := p.Count(); n > 0 {
			counts[code] = n
		}
	}
	return counts
}

// Points computes the selection's point total against the table.
func (s Selection) Points(t rules.Table) int {
	return Points(s.Counts(), t)
}

// IsEmpty reports whether no pick contributes an occurrence.
func (s Selection) IsEmpty() bool {
	for _, p := range s.picks {
		if p.Count() > 0 {
			return false
		}
	}
	return true
}
