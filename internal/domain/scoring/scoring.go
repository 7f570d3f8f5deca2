// Package scoring computes episode points from applied scoring codes.
package scoring

import "github.com/halleloo/fantasy-league/internal/domain/rules"

// Points computes the signed point total for a multiset of codes
// against the rule table.
//
// One-shot codes contribute their points exactly once when applied at
// least once, regardless of count. Accumulating codes contribute
// points multiplied by the occurrence count. The total is a sum over a
// map, so it is deterministic and independent of input order. A code
// absent from the table contributes 0; the parser is expected to have
// filtered unknown codes upstream.
func Points(counts rules.CodeCounts, t rules.Table) int {
	total := 0
	for code, n := range counts {
		if n <= 0 {
			continue
		}
		rule, ok := t.Lookup(code)
		if !ok {
			continue
		}
		if rule.Accumulates {
			total += rule.Points * n
		} else {
			total += rule.Points
		}
	}
	return total
}
