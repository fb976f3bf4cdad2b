// Package summary derives category-level totals from the current ledger.
package summary

import (
	"sort"

	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// Totals groups the qualifying records by accounting category and sums
// their amounts. A record qualifies when it is not errored and carries
// both a category and an amount. Groups are ordered by descending total;
// ties keep first-occurrence order. An empty result means there is no
// summary to display, not an error.
func Totals(records []receipt.Result) []receipt.CategoryTotal {
	var totals []receipt.CategoryTotal
	byCategory := make(map[receipt.Category]int)

	for _, r := range records {
		if r.Failed() || r.Category == nil || r.Amount == nil {
			continue
		}
		i, ok := byCategory[*r.Category]
		if !ok {
			i = len(totals)
			byCategory[*r.Category] = i
			totals = append(totals, receipt.CategoryTotal{Category: *r.Category})
		}
		totals[i].Count++
		totals[i].TotalAmount += *r.Amount
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].TotalAmount > totals[b].TotalAmount
	})
	return totals
}

// GrandTotal sums the group totals.
func GrandTotal(totals []receipt.CategoryTotal) int {
	sum := 0
	for _, t := range totals {
		sum += t.TotalAmount
	}
	return sum
}
