// Package selector implements the Selector (spec.md §4.5): a greedy
// fit-all-or-skip descent of the Scoring Engine's ranked list, stopping
// when the list is exhausted or the Top count is reached, never aborting
// early when a single candidate would overflow a byte or token budget.
//
// # Basic Usage
//
//	sel := selector.Select(idx, scored, types.BudgetFromPreset(preset))
//	for _, f := range sel.Files {
//	    fmt.Println(f.Path)
//	}
package selector
