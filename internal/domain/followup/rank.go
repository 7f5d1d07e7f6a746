package followup

import "sort"

// Rank orders candidates for display: urgency tier first (high > medium >
// low), then most overdue first, stable on discovery order.
// POST: candidates is sorted in place and returned
func Rank(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if urgencyRank[candidates[i].Urgency] != urgencyRank[candidates[j].Urgency] {
			return urgencyRank[candidates[i].Urgency] > urgencyRank[candidates[j].Urgency]
		}
		return candidates[i].OverdueHours > candidates[j].OverdueHours
	})
	return candidates
}
