// Package report aggregates and exports the session history for the
// comparison view.
package report

import (
	"sort"

	"thyrocast/session"
)

// ConfidencePoint is one step of the confidence-over-submissions series.
type ConfidencePoint struct {
	Index         int     `json:"index"`
	ConfidenceYes float64 `json:"confidence_yes"`
	ConfidenceNo  float64 `json:"confidence_no"`
}

// Summary aggregates the current session history.
type Summary struct {
	Entries           int               `json:"entries"`
	MeanConfidenceYes float64           `json:"mean_confidence_yes"`
	Verdicts          map[string]int    `json:"verdicts"`
	RiskLevels        map[string]int    `json:"risk_levels"`
	HighRisk          int               `json:"high_risk"`
	Series            []ConfidencePoint `json:"series"`
}

// Summarize computes the analytics rollup over the entries in submission
// order.
func Summarize(entries []session.Entry) Summary {
	summary := Summary{
		Verdicts:   make(map[string]int),
		RiskLevels: make(map[string]int),
		Series:     make([]ConfidencePoint, 0, len(entries)),
	}

	total := 0.0
	for i, entry := range entries {
		total += entry.Result.Probability
		summary.Verdicts[string(entry.Result.Verdict)]++
		summary.RiskLevels[entry.Record.Risk]++
		if entry.Result.HighRisk {
			summary.HighRisk++
		}
		summary.Series = append(summary.Series, ConfidencePoint{
			Index:         i,
			ConfidenceYes: entry.Result.Probability,
			ConfidenceNo:  entry.Result.ConfidenceNo,
		})
	}

	summary.Entries = len(entries)
	if len(entries) > 0 {
		summary.MeanConfidenceYes = total / float64(len(entries))
	}
	return summary
}

// TopRisk returns up to n entries ordered by recurrence confidence,
// highest first. Ties keep submission order.
func TopRisk(entries []session.Entry, n int) []session.Entry {
	ranked := append([]session.Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Probability > ranked[j].Result.Probability
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
