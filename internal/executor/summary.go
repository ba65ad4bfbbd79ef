package executor

import "sort"

// Summary aggregates a whole script run.
type Summary struct {
	Total        int      `json:"total_queries"`
	Succeeded    int      `json:"successful"`
	Failed       int      `json:"failed"`
	Slow         int      `json:"slow_queries"`
	TotalTimeMs  float64  `json:"total_execution_time_ms"`
	AverageScore float64  `json:"average_performance_score"`
	Slowest      []Result `json:"slowest_queries,omitempty"`
}

// Summarize rolls results up into totals plus the three slowest
// successful statements. The average score covers only statements that
// have a captured plan.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}

	scored := 0
	scoreSum := 0
	for _, r := range results {
		s.TotalTimeMs += r.ExecutionTimeMs
		if !r.Success {
			s.Failed++
			continue
		}
		s.Succeeded++
		if r.IsSlow {
			s.Slow++
		}
		if r.Metrics != nil {
			scored++
			scoreSum += r.Metrics.PerformanceScore
		}
	}
	if scored > 0 {
		s.AverageScore = float64(scoreSum) / float64(scored)
	}

	ok := make([]Result, 0, s.Succeeded)
	for _, r := range results {
		if r.Success {
			ok = append(ok, r)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].ExecutionTimeMs > ok[j].ExecutionTimeMs
	})
	if len(ok) > 3 {
		ok = ok[:3]
	}
	s.Slowest = ok

	return s
}
