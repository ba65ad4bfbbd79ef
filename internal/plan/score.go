package plan

const highCostThreshold = 10000

// Score rates a plan from 1 (worst) to 10 (best) by deducting points
// for each detected issue. The two execution-time rules are mutually
// exclusive; all other deductions stack.
func Score(m *Metrics, slowThresholdMs float64) int {
	score := 10

	if m.ExecutionTimeMs > slowThresholdMs {
		score -= 3
	} else if m.ExecutionTimeMs > slowThresholdMs/2 {
		score -= 1
	}

	if m.HasSequentialScan {
		score -= 2
	}
	if m.MissingIndexLikely {
		score -= 1
	}
	if m.HasNestedLoop {
		score -= 1
	}
	if m.HasLargeSort {
		score -= 1
	}
	if m.HasTempDiskUsage {
		score -= 1
	}
	if m.TotalCost > highCostThreshold {
		score -= 1
	}

	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
