package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDeductions(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want int
	}{
		{"clean plan", Metrics{}, 10},
		{"seq scan only", Metrics{HasSequentialScan: true}, 8},
		{"slow query", Metrics{ExecutionTimeMs: 600}, 7},
		{"half threshold", Metrics{ExecutionTimeMs: 300}, 9},
		// Exactly at the threshold is not slow (-3) but still exceeds
		// half of it (-1).
		{"at threshold takes half deduction", Metrics{ExecutionTimeMs: 500}, 9},
		{"at half threshold no deduction", Metrics{ExecutionTimeMs: 250}, 10},
		{"high cost", Metrics{TotalCost: 10001}, 9},
		{"cost at boundary", Metrics{TotalCost: 10000}, 10},
		{
			"everything wrong clamps to 1",
			Metrics{
				ExecutionTimeMs:    9000,
				HasSequentialScan:  true,
				MissingIndexLikely: true,
				HasNestedLoop:      true,
				HasLargeSort:       true,
				HasTempDiskUsage:   true,
				TotalCost:          50000,
			},
			1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(&tc.m, 500))
		})
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	thresholds := []float64{0, 1, 250, 500, 100000}
	metrics := []Metrics{
		{},
		{ExecutionTimeMs: 1e9, TotalCost: 1e9, HasSequentialScan: true, MissingIndexLikely: true,
			HasNestedLoop: true, HasLargeSort: true, HasTempDiskUsage: true},
		{ExecutionTimeMs: 0.001},
	}
	for _, th := range thresholds {
		for i := range metrics {
			got := Score(&metrics[i], th)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 10)
		}
	}
}
