package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alzyras/ankicraft/types"
)

func TestPlanTarget(t *testing.T) {
	planner := NewPlannerService()

	tests := []struct {
		name      string
		charCount int
		tier      types.CoverageTier
		explicit  int
		want      int
	}{
		{"explicit target always wins", 1_000_000, types.CoverageMinimal, 37, 37},
		{"medium floor", 25_000, types.CoverageMedium, 0, 20},
		{"medium mid-range", 1_250_000, types.CoverageMedium, 0, 100},
		{"medium ceiling", 10_000_000, types.CoverageMedium, 0, 800},
		{"minimal floor", 2_500, types.CoverageMinimal, 0, 10},
		{"minimal mid-range", 5_000_000, types.CoverageMinimal, 0, 100},
		{"minimal ceiling", 50_000_000, types.CoverageMinimal, 0, 200},
		{"maximum floor", 10_000, types.CoverageMaximum, 0, 50},
		{"maximum mid-range", 250_000, types.CoverageMaximum, 0, 200},
		{"maximum ceiling", 25_000_000, types.CoverageMaximum, 0, 5000},
		{"unknown tier defaults to medium", 25_000, types.CoverageTier("ultra"), 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planner.PlanTarget(tt.charCount, tt.tier, tt.explicit))
		})
	}
}

func TestPlanTargetMonotonic(t *testing.T) {
	planner := NewPlannerService()

	for _, tier := range []types.CoverageTier{types.CoverageMinimal, types.CoverageMedium, types.CoverageMaximum} {
		prev := 0
		for chars := 0; chars <= 30_000_000; chars += 500_000 {
			got := planner.PlanTarget(chars, tier, 0)
			assert.GreaterOrEqual(t, got, prev, "tier %s at %d chars", tier, chars)
			prev = got
		}
	}
}
