package service

import (
	"log"

	"github.com/alzyras/ankicraft/types"
)

const charsPerPage = 2500

// PlannerService maps document size and coverage tier to a target flashcard
// count. Every tier covers the whole document; they differ only in density.
type PlannerService struct{}

func NewPlannerService() *PlannerService {
	return &PlannerService{}
}

// PlanTarget returns the number of flashcards to aim for. An explicit
// positive target always wins. An unknown tier is tolerated with a warning
// and the medium formula.
func (s *PlannerService) PlanTarget(charCount int, tier types.CoverageTier, explicitTarget int) int {
	if explicitTarget > 0 {
		return explicitTarget
	}

	pages := float64(charCount) / charsPerPage

	switch tier {
	case types.CoverageMinimal:
		// The most essential facts only, roughly one card per 20 pages.
		return clamp(int(pages/20), 10, 200)
	case types.CoverageMedium:
		// Balanced coverage, roughly one card per 5 pages.
		return clamp(int(pages/5), 20, 800)
	case types.CoverageMaximum:
		// Comprehensive coverage, roughly two cards per page.
		return clamp(int(pages*2), 50, 5000)
	default:
		log.Printf("Warning: invalid coverage level %q, defaulting to medium", tier)
		return clamp(int(pages/5), 20, 800)
	}
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
