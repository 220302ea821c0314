package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// simplicityScore measures how hard a scenario is to execute; lower is
// simpler. Affordability contributes 0/5/10 (none/partial/100%), approval
// path 0/2/5 (ministerial/administrative/discretionary), feasibility 0/3/8
// (High/Medium/Low).
func simplicityScore(s models.DevelopmentScenario) int {
	score := 0

	if !strings.Contains(s.AffordabilityRequired, "None") {
		if strings.Contains(s.AffordabilityRequired, "100%") {
			score += 10
		} else {
			score += 5
		}
	}

	switch {
	case strings.Contains(s.ApprovalPath, "Ministerial"):
		// simplest path
	case strings.Contains(s.ApprovalPath, "Administrative"):
		score += 2
	default:
		score += 5
	}

	switch s.Feasibility {
	case models.FeasibilityHigh:
	case models.FeasibilityMedium:
		score += 3
	default:
		score += 8
	}

	return score
}

// consolidateScenarios removes redundant scenarios that land on the same
// rounded unit count, keeping the one with the minimum simplicity score.
// Exact ties keep the first scenario in generation order, and group output
// preserves first-encounter order. Rounding is half to even, so a 42.5-unit
// scenario groups with 42, not 43.
func consolidateScenarios(scenarios []models.DevelopmentScenario) []models.DevelopmentScenario {
	groups := make(map[int][]models.DevelopmentScenario)
	order := []int{}
	for _, sc := range scenarios {
		key := int(math.RoundToEven(sc.TotalUnits))
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], sc)
	}

	consolidated := make([]models.DevelopmentScenario, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			consolidated = append(consolidated, group[0])
			continue
		}

		simplest := group[0]
		best := simplicityScore(simplest)
		for _, sc := range group[1:] {
			if score := simplicityScore(sc); score < best {
				simplest = sc
				best = score
			}
		}
		simplest.RecommendationReason = fmt.Sprintf("Simplest path to achieve %d units", key)
		consolidated = append(consolidated, simplest)
	}

	return consolidated
}
