package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// rankScenarios assigns each scenario a composite recommendation score and
// sorts the list descending. The score combines a simplicity ladder, a
// capped unit-yield ratio, feasibility points, and contextual bonuses for
// situational fit. Ties keep generation order.
func rankScenarios(scenarios []models.DevelopmentScenario, base models.BaseZoning,
	existing models.ExistingConditions, lotArea float64) []models.DevelopmentScenario {

	for i := range scenarios {
		sc := &scenarios[i]
		score := 0.0
		reasons := []string{}

		switch simplicity := simplicityScore(*sc); {
		case simplicity <= 2:
			score += 4.0
			reasons = append(reasons, "very easy to build")
		case simplicity <= 5:
			score += 3.0
			reasons = append(reasons, "easy to build")
		case simplicity <= 8:
			score += 2.0
			reasons = append(reasons, "moderate complexity")
		default:
			score += 1.0
			reasons = append(reasons, "complex process")
		}

		if base.BaselineUnits > 0 {
			ratio := sc.TotalUnits / base.BaselineUnits
			yield := ratio * 1.5
			if yield > 3.0 {
				yield = 3.0
			}
			score += yield
			switch {
			case ratio >= 2.0:
				reasons = append(reasons, "excellent unit yield")
			case ratio >= 1.5:
				reasons = append(reasons, "good unit yield")
			case ratio >= 1.2:
				reasons = append(reasons, "modest unit yield")
			}
		}

		switch sc.Feasibility {
		case models.FeasibilityHigh:
			score += 3.0
			reasons = append(reasons, "high feasibility")
		case models.FeasibilityMedium:
			score += 2.0
			reasons = append(reasons, "medium feasibility")
		default:
			score += 1.0
			reasons = append(reasons, "challenging feasibility")
		}

		if lotArea < 3000 && (strings.Contains(sc.Name, "SB-9") || strings.Contains(sc.Name, "SB-684")) {
			score += 1.0
			reasons = append(reasons, "perfect for small lots")
		}
		if base.Zone == "R1" && strings.Contains(sc.Name, "SB-9") {
			score += 2.0
			reasons = append(reasons, "ideal for R1 properties")
		}
		if existing.IsRSO && (strings.Contains(sc.Name, "TOC") || strings.Contains(sc.Name, "State Density")) {
			score += 0.5
			reasons = append(reasons, "handles RSO well")
		}

		sc.RecommendationScore = score
		if len(reasons) > 3 {
			reasons = reasons[:3]
		}
		sc.RecommendationReason = fmt.Sprintf("Recommended because of %s", strings.Join(reasons, ", "))
	}

	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].RecommendationScore > scenarios[j].RecommendationScore
	})

	return scenarios
}
