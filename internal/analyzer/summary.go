package analyzer

import (
	"fmt"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// bestByUnits returns the scenario with the greatest total units; ties keep
// the earlier entry.
func bestByUnits(scenarios []models.DevelopmentScenario) (models.DevelopmentScenario, bool) {
	if len(scenarios) == 0 {
		return models.DevelopmentScenario{}, false
	}
	best := scenarios[0]
	for _, sc := range scenarios[1:] {
		if sc.TotalUnits > best.TotalUnits {
			best = sc
		}
	}
	return best, true
}

// bottomLine synthesizes the one-paragraph assessment from the baseline
// comparison, the replacement obligation, and the best feasible scenario.
func bottomLine(base models.BaseZoning, existing models.ExistingConditions,
	scenarios []models.DevelopmentScenario) string {

	var baselineNote string
	if existing.AboveBaseline {
		baselineNote = fmt.Sprintf("Site is already above base %s density (%d existing vs. %.0f allowed by-right).",
			base.Zone, existing.Units, base.BaselineUnits)
	} else {
		baselineNote = fmt.Sprintf("Site is under-built relative to base %s density (%d existing vs. %.0f allowed).",
			base.Zone, existing.Units, base.BaselineUnits)
	}

	rsoNote := "No RSO replacement requirements."
	if existing.IsRSO {
		rsoNote = fmt.Sprintf("RSO replacement requirement means any redevelopment must replace the %d existing rent-stabilized units first.",
			existing.Units)
	}

	feasible := []models.DevelopmentScenario{}
	for _, sc := range scenarios {
		if sc.Feasibility == models.FeasibilityHigh || sc.Feasibility == models.FeasibilityMedium {
			feasible = append(feasible, sc)
		}
	}

	unlockNote := "Limited development potential under current zoning."
	netNote := "Consider zoning changes or alternative strategies."
	if best, ok := bestByUnits(feasible); ok {
		unlockNote = fmt.Sprintf("The real unlock is %s (up to %.0f units).", best.Name, best.TotalUnits)
		netNote = fmt.Sprintf("Likely feasible outcome: %.0f units total with +%.0f net new units.",
			best.TotalUnits, best.NetNewUnits)
	}

	return strings.Join([]string{baselineNote, rsoNote, unlockNote, netNote}, " ")
}

// nextSteps builds the ordered action list for the analyst.
func nextSteps(scenarios []models.DevelopmentScenario, constraints models.Constraints) []string {
	steps := []string{}

	high := []models.DevelopmentScenario{}
	for _, sc := range scenarios {
		if sc.Feasibility == models.FeasibilityHigh {
			high = append(high, sc)
		}
	}
	if best, ok := bestByUnits(high); ok {
		steps = append(steps,
			fmt.Sprintf("Pursue %s for optimal unit yield", best.Name),
			fmt.Sprintf("Confirm %s affordability strategy", best.AffordabilityRequired))
	}

	if len(constraints.EnvironmentalHazards) > 0 {
		steps = append(steps, "Conduct environmental due diligence for hazard mitigation")
	}
	if constraints.RSOReplacementUnits > 0 {
		steps = append(steps, "Develop RSO tenant relocation and replacement unit plan")
	}

	steps = append(steps,
		"Verify TOC tier designation and transit proximity",
		"Engage with planning consultant for entitlement strategy")
	return steps
}

// propertySummary builds the one-line header: APN, addresses, lot size,
// zoning, and existing building.
func propertySummary(rec models.PropertyRecord, lotArea float64,
	base models.BaseZoning, existing models.ExistingConditions) string {

	var addresses string
	switch {
	case len(rec.AllAddresses) > 1:
		shown := rec.AllAddresses
		extra := ""
		if len(shown) > 3 {
			extra = fmt.Sprintf(" (+%d more)", len(shown)-3)
			shown = shown[:3]
		}
		addresses = fmt.Sprintf("%d addresses: %s%s", len(rec.AllAddresses), strings.Join(shown, ", "), extra)
	case len(rec.AllAddresses) == 1:
		addresses = rec.AllAddresses[0]
	case rec.Address != "":
		addresses = rec.Address
	default:
		addresses = "Address not available"
	}

	yearText := ""
	if existing.YearBuilt != "" {
		yearText = fmt.Sprintf(" (%s)", existing.YearBuilt)
	}

	return fmt.Sprintf("APN %s • %s • %s sq ft lot • %s zoning • %d existing units%s",
		rec.APN, addresses, commaF0(lotArea), base.CompleteZone, existing.Units, yearText)
}
