package analyzer

import (
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// extractZone resolves the base zone for a record: the explicit zone field
// (with any height-district suffix stripped), falling back to a use-code
// inference for records whose zoning layer was absent.
func extractZone(rec models.PropertyRecord) string {
	if rec.Zone != "" {
		base, _ := ParseZone(rec.Zone)
		return base
	}
	switch {
	case rec.UseCode == "0500":
		return "R4" // multi-family use
	case strings.HasPrefix(rec.UseCode, "1"):
		return "R1" // single-family use
	}
	return ""
}

// extractHeightDistrict resolves the height district: the explicit field,
// else the suffix of a combined zone string like "R3-1".
func extractHeightDistrict(rec models.PropertyRecord) string {
	if rec.HeightDistrict != "" {
		return rec.HeightDistrict
	}
	_, suffix := ParseZone(rec.Zone)
	return suffix
}

// Analyze runs the full pipeline on one normalized parcel record:
// envelope → existing conditions → incentives and constraints → scenario
// generation → consolidation → scoring → narrative. It is deterministic
// for a given input, never errors, and holds no state across calls, so a
// single Service can serve concurrent analyses.
func (s *Service) Analyze(rec models.PropertyRecord) models.DevelopmentAnalysis {
	zone := extractZone(rec)
	heightDistrict := extractHeightDistrict(rec)
	lotArea := rec.LotAreaSqFt

	base := s.baseZoning(zone, heightDistrict, lotArea)
	existing := existingConditions(rec.ExistingUnits, rec.BuildingSqFt, rec.YearBuilt, rec.IsRSO, base.BaselineUnits)
	incentives := s.evaluateIncentives(rec, zone)
	constraints := analyzeConstraints(rec, existing)

	scenarios := s.generateScenarios(base, existing, incentives, constraints, lotArea)
	scenarios = consolidateScenarios(scenarios)
	scenarios = rankScenarios(scenarios, base, existing, lotArea)

	return models.DevelopmentAnalysis{
		PropertySummary:        propertySummary(rec, lotArea, base, existing),
		RuleVintage:            s.rules.Vintage,
		BaseZoning:             base,
		ExistingConditions:     existing,
		IncentiveOpportunities: incentives,
		Constraints:            constraints,
		DevelopmentScenarios:   scenarios,
		BottomLine:             bottomLine(base, existing, scenarios),
		NextSteps:              nextSteps(scenarios, constraints),
	}
}
