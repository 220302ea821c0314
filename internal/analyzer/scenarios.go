package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// generateScenarios emits one DevelopmentScenario per eligible program.
// Every formula applies the replacement floor max(candidate, existing) so a
// rent-stabilized parcel never loses units on paper. The generator never
// errors: missing upstream values (zero lot area, unknown zone, empty year)
// degrade to zero-unit scenarios.
func (s *Service) generateScenarios(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities, constraints models.Constraints,
	lotArea float64) []models.DevelopmentScenario {

	scenarios := []models.DevelopmentScenario{
		s.byRightScenario(base, existing, constraints, lotArea),
	}

	if incentives.TOCTier > 0 {
		scenarios = append(scenarios, s.tocScenario(base, existing, constraints, incentives.TOCTier))
	}
	if incentives.StateDensityBonus {
		scenarios = append(scenarios, s.stateDensityBonusScenario(base, existing, lotArea))
	}
	if incentives.SB9Eligible {
		if incentives.SB9LotSplitEligible {
			scenarios = append(scenarios, s.sb9LotSplitScenario(base, existing, lotArea))
		}
		scenarios = append(scenarios, s.sb9DuplexScenario(base, existing))
	}
	if incentives.ED1Eligible {
		scenarios = append(scenarios, s.ed1Scenario(base, existing, constraints, lotArea))
	}
	if incentives.SB35Eligible {
		scenarios = append(scenarios, s.sb35Scenario(base, existing, incentives))
	}
	if incentives.AB2011Eligible && strings.HasPrefix(base.Zone, "C") {
		scenarios = append(scenarios, s.ab2011Scenario(base, existing, incentives, lotArea))
	}
	if incentives.AB1287Eligible {
		scenarios = append(scenarios, s.ab1287Scenario(base, existing, incentives))
	}
	if incentives.SB330Eligible {
		scenarios = append(scenarios, s.sb330Scenario(base, existing, incentives))
	}
	if incentives.SB684Eligible {
		scenarios = append(scenarios, s.sb684Scenario(base, existing, incentives, lotArea))
	}

	return scenarios
}

func withRSOConstraint(constraints []string, isRSO bool) []string {
	if isRSO {
		return append(constraints, "RSO replacement required")
	}
	return constraints
}

func rsoCitation(isRSO bool) string {
	if isRSO {
		return "SB 330 Housing Crisis Act: RSO replacement requirements"
	}
	return ""
}

// citations filters out empty entries so conditional references never leave
// blank placeholders in the output.
func citations(refs ...string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

func densityCitation(zone string) string {
	section := "07"
	if strings.HasPrefix(zone, "R") && len(zone) > 1 {
		section = zone[1:]
	}
	return fmt.Sprintf("LAMC 12.%s: %s zone density requirement", section, zone)
}

func heightCitation(heightDistrict string) string {
	if heightDistrict != "" {
		return fmt.Sprintf("LAMC 12.21.C: Height District %s regulations", heightDistrict)
	}
	return "LAMC 12.21.C: Height regulations"
}

func (s *Service) byRightScenario(base models.BaseZoning, existing models.ExistingConditions,
	constraints models.Constraints, lotArea float64) models.DevelopmentScenario {

	total := math.Max(base.BaselineUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Clear regulatory path"
	if existing.IsRSO && float64(existing.Units) > base.BaselineUnits {
		feasibility = models.FeasibilityMedium
		reason = "Existing building exceeds base zoning density"
	} else if len(constraints.EnvironmentalHazards) > 2 {
		feasibility = models.FeasibilityMedium
		reason = "Multiple environmental hazards present"
	}

	calc := fmt.Sprintf("STEP 1: Calculate baseline density\n%s sq ft lot ÷ %s sq ft/unit (%s requirement) = %.1f units\n\nSTEP 2: Apply zoning rules\nBy-right development = %.1f units maximum\n\nFINAL: %.0f units total",
		commaF0(lotArea), commaInt(base.DensityFactor), base.Zone, base.BaselineUnits, base.BaselineUnits, total)
	if existing.IsRSO {
		calc += fmt.Sprintf("\n(Note: Must maintain %d existing RSO units)", existing.Units)
	}

	return models.DevelopmentScenario{
		Name:                  "By-Right",
		Description:           fmt.Sprintf("UNLOCK: Automatic right under %s zoning. No special requirements.", base.CompleteZone),
		TotalUnits:            total,
		NetNewUnits:           math.Max(0, total-float64(existing.Units)),
		AffordabilityRequired: "None",
		ApprovalPath:          "Administrative (if no demo) or CPC (if demo required)",
		KeyBenefits:           []string{"No affordability requirement", "Predictable approval", "Fastest path"},
		Constraints:           withRSOConstraint([]string{"Limited unit count"}, existing.IsRSO),
		Feasibility:           feasibility,
		FeasibilityReason:     reason,
		UnitCalculation:       calc,
		LegalCitations: citations(
			densityCitation(base.Zone),
			heightCitation(base.HeightDistrict),
			rsoCitation(existing.IsRSO),
		),
		RegulatoryPathway: fmt.Sprintf("Submit building permit application to LADBS for %s zoned property. Administrative approval if no demolition required. If demolition needed, may require City Planning Commission (CPC) approval and historic review process. Standard plan check, building inspection, and certificate of occupancy process. Timeline: 3-6 months for permits, 6-18 months construction depending on project size.", base.Zone),
	}
}

func (s *Service) tocScenario(base models.BaseZoning, existing models.ExistingConditions,
	constraints models.Constraints, tier int) models.DevelopmentScenario {

	bonusPct, ok := s.rules.TOCBonusPct[tier]
	if !ok {
		bonusPct = s.rules.TOCDefaultBonus
	}
	affordability, ok := s.rules.TOCAffordability[tier]
	if !ok {
		affordability = s.rules.TOCDefaultAfford
	}

	tocUnits := base.BaselineUnits * (1 + float64(bonusPct)/100)
	total := math.Max(tocUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Clear path with strong incentives"
	if existing.IsRSO {
		reason = "RSO replacement required but TOC streamlines process"
	} else if len(constraints.EnvironmentalHazards) > 1 {
		feasibility = models.FeasibilityMedium
		reason = "Environmental hazards may complicate construction"
	}

	calc := fmt.Sprintf("Baseline %.2f units × %.2f (TOC Tier %d = %d%% bonus) = %.2f units",
		base.BaselineUnits, float64(bonusPct)/100+1, tier, bonusPct, tocUnits)
	if existing.IsRSO && float64(existing.Units) > tocUnits {
		calc += fmt.Sprintf(" (floor = %d existing due to RSO)", existing.Units)
	}

	return models.DevelopmentScenario{
		Name:                  fmt.Sprintf("TOC Tier %d", tier),
		Description:           fmt.Sprintf("UNLOCK: Property within ½ mile of major transit stop (Tier %d area). Requires %s affordable units.", tier, affordability),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: affordability,
		ApprovalPath:          "Administrative approval (no CUP required)",
		KeyBenefits: []string{
			fmt.Sprintf("%d%% density bonus", bonusPct),
			"Reduced parking (0.5/unit or none)",
			"Height bonus possible",
			"Streamlined approval",
			"No parking minimums if Tier 3+",
		},
		Constraints:       withRSOConstraint([]string{"Affordability requirement"}, existing.IsRSO),
		Feasibility:       feasibility,
		FeasibilityReason: reason,
		UnitCalculation:   calc,
		LegalCitations: citations(
			fmt.Sprintf("LAMC 12.22-A.31: TOC Tier %d density bonus (%d%%)", tier, bonusPct),
			fmt.Sprintf("TOC Guidelines: %s affordability requirement for Tier %d", affordability, tier),
			"Measure JJJ (2016): Voter-approved TOC program",
			rsoCitation(existing.IsRSO),
		),
		RegulatoryPathway: fmt.Sprintf("Submit TOC application to City Planning with affordable housing commitment (%s). Administrative approval - no public hearing or conditional use permit required. Record affordable housing covenant. Building permits through LADBS with expedited plan check. Must comply with prevailing wage requirements. Timeline: 2-4 months for entitlements, 4-6 months for permits, expedited processing for TOC projects.", affordability),
	}
}

func (s *Service) stateDensityBonusScenario(base models.BaseZoning, existing models.ExistingConditions,
	lotArea float64) models.DevelopmentScenario {

	bonusPct := s.rules.StateDensityBonusPct
	multiplier := 1 + float64(bonusPct)/100
	sdbUnits := base.BaselineUnits * multiplier
	total := math.Max(sdbUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Straightforward application"
	if existing.IsRSO && float64(existing.Units) > base.BaselineUnits {
		feasibility = models.FeasibilityMedium
		reason = "Complex due to over-built RSO property"
	} else if isMultiFamily(base.Zone) {
		reason = "Multi-family zones have established SDB precedent"
	}

	calc := fmt.Sprintf("STEP 1: Calculate baseline density\n%s sq ft lot ÷ %s sq ft/unit (%s requirement) = %.1f units\n\nSTEP 2: Apply State Density Bonus\n%.1f baseline units × %.2f (%d%% bonus) = %.1f units\n\nSTEP 3: Check minimums\nmax(%.1f density bonus units, %d existing units) = %.1f units\n\nFINAL: %.0f units total",
		commaF0(lotArea), commaInt(base.DensityFactor), base.Zone, base.BaselineUnits,
		base.BaselineUnits, multiplier, bonusPct, sdbUnits,
		sdbUnits, existing.Units, total, total)

	refs := append([]string{}, s.rules.StateDensityCitations...)
	refs = append(refs, rsoCitation(existing.IsRSO))

	return models.DevelopmentScenario{
		Name:                  "State Density Bonus",
		Description:           fmt.Sprintf("UNLOCK: Available to all multi-family zones (%s). Requires affordable set-aside for maximum %d%% bonus.", base.Zone, bonusPct),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: s.rules.StateDensityAffordability,
		ApprovalPath:          "By-right with density bonus application (Gov Code 65915)",
		KeyBenefits: []string{
			fmt.Sprintf("Up to %d%% density bonus", bonusPct),
			"Up to 3 concessions (parking, setback, height)",
			"Reduced parking possible",
			"Cannot be denied if compliant",
		},
		Constraints:       withRSOConstraint([]string{"Affordability requirement"}, existing.IsRSO),
		Feasibility:       feasibility,
		FeasibilityReason: reason,
		UnitCalculation:   calc,
		LegalCitations:    citations(refs...),
		RegulatoryPathway: "Submit density bonus application to City Planning concurrent with building permit application. Cannot be denied if project meets objective standards. Negotiate up to 3 regulatory concessions (parking reduction, setback waivers, height increases). Record affordable housing covenant with 55-year term. Administrative approval - no public hearing required. Timeline: 60 days for density bonus determination, 4-8 months total permitting.",
	}
}

func (s *Service) sb9LotSplitScenario(base models.BaseZoning, existing models.ExistingConditions,
	lotArea float64) models.DevelopmentScenario {

	splitUnits := 4.0
	total := math.Max(splitUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Clear ministerial approval pathway for lot split"
	if existing.Units > 1 {
		feasibility = models.FeasibilityMedium
		reason = "Existing multi-unit may complicate lot split process"
	}

	return models.DevelopmentScenario{
		Name:                  "SB-9 Lot Split + Duplex",
		Description:           "UNLOCK: R1 zone with lot ≥2,400 sq ft. Split lot into two parcels, build duplex on each (4 total units). Ministerial approval required.",
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "None",
		ApprovalPath:          "Ministerial approval (SB-9, Gov Code 66411.7)",
		KeyBenefits: []string{
			"No affordability requirement",
			"Ministerial approval (no discretionary review)",
			"No parking minimums",
			"Maximum 4 total units",
			"Can sell lots separately",
		},
		Constraints: []string{
			"Minimum 1,200 sq ft per lot after split",
			"Owner-occupancy required for 3 years",
			"Cannot demolish existing home in some cases",
		},
		Feasibility:       feasibility,
		FeasibilityReason: reason,
		UnitCalculation: fmt.Sprintf("SB-9 lot split allows division of %s sq ft R1 lot into two parcels (minimum 1,200 sq ft each), with duplex allowed on each parcel = 2 units × 2 lots = 4 total units maximum. Calculation: Lot split eligible (lot ≥ 2,400 sq ft) → 2 parcels × 2 units each = 4 units total.",
			commaF0(lotArea)),
		LegalCitations: citations(
			"Gov Code 66411.7 (SB-9 lot split)",
			"Gov Code 65852.21 (SB-9 duplex allowance)",
			"AB-2097 (no parking minimums)",
		),
		RegulatoryPathway: "Submit ministerial SB-9 application to City Planning for lot split approval. Concurrent submittal of building permits for duplexes to LADBS. Owner-occupancy declaration required for 3+ years. No public hearing or discretionary review allowed. Must meet objective design standards. Timeline: 60 days maximum for lot split approval, 4-6 months for building permits, total 6-10 months.",
	}
}

func (s *Service) sb9DuplexScenario(base models.BaseZoning, existing models.ExistingConditions) models.DevelopmentScenario {
	duplexUnits := 2.0
	total := math.Max(duplexUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Simple ministerial conversion to duplex"
	if existing.Units > 1 {
		feasibility = models.FeasibilityMedium
		reason = "May need to reduce units to comply with duplex limit"
	}

	return models.DevelopmentScenario{
		Name:                  "SB-9 Duplex",
		Description:           "UNLOCK: R1 zone allows duplex conversion. Convert single-family home to duplex or build new duplex on existing lot.",
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "None",
		ApprovalPath:          "Ministerial approval (SB-9, Gov Code 65852.21)",
		KeyBenefits: []string{
			"No affordability requirement",
			"Ministerial approval",
			"No parking minimums if near transit",
			"Preserve neighborhood character",
		},
		Constraints: []string{
			"Owner-occupancy required for 3 years",
			"Cannot exceed duplex (2 units) on single lot",
		},
		Feasibility:       feasibility,
		FeasibilityReason: reason,
		UnitCalculation: fmt.Sprintf("SB-9 allows up to 2 units (duplex) on any R1-zoned lot regardless of size. Existing %d units → maximum 2 units allowed under SB-9 duplex provision. Calculation: max(2 units from SB-9, %d existing units) = %.0f units total.",
			existing.Units, existing.Units, total),
		LegalCitations: citations(
			"Gov Code 65852.21 (SB-9 duplex allowance)",
			"AB-2097 (no parking minimums near transit)",
			"Gov Code 65852.21(f) (owner-occupancy requirement)",
		),
		RegulatoryPathway: "Submit ministerial SB-9 duplex application to City Planning and building permits to LADBS. Owner-occupancy declaration for 3+ years required. Administrative approval only - no public hearings allowed. Must comply with objective development standards and building codes. Timeline: 60 days maximum for SB-9 approval, 4-6 months for permits, total 5-8 months.",
	}
}

// zoneDigit parses the numeric suffix of a residential zone ("R3" → 3).
// Non-numeric suffixes (RD3, RAS4) parse to 0 rather than failing.
func zoneDigit(zone string) int {
	if len(zone) < 2 {
		return 0
	}
	return parseYear(zone[1:])
}

func (s *Service) ed1Scenario(base models.BaseZoning, existing models.ExistingConditions,
	constraints models.Constraints, lotArea float64) models.DevelopmentScenario {

	affordableUnits := base.BaselineUnits * s.rules.ED1Multiplier
	total := math.Max(affordableUnits, float64(existing.Units))

	feasibility := models.FeasibilityHigh
	reason := "Strong policy support and streamlined process"
	switch {
	case existing.IsRSO && existing.Units >= 5:
		feasibility = models.FeasibilityMedium
		reason = "RSO replacement complex but ED-1 provides strong tools"
	case len(constraints.EnvironmentalHazards) >= 2:
		feasibility = models.FeasibilityMedium
		reason = "Environmental hazards require mitigation"
	case isResidential(base.Zone) && zoneDigit(base.Zone) >= 3:
		reason = "Well-suited for higher density affordable housing"
	}

	calc := fmt.Sprintf("STEP 1: Calculate baseline density\n%s sq ft lot ÷ %s sq ft/unit (%s requirement) = %.1f units\n\nSTEP 2: Apply ED-1 envelope bonus\n%.1f baseline units × %.1f (ED-1 allows maximum envelope) = %.1f units\n\nSTEP 3: Check minimums\nmax(%.1f ED-1 units, %d existing units) = %.1f units\n\nFINAL: %.0f units total (100%% affordable housing required)",
		commaF0(lotArea), commaInt(base.DensityFactor), base.Zone, base.BaselineUnits,
		base.BaselineUnits, s.rules.ED1Multiplier, affordableUnits,
		affordableUnits, existing.Units, total, total)

	return models.DevelopmentScenario{
		Name:                  "100% Affordable (ED-1)",
		Description:           fmt.Sprintf("UNLOCK: Available to all residential zones (%s). Requires 100%% affordable housing commitment (can be mix of income levels).", base.Zone),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "100% affordable housing (mix of VLI, LI, Moderate allowed)",
		ApprovalPath:          "Ministerial approval (Executive Directive 1)",
		KeyBenefits: []string{
			"No parking requirements",
			"Maximum height/FAR allowed",
			"Streamlined ministerial approval",
			"No EIR required",
			"Expedited permitting",
		},
		Constraints:       withRSOConstraint([]string{"100% affordability requirement"}, existing.IsRSO),
		Feasibility:       feasibility,
		FeasibilityReason: reason,
		UnitCalculation:   calc,
		LegalCitations: citations(
			"Executive Directive No. 1 (Mayor's Directive)",
			"LAMC 12.22-A.25 (100% affordable housing)",
			"Gov Code 65915 (no parking requirements for affordable)",
			"SB-35 streamlining provisions",
		),
	}
}

func (s *Service) sb35Scenario(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities) models.DevelopmentScenario {

	multiplier := 1 + float64(s.rules.SB35BonusPct)/100
	sb35Units := base.BaselineUnits * multiplier
	total := math.Max(sb35Units, float64(existing.Units))

	return models.DevelopmentScenario{
		Name:                  "SB-35 Streamlined Affordable",
		Description:           fmt.Sprintf("UNLOCK: %s. Requires 20%% affordable units.", incentives.SB35Description),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "20% affordable housing (varies by income mix)",
		ApprovalPath:          "Ministerial approval (SB-35, Gov Code 65913.4)",
		KeyBenefits: []string{
			"No CEQA review",
			"Ministerial approval",
			"Cannot be denied if compliant",
			"Expedited processing",
		},
		Constraints: withRSOConstraint([]string{
			"Affordability requirement",
			"Jurisdiction must not have met RHNA goals",
		}, existing.IsRSO),
		Feasibility:       models.FeasibilityHigh,
		FeasibilityReason: "Strong legal protection against denial",
		UnitCalculation: fmt.Sprintf("SB-35 streamlined approval allows %d%% density bonus for affordable housing projects. Base density %.1f units × %.2f SB-35 bonus = %.1f units. Requires jurisdiction to have failed RHNA goals and 20%% affordable units. Calculation: %.1f baseline units × %d%% SB-35 bonus = %.1f units total.",
			s.rules.SB35BonusPct, base.BaselineUnits, multiplier, sb35Units,
			base.BaselineUnits, 100+s.rules.SB35BonusPct, total),
		LegalCitations: citations(
			"Gov Code 65913.4 (SB-35 streamlined approval)",
			"Gov Code 65913.4(a)(5) (20% affordability)",
			"Gov Code 65913.4(c) (CEQA exemption)",
			"Gov Code 65913.4(b) (ministerial approval)",
		),
	}
}

func (s *Service) ab2011Scenario(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities, lotArea float64) models.DevelopmentScenario {

	units := 0.0
	if s.rules.AB2011DensityFactor > 0 {
		units = lotArea / s.rules.AB2011DensityFactor
	}
	total := math.Max(units, float64(existing.Units))

	return models.DevelopmentScenario{
		Name:                  "AB-2011 Commercial Conversion",
		Description:           fmt.Sprintf("UNLOCK: %s. Convert commercial property to housing.", incentives.AB2011Description),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "15% affordable housing or comparable fees",
		ApprovalPath:          "Ministerial approval (AB-2011, Gov Code 65912.111)",
		KeyBenefits: []string{
			"Ministerial approval",
			"Commercial to residential conversion",
			"Prevailing wage jobs",
			"CEQA streamlining",
		},
		Constraints: []string{
			"Affordability requirement",
			"Prevailing wage requirement",
			"Must meet objective standards",
		},
		Feasibility:       models.FeasibilityHigh,
		FeasibilityReason: "Clear conversion path for commercial properties",
		UnitCalculation: fmt.Sprintf("AB-2011 allows ministerial conversion of commercial land to housing at R4-equivalent density (1 unit per %.0f sq ft). Lot area %s sq ft ÷ %.0f sq ft/unit = %.1f units maximum on commercial %s zone. Calculation: %s sq ft lot ÷ %.0f sq ft per unit = %.1f units total.",
			s.rules.AB2011DensityFactor, commaF0(lotArea), s.rules.AB2011DensityFactor, units,
			base.Zone, commaF0(lotArea), s.rules.AB2011DensityFactor, total),
		LegalCitations: citations(
			"Gov Code 65912.111 (AB-2011 commercial conversion)",
			"Gov Code 65912.111(h) (15% affordability)",
			"Gov Code 65912.111(f) (prevailing wage)",
			"Gov Code 65912.111(g) (CEQA streamlining)",
		),
	}
}

func (s *Service) ab1287Scenario(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities) models.DevelopmentScenario {

	units := base.BaselineUnits * s.rules.AB1287Multiplier
	total := math.Max(units, float64(existing.Units))

	return models.DevelopmentScenario{
		Name:                  "AB-1287 Enhanced Density Bonus",
		Description:           fmt.Sprintf("UNLOCK: %s. Up to 100%% density bonus with moderate income units.", incentives.AB1287Description),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "Mix of moderate and very low income units for maximum bonus",
		ApprovalPath:          "By-right with enhanced density bonus application",
		KeyBenefits: []string{
			"Up to 100% density bonus",
			"Missing middle housing focus",
			"Additional concessions available",
			"Cannot be denied if compliant",
		},
		Constraints:       withRSOConstraint([]string{"Enhanced affordability requirement"}, existing.IsRSO),
		Feasibility:       models.FeasibilityHigh,
		FeasibilityReason: "Enhanced version of proven density bonus law",
		UnitCalculation: fmt.Sprintf("AB-1287 enhanced density bonus allows up to 100%% density bonus (double base density) for moderate and very low income units. Base density %.1f units × %.1f maximum AB-1287 bonus = %.1f units. Requires enhanced affordability mix. Calculation: %.1f baseline units × 200%% AB-1287 bonus = %.1f units total.",
			base.BaselineUnits, s.rules.AB1287Multiplier, units, base.BaselineUnits, total),
		LegalCitations: citations(
			"Gov Code 65915(f)(4) (AB-1287 enhanced bonus)",
			"Gov Code 65915.7 (moderate income provisions)",
			"Gov Code 65915(d)(2)(C) (100% bonus)",
			"Gov Code 65915(k) (additional concessions)",
		),
	}
}

func (s *Service) sb330Scenario(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities) models.DevelopmentScenario {

	units := base.BaselineUnits * s.rules.SB330Multiplier
	total := math.Max(units, float64(existing.Units))

	return models.DevelopmentScenario{
		Name:                  "SB-330 Builder's Remedy",
		Description:           fmt.Sprintf("UNLOCK: %s. Available when local housing element not certified.", incentives.SB330Description),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "20% affordable housing",
		ApprovalPath:          "Ministerial approval with Builder's Remedy protections",
		KeyBenefits: []string{
			"Overrides local zoning",
			"Ministerial approval",
			"Cannot be downzoned",
			"Strong legal protections",
		},
		Constraints: []string{
			"Only available during housing element non-compliance",
			"Affordability requirement",
			"Must meet objective standards",
		},
		Feasibility:       models.FeasibilityMedium,
		FeasibilityReason: "Depends on housing element certification status",
		UnitCalculation: fmt.Sprintf("SB-330 Builder's Remedy allows significant density increase when local housing element is not HCD-certified. Base density %.1f units × %.1f conservative upzoning multiplier = %.1f units. Available only during housing element non-compliance. Calculation: %.1f baseline units × 150%% Builder's Remedy potential = %.1f units total.",
			base.BaselineUnits, s.rules.SB330Multiplier, units, base.BaselineUnits, total),
		LegalCitations: citations(
			"Gov Code 65589.5 (SB-330 Builder's Remedy)",
			"Gov Code 65589.5(j)(2) (20% affordability)",
			"Gov Code 65589.5(j)(1) (override local zoning)",
			"Gov Code 65589.5(n) (ministerial approval)",
		),
	}
}

func (s *Service) sb684Scenario(base models.BaseZoning, existing models.ExistingConditions,
	incentives models.IncentiveOpportunities, lotArea float64) models.DevelopmentScenario {

	// Capped at 10 regardless of zoning density, floored at 3 to stay
	// meaningful for small baselines.
	units := math.Min(s.rules.SB684MaxUnits, math.Max(base.BaselineUnits, s.rules.SB684MinUnits))
	total := math.Max(units, float64(existing.Units))

	return models.DevelopmentScenario{
		Name:                  "SB-684 Small Site Housing",
		Description:           fmt.Sprintf("UNLOCK: %s. Ministerial approval in 60 days.", incentives.SB684Description),
		TotalUnits:            total,
		NetNewUnits:           total - float64(existing.Units),
		AffordabilityRequired: "None",
		ApprovalPath:          "Ministerial approval (SB-684) - 60 day maximum",
		KeyBenefits: []string{
			"No affordability requirement",
			"Ministerial approval",
			"CEQA-exempt",
			"60-day approval timeline",
			"No public hearings",
		},
		Constraints: withRSOConstraint([]string{
			"Maximum 10 units",
			"Urban lots under 5 acres only",
			"Must meet objective standards",
		}, existing.IsRSO),
		Feasibility:       models.FeasibilityHigh,
		FeasibilityReason: "Simple ministerial process for small projects",
		UnitCalculation: fmt.Sprintf("STEP 1: Check SB-684 eligibility\nLot size: %s sq ft < 217,800 sq ft (5 acres) ✓\nZone: %s (multifamily) ✓\n\nSTEP 2: Calculate SB-684 allowance\nSB-684 maximum = 10 units (regardless of zoning density)\nBase zoning allows = %.1f units\nMeaningful minimum = 3.0 units\n\nSTEP 3: Apply SB-684 formula\nmin(10 SB-684 max, max(%.1f zoning, 3.0 minimum)) = %.1f units\n\nFINAL: %.0f units total (no affordability required!)",
			commaF0(lotArea), base.Zone, base.BaselineUnits, base.BaselineUnits, units, total),
		LegalCitations: citations(
			"Gov Code 65913.5 (SB-684 small site housing)",
			"Gov Code 65913.5(a)(1) (10 unit maximum)",
			"Gov Code 65913.5(a)(2) (5 acre limitation)",
			"Gov Code 65913.5(b) (60-day approval)",
			"Gov Code 65913.5(c) (CEQA exemption)",
		),
	}
}
