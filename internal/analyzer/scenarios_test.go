package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/lotscope/internal/models"
)

func findScenario(t *testing.T, scenarios []models.DevelopmentScenario, name string) models.DevelopmentScenario {
	t.Helper()
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc
		}
	}
	t.Fatalf("scenario %q not generated", name)
	return models.DevelopmentScenario{}
}

func hasScenario(scenarios []models.DevelopmentScenario, name string) bool {
	for _, sc := range scenarios {
		if sc.Name == name {
			return true
		}
	}
	return false
}

// rawScenarios runs everything up to (but not including) consolidation, so
// each program's units can be checked before overlapping totals collapse.
func rawScenarios(s *Service, rec models.PropertyRecord) []models.DevelopmentScenario {
	zone := extractZone(rec)
	base := s.baseZoning(zone, extractHeightDistrict(rec), rec.LotAreaSqFt)
	existing := existingConditions(rec.ExistingUnits, rec.BuildingSqFt, rec.YearBuilt, rec.IsRSO, base.BaselineUnits)
	incentives := s.evaluateIncentives(rec, zone)
	constraints := analyzeConstraints(rec, existing)
	return s.generateScenarios(base, existing, incentives, constraints, rec.LotAreaSqFt)
}

func TestGenerateScenariosSingleFamily(t *testing.T) {
	s := NewService(nil)
	rec := models.PropertyRecord{
		APN:           "5551001012",
		Zone:          "R1-1",
		LotAreaSqFt:   5000,
		ExistingUnits: 1,
	}

	scenarios := rawScenarios(s, rec)

	t.Run("should cap by-right at one unit on a standard R1 lot", func(t *testing.T) {
		sc := findScenario(t, scenarios, "By-Right")
		assert.Equal(t, 1.0, sc.TotalUnits)
		assert.Equal(t, 0.0, sc.NetNewUnits)
	})

	t.Run("should allow a duplex under SB-9", func(t *testing.T) {
		sc := findScenario(t, scenarios, "SB-9 Duplex")
		assert.Equal(t, 2.0, sc.TotalUnits)
		assert.Equal(t, 1.0, sc.NetNewUnits)
	})

	t.Run("should allow four units with a lot split", func(t *testing.T) {
		sc := findScenario(t, scenarios, "SB-9 Lot Split + Duplex")
		assert.Equal(t, 4.0, sc.TotalUnits)
		assert.Equal(t, models.FeasibilityHigh, sc.Feasibility)
	})

	t.Run("should not offer multi-family programs on R1", func(t *testing.T) {
		assert.False(t, hasScenario(scenarios, "State Density Bonus"))
		assert.False(t, hasScenario(scenarios, "SB-35 Streamlined Affordable"))
		assert.False(t, hasScenario(scenarios, "SB-684 Small Site Housing"))
	})
}

func TestGenerateScenariosMultiFamilyRSO(t *testing.T) {
	s := NewService(nil)
	rec := models.PropertyRecord{
		APN:           "5123018021",
		Zone:          "R4-2",
		LotAreaSqFt:   10000,
		ExistingUnits: 8,
		UseCode:       "0500",
		IsRSO:         true,
		YearBuilt:     "1965",
		ManualTOCTier: 3,
	}

	scenarios := rawScenarios(s, rec)

	t.Run("should compute baseline from R4 density", func(t *testing.T) {
		sc := findScenario(t, scenarios, "By-Right")
		assert.Equal(t, 25.0, sc.TotalUnits)
	})

	t.Run("should apply 70% bonus for TOC tier 3", func(t *testing.T) {
		sc := findScenario(t, scenarios, "TOC Tier 3")
		assert.InDelta(t, 42.5, sc.TotalUnits, 1e-9)
		assert.Equal(t, "10% VLI", sc.AffordabilityRequired)
	})

	t.Run("should apply 50% state density bonus", func(t *testing.T) {
		sc := findScenario(t, scenarios, "State Density Bonus")
		assert.InDelta(t, 37.5, sc.TotalUnits, 1e-9)
	})

	t.Run("should double baseline under ED-1 and AB-1287", func(t *testing.T) {
		assert.Equal(t, 50.0, findScenario(t, scenarios, "100% Affordable (ED-1)").TotalUnits)
		assert.Equal(t, 50.0, findScenario(t, scenarios, "AB-1287 Enhanced Density Bonus").TotalUnits)
	})

	t.Run("should cap SB-684 at ten units", func(t *testing.T) {
		sc := findScenario(t, scenarios, "SB-684 Small Site Housing")
		assert.Equal(t, 10.0, sc.TotalUnits)
	})

	t.Run("should flag RSO replacement on every applicable scenario", func(t *testing.T) {
		sc := findScenario(t, scenarios, "By-Right")
		assert.Contains(t, sc.Constraints, "RSO replacement required")
		assert.Contains(t, sc.LegalCitations, "SB 330 Housing Crisis Act: RSO replacement requirements")
	})

	t.Run("should cite at least one statute per scenario", func(t *testing.T) {
		for _, sc := range scenarios {
			require.NotEmpty(t, sc.LegalCitations, "scenario %s", sc.Name)
			for _, ref := range sc.LegalCitations {
				assert.NotEmpty(t, ref, "scenario %s", sc.Name)
			}
		}
	})
}

func TestGenerateScenariosRSOFloor(t *testing.T) {
	s := NewService(nil)
	rec := models.PropertyRecord{
		Zone:          "R3-1",
		LotAreaSqFt:   6000,
		ExistingUnits: 30,
		UseCode:       "0500",
		IsRSO:         true,
	}

	scenarios := rawScenarios(s, rec)
	require.NotEmpty(t, scenarios)

	// Baseline is 7.5 units, far below the 30 on site. Replacement floors
	// every program at the existing count.
	for _, sc := range scenarios {
		assert.GreaterOrEqual(t, sc.TotalUnits, 30.0, "scenario %s", sc.Name)
		assert.GreaterOrEqual(t, sc.NetNewUnits, 0.0, "scenario %s", sc.Name)
	}

	sc := findScenario(t, scenarios, "By-Right")
	assert.Equal(t, models.FeasibilityMedium, sc.Feasibility)
	assert.Equal(t, "Existing building exceeds base zoning density", sc.FeasibilityReason)
}

func TestGenerateScenariosCommercialConversion(t *testing.T) {
	s := NewService(nil)

	t.Run("should convert commercial lots at R4 density", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "C2-1", LotAreaSqFt: 20000, UseCode: "5100"}
		scenarios := rawScenarios(s, rec)
		sc := findScenario(t, scenarios, "AB-2011 Commercial Conversion")
		assert.Equal(t, 50.0, sc.TotalUnits)
	})

	t.Run("should not offer conversion on residential zones", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "R3-1", LotAreaSqFt: 20000}
		scenarios := rawScenarios(s, rec)
		assert.False(t, hasScenario(scenarios, "AB-2011 Commercial Conversion"))
	})
}

func TestED1Feasibility(t *testing.T) {
	s := NewService(nil)

	t.Run("should favor higher density residential zones", func(t *testing.T) {
		scenarios := rawScenarios(s, models.PropertyRecord{Zone: "R3-1", LotAreaSqFt: 8000})
		sc := findScenario(t, scenarios, "100% Affordable (ED-1)")
		assert.Equal(t, models.FeasibilityHigh, sc.Feasibility)
		assert.Equal(t, "Well-suited for higher density affordable housing", sc.FeasibilityReason)
	})

	t.Run("should tolerate non-numeric zone suffixes", func(t *testing.T) {
		scenarios := rawScenarios(s, models.PropertyRecord{Zone: "RD1.5-1", LotAreaSqFt: 8000})
		sc := findScenario(t, scenarios, "100% Affordable (ED-1)")
		assert.Equal(t, models.FeasibilityHigh, sc.Feasibility)
		assert.Equal(t, "Strong policy support and streamlined process", sc.FeasibilityReason)
	})

	t.Run("should downgrade large RSO buildings", func(t *testing.T) {
		scenarios := rawScenarios(s, models.PropertyRecord{
			Zone: "R4-2", LotAreaSqFt: 10000, ExistingUnits: 12, UseCode: "0500", IsRSO: true,
		})
		sc := findScenario(t, scenarios, "100% Affordable (ED-1)")
		assert.Equal(t, models.FeasibilityMedium, sc.Feasibility)
	})
}

func TestZoneDigit(t *testing.T) {
	assert.Equal(t, 3, zoneDigit("R3"))
	assert.Equal(t, 5, zoneDigit("R5"))
	assert.Equal(t, 0, zoneDigit("RD1.5"))
	assert.Equal(t, 0, zoneDigit("RAS4"))
	assert.Equal(t, 0, zoneDigit("R"))
	assert.Equal(t, 0, zoneDigit(""))
}

func TestCitationHelpers(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, citations("a", "", "b", ""))
	assert.Empty(t, citations("", ""))

	assert.Equal(t, "LAMC 12.4: R4 zone density requirement", densityCitation("R4"))
	assert.Equal(t, "LAMC 12.07: C2 zone density requirement", densityCitation("C2"))
	assert.Equal(t, "LAMC 12.21.C: Height District 2 regulations", heightCitation("2"))
	assert.Equal(t, "LAMC 12.21.C: Height regulations", heightCitation(""))
}
