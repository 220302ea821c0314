package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/lotscope/internal/models"
)

func ruleByID(t *testing.T, id string) IncentiveRule {
	t.Helper()
	for _, rule := range Registry() {
		if rule.ID == id {
			return rule
		}
	}
	t.Fatalf("rule %q not registered", id)
	return IncentiveRule{}
}

func TestIncentiveRegistry(t *testing.T) {
	tests := []struct {
		id       string
		zone     string
		lotArea  float64
		useCode  string
		eligible bool
	}{
		{"state_density_bonus", "R3", 8000, "", true},
		{"state_density_bonus", "R1", 8000, "", false},
		{"state_density_bonus", "RS", 8000, "", false},
		{"sb9", "R1", 5000, "", true},
		{"sb9", "R2", 5000, "", false},
		{"sb9_lot_split", "R1", 2400, "", true},
		{"sb9_lot_split", "R1", 2399, "", false},
		{"sb9_lot_split", "R3", 5000, "", false},
		{"sb35", "R4", 10000, "", true},
		{"sb35", "R1", 10000, "", false},
		{"sb684", "R3", 10000, "", true},
		{"sb684", "R3", 217800, "", false},
		{"sb684", "R1", 10000, "", false},
		{"ed1", "R1", 5000, "", true},
		{"ed1", "C2", 5000, "", false},
		{"sb330", "RD3", 5000, "", true},
		{"sb330", "CM", 5000, "", false},
		{"ab2011", "C2", 5000, "", true},
		{"ab2011", "CW", 5000, "", true},
		{"ab2011", "M1", 5000, "5700", true},
		{"ab2011", "R3", 5000, "", true},
		{"ab2011", "M1", 5000, "3000", false},
		{"ab1287", "R4", 5000, "", true},
		{"ab2334", "RAS3", 5000, "", true},
		{"ab2097", "M1", 5000, "", true},
		{"opportunity_zone", "R4", 5000, "", false},
		{"adaptive_reuse", "C2", 5000, "", false},
	}

	for _, tt := range tests {
		rule := ruleByID(t, tt.id)
		got := rule.Eligible(tt.zone, tt.lotArea, tt.useCode)
		assert.Equal(t, tt.eligible, got, "%s on %s/%.0f/%q", tt.id, tt.zone, tt.lotArea, tt.useCode)
	}
}

func TestRegistryIsCopied(t *testing.T) {
	rules := Registry()
	require.NotEmpty(t, rules)
	rules[0].ID = "mutated"
	assert.NotEqual(t, "mutated", Registry()[0].ID)
}

func TestZoneClassification(t *testing.T) {
	assert.True(t, isResidential("R1"))
	assert.True(t, isResidential("RD1.5"))
	assert.False(t, isResidential("C2"))

	assert.True(t, isMultiFamily("R3"))
	assert.True(t, isMultiFamily("RAS4"))
	assert.False(t, isMultiFamily("R1"))
	assert.False(t, isMultiFamily("RS"))

	assert.True(t, isCommercial("C2-1", ""))
	assert.True(t, isCommercial("", "5100"))
	assert.False(t, isCommercial("R3", "0500"))
}

func TestExtractTOCTier(t *testing.T) {
	t.Run("should read an explicit tier attribute", func(t *testing.T) {
		rec := models.PropertyRecord{
			Transit: &models.TransitProximity{
				Layers: map[string]map[string]string{
					"TOC Tiers": {"TOC_TIER": "3"},
				},
			},
		}
		tier, desc := extractTOCTier(rec)
		assert.Equal(t, 3, tier)
		assert.Equal(t, "Property is within TOC Tier 3 area (GIS verified)", desc)
	})

	t.Run("should match textual tier references", func(t *testing.T) {
		rec := models.PropertyRecord{
			Transit: &models.TransitProximity{
				Layers: map[string]map[string]string{
					"toc incentive area": {"NOTES": "Parcel falls within Tier 2 boundary"},
				},
			},
		}
		tier, _ := extractTOCTier(rec)
		assert.Equal(t, 2, tier)
	})

	t.Run("should ignore layers unrelated to TOC", func(t *testing.T) {
		rec := models.PropertyRecord{
			Transit: &models.TransitProximity{
				Layers: map[string]map[string]string{
					"flood zones": {"TIER": "4"},
				},
			},
		}
		tier, _ := extractTOCTier(rec)
		assert.Equal(t, 0, tier)
	})

	t.Run("should prefer the explicit tier key over textual mentions", func(t *testing.T) {
		rec := models.PropertyRecord{
			Transit: &models.TransitProximity{
				Layers: map[string]map[string]string{
					"toc_tiers": {
						"TOC_TIER":  "3",
						"TIER_DESC": "Tier 1 area",
					},
				},
			},
		}
		for i := 0; i < 200; i++ {
			tier, _ := extractTOCTier(rec)
			require.Equal(t, 3, tier, "call %d", i)
		}
	})

	t.Run("should pick the same tier from competing layers every call", func(t *testing.T) {
		rec := models.PropertyRecord{
			Transit: &models.TransitProximity{
				Layers: map[string]map[string]string{
					"toc_east": {"STATUS": "Tier 2 boundary"},
					"toc_west": {"STATUS": "Tier 4 boundary"},
				},
			},
		}
		// Sorted layer order makes toc_east authoritative.
		for i := 0; i < 200; i++ {
			tier, _ := extractTOCTier(rec)
			require.Equal(t, 2, tier, "call %d", i)
		}
	})

	t.Run("should fall back to the manually supplied tier", func(t *testing.T) {
		rec := models.PropertyRecord{ManualTOCTier: 1}
		tier, desc := extractTOCTier(rec)
		assert.Equal(t, 1, tier)
		assert.Equal(t, "Property is within TOC Tier 1 area", desc)
	})

	t.Run("should report no tier when nothing matches", func(t *testing.T) {
		tier, desc := extractTOCTier(models.PropertyRecord{})
		assert.Equal(t, 0, tier)
		assert.Equal(t, "TOC eligibility requires proximity analysis to major transit", desc)
	})
}

func TestEvaluateIncentives(t *testing.T) {
	s := NewService(nil)

	t.Run("single-family lot", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "R1-1", LotAreaSqFt: 5000}
		inc := s.evaluateIncentives(rec, "R1")
		assert.True(t, inc.SB9Eligible)
		assert.True(t, inc.SB9LotSplitEligible)
		assert.True(t, inc.ED1Eligible)
		assert.True(t, inc.AB2097Eligible)
		assert.False(t, inc.StateDensityBonus)
		assert.False(t, inc.SB35Eligible)
		assert.False(t, inc.SB684Eligible)
		assert.False(t, inc.OpportunityZone)
	})

	t.Run("substandard single-family lot", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "R1-1", LotAreaSqFt: 2000}
		inc := s.evaluateIncentives(rec, "R1")
		assert.True(t, inc.SB9Eligible)
		assert.False(t, inc.SB9LotSplitEligible)
	})

	t.Run("multi-family lot", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "R3-1", LotAreaSqFt: 10000, ManualTOCTier: 2}
		inc := s.evaluateIncentives(rec, "R3")
		assert.True(t, inc.StateDensityBonus)
		assert.True(t, inc.SB35Eligible)
		assert.True(t, inc.SB684Eligible)
		assert.True(t, inc.AB1287Eligible)
		assert.True(t, inc.AB2334Eligible)
		assert.False(t, inc.SB9Eligible)
		assert.Equal(t, 2, inc.TOCTier)
	})

	t.Run("descriptions accompany flags", func(t *testing.T) {
		rec := models.PropertyRecord{Zone: "R4-2", LotAreaSqFt: 10000}
		inc := s.evaluateIncentives(rec, "R4")
		assert.NotEmpty(t, inc.SB35Description)
		assert.NotEmpty(t, inc.SB684Description)
		assert.NotEmpty(t, inc.AB1287Description)
		assert.NotEmpty(t, inc.TOCDistanceDescription)
	})
}
