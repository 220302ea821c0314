package analyzer

// RuleSet bundles every statutory constant the engine uses, tagged with the
// vintage it was codified under. Bonus percentages change as statutes are
// amended (AB 2345 raised the state density bonus cap from 35% to 50% for
// applications after January 1, 2021), so callers select the vintage that
// matches their entitlement date instead of the code silently merging them.
type RuleSet struct {
	Vintage string

	// Density factors in sq ft of lot area per unit, keyed by base zone.
	DensityFactors       map[string]int
	DefaultDensityFactor int

	// Height and FAR limits keyed by height district. A zero value means
	// the district has no codified limit (NL).
	HeightLimits        map[string]float64
	FARLimits           map[string]float64
	DefaultHeightLimit  float64
	DefaultFARLimit     float64
	NoLimitHeightFt     float64
	NoLimitFAR          float64

	// TOC bonus percentage and affordability set-aside by tier.
	TOCBonusPct      map[int]int
	TOCAffordability map[int]string
	TOCDefaultBonus  int
	TOCDefaultAfford string

	// State density bonus (Gov Code 65915).
	StateDensityBonusPct     int
	StateDensityAffordability string
	StateDensityCitations    []string

	// Flat program multipliers applied to baseline units.
	ED1Multiplier    float64
	SB35BonusPct     int
	SB330Multiplier  float64
	AB1287Multiplier float64

	// SB-684 small-site program bounds.
	SB684MaxUnits float64
	SB684MinUnits float64

	// AB-2011 converts commercial land at this density (sq ft per unit).
	AB2011DensityFactor float64
}

func baseDensityFactors() map[string]int {
	return map[string]int{
		"R1": 5000, "RS": 5000, "RE": 2000, "RA": 2000,
		"RD1.5": 1500, "RD2": 2000, "RD3": 1500, "RD4": 1200, "RD5": 1000, "RD6": 800,
		"RU": 800, "R2": 800, "R3": 800, "R4": 400, "R5": 200,
		"RAS3": 800, "RAS4": 400,
	}
}

func newRuleSet(vintage string) *RuleSet {
	rs := &RuleSet{
		Vintage:              vintage,
		DensityFactors:       baseDensityFactors(),
		DefaultDensityFactor: 1000,
		HeightLimits: map[string]float64{
			"1": 45, "1L": 30, "1VL": 25, "1XL": 20,
			"2": 75, "3": 150, "4": 275, "NL": 0,
		},
		FARLimits: map[string]float64{
			"1": 1.5, "2": 6.0, "3": 6.0, "4": 13.0, "NL": 0,
		},
		DefaultHeightLimit: 45,
		DefaultFARLimit:    1.5,
		NoLimitHeightFt:    200,
		NoLimitFAR:         6.0,

		TOCBonusPct:      map[int]int{1: 50, 2: 60, 3: 70, 4: 80},
		TOCAffordability: map[int]string{1: "8% VLI", 2: "9% VLI", 3: "10% VLI", 4: "11% VLI"},
		TOCDefaultBonus:  50,
		TOCDefaultAfford: "11% VLI",

		ED1Multiplier:    2.0,
		SB35BonusPct:     25,
		SB330Multiplier:  1.5,
		AB1287Multiplier: 2.0,

		SB684MaxUnits: 10,
		SB684MinUnits: 3,

		AB2011DensityFactor: 400,
	}

	switch vintage {
	case "2023":
		// Pre-AB-2345 figures carried by the older engine.
		rs.StateDensityBonusPct = 35
		rs.StateDensityAffordability = "11% Very Low Income units for maximum 35% bonus"
		rs.StateDensityCitations = []string{
			"Gov Code 65915: California State Density Bonus Law",
			"Gov Code 65915(f): 35% maximum density bonus",
			"Gov Code 65915(d): Up to 3 regulatory concessions",
		}
	default:
		rs.StateDensityBonusPct = 50
		rs.StateDensityAffordability = "15% Very Low Income units (50% bonus) or sliding scale from 5% VLI (20% bonus)"
		rs.StateDensityCitations = []string{
			"Gov Code 65915: California State Density Bonus Law",
			"Gov Code 65915(b)(1)(B): 15% VLI units = 50% density bonus",
			"AB 2345 (2020): Increased maximum bonus from 35% to 50%",
			"Gov Code 65915(d): Up to 3 regulatory concessions",
		}
	}
	return rs
}

// DefaultVintage is the rule vintage applied when callers do not pass an
// explicit as-of selection.
const DefaultVintage = "2024"

// RuleSetFor returns the rule table for a vintage. Unknown vintages fall
// back to the default rather than erroring; which vintage governs a given
// application is a legal determination made upstream.
func RuleSetFor(vintage string) *RuleSet {
	switch vintage {
	case "2023":
		return newRuleSet("2023")
	default:
		return newRuleSet(DefaultVintage)
	}
}
