package models

// Feasibility classifies how likely a scenario is to be executable.
// Consumers compare the tag; the free-text reason lives alongside it.
type Feasibility string

const (
	FeasibilityHigh   Feasibility = "High"
	FeasibilityMedium Feasibility = "Medium"
	FeasibilityLow    Feasibility = "Low"
)

// BaseZoning describes the by-right development envelope for a parcel.
// Derived once per analysis and immutable thereafter.
type BaseZoning struct {
	Zone           string  `json:"zone"`
	HeightDistrict string  `json:"height_district"`
	CompleteZone   string  `json:"complete_zone"`
	DensityFactor  int     `json:"density_factor"`
	BaselineUnits  float64 `json:"baseline_units"`
	HeightLimitFt  float64 `json:"height_limit_ft"`
	FARLimit       float64 `json:"far_limit"`
	Interpretation string  `json:"interpretation"`
}

// ExistingConditions characterizes the current building against the
// baseline envelope.
type ExistingConditions struct {
	Units                 int      `json:"units"`
	BuildingSqFt          float64  `json:"building_sf"`
	YearBuilt             string   `json:"year_built"`
	IsRSO                 bool     `json:"is_rso"`
	ReplacementRequired   int      `json:"replacement_required"`
	AboveBaseline         bool     `json:"above_baseline"`
	DemolitionConstraints []string `json:"demolition_constraints"`
}

// IncentiveOpportunities records per-program eligibility. Each flag is an
// independent function of zone class, lot area, and use code; no flag
// depends on another program's result.
type IncentiveOpportunities struct {
	TOCTier                int    `json:"toc_tier,omitempty"`
	TOCDistanceDescription string `json:"toc_distance_description"`

	StateDensityBonus bool `json:"state_density_bonus"`
	AB2097Eligible    bool `json:"ab2097_eligible"`
	OpportunityZone   bool `json:"opportunity_zone"`
	AdaptiveReuse     bool `json:"adaptive_reuse"`
	ED1Eligible       bool `json:"ed1_eligible"`

	SB9Eligible         bool `json:"sb9_eligible"`
	SB9LotSplitEligible bool `json:"sb9_lot_split_eligible"`

	SB35Eligible      bool   `json:"sb35_eligible"`
	SB35Description   string `json:"sb35_description"`
	SB330Eligible     bool   `json:"sb330_eligible"`
	SB330Description  string `json:"sb330_description"`
	AB2011Eligible    bool   `json:"ab2011_eligible"`
	AB2011Description string `json:"ab2011_description"`
	SB423Eligible     bool   `json:"sb423_eligible"`
	SB423Description  string `json:"sb423_description"`
	SB4Eligible       bool   `json:"sb4_eligible"`
	SB4Description    string `json:"sb4_description"`
	AB1287Eligible    bool   `json:"ab1287_eligible"`
	AB1287Description string `json:"ab1287_description"`
	AB1449Eligible    bool   `json:"ab1449_eligible"`
	AB1449Description string `json:"ab1449_description"`
	SB684Eligible     bool   `json:"sb684_eligible"`
	SB684Description  string `json:"sb684_description"`
	AB2334Eligible    bool   `json:"ab2334_eligible"`
	AB2334Description string `json:"ab2334_description"`
}

// Constraints aggregates hazard, historic, and overlay findings plus the
// rent-stabilization replacement obligation.
type Constraints struct {
	EnvironmentalHazards []string `json:"environmental_hazards"`
	HistoricRestrictions []string `json:"historic_restrictions"`
	OverlayRequirements  []string `json:"overlay_requirements"`
	RSOReplacementUnits  int      `json:"rso_replacement_units"`
}

// DevelopmentScenario is one achievable development outcome for the parcel.
// Scenarios are value objects built by the generator; only the
// recommendation score and reason are annotated afterward by the
// consolidator and scorer.
type DevelopmentScenario struct {
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	TotalUnits            float64     `json:"total_units"`
	NetNewUnits           float64     `json:"net_new_units"`
	AffordabilityRequired string      `json:"affordability_required"`
	ApprovalPath          string      `json:"approval_path"`
	KeyBenefits           []string    `json:"key_benefits"`
	Constraints           []string    `json:"constraints"`
	Feasibility           Feasibility `json:"feasibility"`
	FeasibilityReason     string      `json:"feasibility_reason"`
	UnitCalculation       string      `json:"unit_calculation_justification"`
	LegalCitations        []string    `json:"legal_citations"`
	RegulatoryPathway     string      `json:"regulatory_pathway_explanation,omitempty"`
	RecommendationScore   float64     `json:"recommendation_score"`
	RecommendationReason  string      `json:"recommendation_reason"`
}

// DevelopmentAnalysis is the complete output for one parcel.
type DevelopmentAnalysis struct {
	PropertySummary        string                 `json:"property_summary"`
	RuleVintage            string                 `json:"rule_vintage"`
	BaseZoning             BaseZoning             `json:"base_zoning"`
	ExistingConditions     ExistingConditions     `json:"existing_conditions"`
	IncentiveOpportunities IncentiveOpportunities `json:"incentive_opportunities"`
	Constraints            Constraints            `json:"constraints"`
	DevelopmentScenarios   []DevelopmentScenario  `json:"development_scenarios"`
	BottomLine             string                 `json:"bottom_line"`
	NextSteps              []string               `json:"next_steps"`
}
