package analyzer

import (
	"fmt"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// Service is the scenario generation, consolidation, and scoring engine.
// It is stateless: every Analyze call derives its results from the input
// record and the immutable rule set, so one Service may be shared across
// any number of concurrent requests.
type Service struct {
	rules *RuleSet
}

// NewService creates an engine bound to a rule vintage. A nil rule set
// selects the default vintage.
func NewService(rules *RuleSet) *Service {
	if rules == nil {
		rules = RuleSetFor(DefaultVintage)
	}
	return &Service{rules: rules}
}

// ParseZone splits a combined zone string like "R4-2" into the base zone
// and its height-district suffix. Strings without a dash return an empty
// suffix.
func ParseZone(zone string) (base, suffix string) {
	if zone == "" {
		return "", ""
	}
	if i := strings.Index(zone, "-"); i >= 0 {
		return zone[:i], zone[i+1:]
	}
	return zone, ""
}

// baseZoning maps a zone and height district to the by-right envelope:
// density factor, baseline unit count, and height/FAR limits. Unknown
// zones fall back to the default density factor; unknown height districts
// fall back to the documented defaults. Zero lot area yields zero units.
func (s *Service) baseZoning(zone, heightDistrict string, lotArea float64) models.BaseZoning {
	densityFactor, ok := s.rules.DensityFactors[zone]
	if !ok {
		densityFactor = s.rules.DefaultDensityFactor
	}

	baseline := 0.0
	if densityFactor > 0 {
		baseline = lotArea / float64(densityFactor)
	}

	height, ok := s.rules.HeightLimits[heightDistrict]
	if !ok {
		height = s.rules.DefaultHeightLimit
	} else if height == 0 {
		height = s.rules.NoLimitHeightFt
	}

	far, ok := s.rules.FARLimits[heightDistrict]
	if !ok {
		far = s.rules.DefaultFARLimit
	} else if far == 0 {
		far = s.rules.NoLimitFAR
	}

	complete := zone
	if heightDistrict != "" {
		complete = zone + "-" + heightDistrict
	}

	interpretation := fmt.Sprintf("%s allows ~1 unit per %s sq ft of lot area.", zone, commaInt(densityFactor))
	if heightDistrict == "2" {
		interpretation += fmt.Sprintf(" Height District 2 allows up to %.0f ft height and %.1f:1 FAR.", height, far)
	}

	return models.BaseZoning{
		Zone:           zone,
		HeightDistrict: heightDistrict,
		CompleteZone:   complete,
		DensityFactor:  densityFactor,
		BaselineUnits:  baseline,
		HeightLimitFt:  height,
		FARLimit:       far,
		Interpretation: interpretation,
	}
}
