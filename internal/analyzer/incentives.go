package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// IncentiveRule is one statutory eligibility check. Predicates are pure
// functions of zone class, lot area, and use code; no rule reads another
// rule's result, so the registry may be evaluated in any order.
type IncentiveRule struct {
	ID          string
	Description string
	Eligible    func(zone string, lotAreaSqFt float64, useCode string) bool
}

func isResidential(zone string) bool {
	return strings.HasPrefix(zone, "R")
}

// isMultiFamily matches residential zones excluding the single-family and
// suburban classes.
func isMultiFamily(zone string) bool {
	return isResidential(zone) && zone != "R1" && zone != "RS"
}

var commercialZones = []string{"C1", "C2", "C4", "CM", "CR", "CW"}

func isCommercial(zone, useCode string) bool {
	for _, cz := range commercialZones {
		if strings.HasPrefix(zone, cz) {
			return true
		}
	}
	return strings.HasPrefix(useCode, "5")
}

// fiveAcresSqFt is the SB-684 lot-size ceiling.
const fiveAcresSqFt = 217800

// incentiveRegistry lists every statutory program the engine evaluates.
// Adding or amending a program means editing this table, not control flow.
var incentiveRegistry = []IncentiveRule{
	{
		ID:          "state_density_bonus",
		Description: "State density bonus for multi-family zones with affordable set-aside",
		Eligible:    func(zone string, _ float64, _ string) bool { return isMultiFamily(zone) },
	},
	{
		ID:          "ab2097",
		Description: "No parking minimums within half mile of major transit",
		Eligible:    func(_ string, _ float64, _ string) bool { return true },
	},
	{
		ID:          "opportunity_zone",
		Description: "Federal Opportunity Zone designation",
		Eligible:    func(_ string, _ float64, _ string) bool { return false },
	},
	{
		ID:          "adaptive_reuse",
		Description: "Adaptive Reuse Incentive Area designation",
		Eligible:    func(_ string, _ float64, _ string) bool { return false },
	},
	{
		ID:          "ed1",
		Description: "Ministerial review for 100% affordable projects in residential zones",
		Eligible:    func(zone string, _ float64, _ string) bool { return isResidential(zone) },
	},
	{
		ID:          "sb9",
		Description: "Duplex allowance for single-family zones",
		Eligible:    func(zone string, _ float64, _ string) bool { return zone == "R1" },
	},
	{
		ID:          "sb9_lot_split",
		Description: "Lot split for single-family zones with lot area of at least 2,400 sq ft",
		Eligible: func(zone string, lotArea float64, _ string) bool {
			return zone == "R1" && lotArea >= 2400
		},
	},
	{
		ID:          "sb35",
		Description: "Ministerial approval for affordable housing if jurisdiction hasn't met RHNA goals",
		Eligible:    func(zone string, _ float64, _ string) bool { return isMultiFamily(zone) },
	},
	{
		ID:          "sb423",
		Description: "Extended SB-35 through 2036 with broader application including coastal zones",
		Eligible:    func(zone string, _ float64, _ string) bool { return isMultiFamily(zone) },
	},
	{
		ID:          "sb330",
		Description: "Builder's Remedy available if housing element not certified by HCD",
		Eligible:    func(zone string, _ float64, _ string) bool { return isResidential(zone) },
	},
	{
		ID:          "ab2011",
		Description: "Ministerial approval for housing on commercially-zoned land",
		Eligible: func(zone string, _ float64, useCode string) bool {
			return isCommercial(zone, useCode) || isResidential(zone)
		},
	},
	{
		ID:          "sb4",
		Description: "Streamlined 100% affordable housing on faith-based or university land",
		Eligible:    func(zone string, _ float64, _ string) bool { return isResidential(zone) },
	},
	{
		ID:          "ab1287",
		Description: "Up to 100% density bonus for moderate and very low income units",
		Eligible:    func(zone string, _ float64, _ string) bool { return isMultiFamily(zone) },
	},
	{
		ID:          "ab1449",
		Description: "CEQA exemption for affordable housing on infill sites near transit",
		Eligible:    func(zone string, _ float64, _ string) bool { return isResidential(zone) },
	},
	{
		ID:          "sb684",
		Description: "Ministerial approval for up to 10 units on urban lots under 5 acres. No affordability requirement.",
		Eligible: func(zone string, lotArea float64, _ string) bool {
			return isMultiFamily(zone) && lotArea < fiveAcresSqFt
		},
	},
	{
		ID:          "ab2334",
		Description: "Clarified base density calculation and additional concessions for 100% affordable projects",
		Eligible:    func(zone string, _ float64, _ string) bool { return isMultiFamily(zone) },
	},
}

// Registry exposes the statutory rule table for callers that need to
// enumerate programs (documentation endpoints, tests).
func Registry() []IncentiveRule {
	out := make([]IncentiveRule, len(incentiveRegistry))
	copy(out, incentiveRegistry)
	return out
}

var tierPattern = regexp.MustCompile(`tier\s*(\d+)`)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// extractTOCTier pulls a TOC tier from the nested transit-proximity
// attributes: an explicit tier-keyed numeric value wins, then a textual
// "Tier N" match anywhere in a value, then the manually supplied tier.
// Returns 0 and a generic description when no tier can be found.
// Layers and attributes are visited in sorted order so the same record
// always yields the same tier.
func extractTOCTier(rec models.PropertyRecord) (int, string) {
	if rec.Transit != nil {
		layers := []string{}
		for name := range rec.Transit.Layers {
			if strings.Contains(strings.ToLower(name), "toc") {
				layers = append(layers, name)
			}
		}
		sort.Strings(layers)

		for _, name := range layers {
			attrs := rec.Transit.Layers[name]
			for _, key := range sortedKeys(attrs) {
				if !strings.Contains(strings.ToLower(key), "tier") {
					continue
				}
				if tier, err := strconv.Atoi(strings.TrimSpace(attrs[key])); err == nil && tier > 0 {
					return tier, fmt.Sprintf("Property is within TOC Tier %d area (GIS verified)", tier)
				}
			}
		}
		for _, name := range layers {
			attrs := rec.Transit.Layers[name]
			for _, key := range sortedKeys(attrs) {
				if m := tierPattern.FindStringSubmatch(strings.ToLower(attrs[key])); m != nil {
					if tier, err := strconv.Atoi(m[1]); err == nil && tier > 0 {
						return tier, fmt.Sprintf("Property is within TOC Tier %d area (GIS verified)", tier)
					}
				}
			}
		}
	}

	if rec.ManualTOCTier > 0 {
		return rec.ManualTOCTier, fmt.Sprintf("Property is within TOC Tier %d area", rec.ManualTOCTier)
	}
	return 0, "TOC eligibility requires proximity analysis to major transit"
}

// evaluateIncentives runs every registered program predicate and the TOC
// tier extraction against the record.
func (s *Service) evaluateIncentives(rec models.PropertyRecord, zone string) models.IncentiveOpportunities {
	eligible := make(map[string]bool, len(incentiveRegistry))
	desc := make(map[string]string, len(incentiveRegistry))
	for _, rule := range incentiveRegistry {
		eligible[rule.ID] = rule.Eligible(zone, rec.LotAreaSqFt, rec.UseCode)
		desc[rule.ID] = rule.Description
	}

	tier, tierDesc := extractTOCTier(rec)

	return models.IncentiveOpportunities{
		TOCTier:                tier,
		TOCDistanceDescription: tierDesc,

		StateDensityBonus: eligible["state_density_bonus"],
		AB2097Eligible:    eligible["ab2097"],
		OpportunityZone:   eligible["opportunity_zone"],
		AdaptiveReuse:     eligible["adaptive_reuse"],
		ED1Eligible:       eligible["ed1"],

		SB9Eligible:         eligible["sb9"],
		SB9LotSplitEligible: eligible["sb9_lot_split"],

		SB35Eligible:      eligible["sb35"],
		SB35Description:   desc["sb35"],
		SB330Eligible:     eligible["sb330"],
		SB330Description:  desc["sb330"],
		AB2011Eligible:    eligible["ab2011"],
		AB2011Description: desc["ab2011"],
		SB423Eligible:     eligible["sb423"],
		SB423Description:  desc["sb423"],
		SB4Eligible:       eligible["sb4"],
		SB4Description:    desc["sb4"],
		AB1287Eligible:    eligible["ab1287"],
		AB1287Description: desc["ab1287"],
		AB1449Eligible:    eligible["ab1449"],
		AB1449Description: desc["ab1449"],
		SB684Eligible:     eligible["sb684"],
		SB684Description:  desc["sb684"],
		AB2334Eligible:    eligible["ab2334"],
		AB2334Description: desc["ab2334"],
	}
}
