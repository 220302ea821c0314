package analyzer

import (
	"strconv"
	"strings"

	"github.com/parcelworks/lotscope/internal/models"
)

// parseYear converts a year-built string to an int. Empty or malformed
// values parse to 0 so a bad county field never fails an analysis.
func parseYear(year string) int {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	return y
}

// existingConditions characterizes the current building against the
// baseline. Replacement obligation equals the existing unit count on
// rent-stabilized parcels and zero otherwise.
func existingConditions(units int, buildingSF float64, yearBuilt string, isRSO bool, baselineUnits float64) models.ExistingConditions {
	replacement := 0
	if isRSO {
		replacement = units
	}

	demo := []string{}
	if isRSO {
		demo = append(demo, "RSO replacement: Must replace existing rent-stabilized units 1:1")
	}
	if y := parseYear(yearBuilt); y != 0 && y < 1978 {
		demo = append(demo, "Historic review may be required for pre-1978 buildings")
	}

	return models.ExistingConditions{
		Units:                 units,
		BuildingSqFt:          buildingSF,
		YearBuilt:             yearBuilt,
		IsRSO:                 isRSO,
		ReplacementRequired:   replacement,
		AboveBaseline:         float64(units) > baselineUnits,
		DemolitionConstraints: demo,
	}
}
