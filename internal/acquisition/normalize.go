package acquisition

import (
	"regexp"
	"strings"
)

var (
	nonDigits   = regexp.MustCompile(`[^0-9]`)
	zipSuffix   = regexp.MustCompile(`\s+\d{5}(-\d{4})?$`)
	stateSuffix = regexp.MustCompile(`(?i),?\s+(CA|CALIFORNIA)$`)
)

// ParseAPN extracts a bare assessor parcel number from free-form input.
// Returns empty when the digits do not look like an APN.
func ParseAPN(input string) string {
	clean := nonDigits.ReplaceAllString(input, "")
	if len(clean) >= 10 && len(clean) <= 13 {
		return clean
	}
	return ""
}

// FormatAPN renders an APN with dashes (XXXX-XXX-XXX). Inputs too short to
// format are returned unchanged.
func FormatAPN(apn string) string {
	clean := nonDigits.ReplaceAllString(apn, "")
	if len(clean) >= 10 {
		return clean[:4] + "-" + clean[4:7] + "-" + clean[7:]
	}
	return apn
}

// NormalizeAddress reduces a full mailing address to the street portion the
// county situs index matches on: city names, ZIP codes, and state suffixes
// are stripped.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)

	for _, sep := range []string{", Los Angeles", ", LA", " Los Angeles", " LA"} {
		if i := strings.Index(address, sep); i >= 0 {
			address = address[:i]
			break
		}
	}

	address = zipSuffix.ReplaceAllString(address, "")
	address = stateSuffix.ReplaceAllString(address, "")

	return strings.TrimSpace(address)
}
