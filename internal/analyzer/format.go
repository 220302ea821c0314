package analyzer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var enPrinter = message.NewPrinter(language.English)

// commaInt formats an integer with thousands separators ("5,000").
func commaInt(n int) string {
	return enPrinter.Sprintf("%d", n)
}

// commaF0 formats a float with thousands separators and no decimals.
func commaF0(f float64) string {
	return enPrinter.Sprintf("%.0f", f)
}
