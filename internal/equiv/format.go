package equiv

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators for consistent
// CLI output.
var printer = message.NewPrinter(language.English)

// Abbreviation thresholds for large equivalency values.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// FormatValue renders an equivalency value for display.
//
// Values under ten keep one decimal place; larger values round to whole
// numbers with thousand separators; million- and billion-scale values are
// abbreviated ("~1.5 million").
func FormatValue(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("~%.1f million", v/millionThreshold)
	case v >= 10:
		return printer.Sprintf("%d", int64(math.Round(v)))
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// FormatKg renders a kilogram amount with separators and two decimals.
func FormatKg(kg float64) string {
	return printer.Sprintf("%.2f", kg)
}
