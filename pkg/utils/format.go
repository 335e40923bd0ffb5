package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a value as en-US USD with thousand grouping, e.g.
// "$1,234.56". Values that cannot be localized fall back to a plain
// two-decimal dollar string.
func FormatUSD(v float64) string {
	s := usPrinter.Sprintf("%.2f", v)
	if s == "" {
		return fmt.Sprintf("$%.2f", v)
	}
	return "$" + s
}

// FormatPrice renders a stock price for display.
func FormatPrice(v float64) string {
	return FormatUSD(v)
}

// FormatChangePercent renders a percent change with an explicit sign for
// gains, e.g. "+1.25%" or "-0.85%".
func FormatChangePercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatMarketCap renders a market capitalization given in millions of USD,
// the unit the provider's company profile uses.
func FormatMarketCap(millions float64) string {
	switch {
	case millions >= 1_000_000:
		return fmt.Sprintf("$%.2fT", millions/1_000_000)
	case millions >= 1_000:
		return fmt.Sprintf("$%.2fB", millions/1_000)
	case millions > 0:
		return fmt.Sprintf("$%.2fM", millions)
	default:
		return "—"
	}
}
