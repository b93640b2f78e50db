// Package format renders money and ratios for breakdowns and CLI output.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a whole-dollar string with thousands separators (e.g., "-$1,234,500").
func Currency(amount int64) string {
	if amount < 0 {
		return "-$" + printer.Sprintf("%d", -amount)
	}
	return "$" + printer.Sprintf("%d", amount)
}

// Compact returns a short currency string (e.g., "$620k", "$1.25M").
func Compact(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	switch {
	case amount >= 1_000_000:
		return sign + "$" + trimDecimal(float64(amount)/1_000_000, 2) + "M"
	case amount >= 1_000:
		return sign + "$" + trimDecimal(float64(amount)/1_000, 1) + "k"
	default:
		return sign + "$" + strconv.FormatInt(amount, 10)
	}
}

// Percent renders a ratio as a percentage with one decimal (e.g., 0.114 -> "11.4%").
func Percent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}

func trimDecimal(value float64, places int) string {
	s := strconv.FormatFloat(value, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
