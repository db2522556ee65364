package dashboard

import (
	"math"
	"strconv"

	"fx_hedge/internal/domain"

	"github.com/dustin/go-humanize"
)

// Chart trace colours by sign of the total.
const (
	ColorPositive = "#00fa9a"
	ColorNegative = "#ff4d6d"
)

// FormatRate renders a rate with four decimals.
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatCurrency renders whole US dollars with an explicit sign, e.g. "+$1,362".
func FormatCurrency(v float64) string {
	sign := "+"
	if !displayPositive(v) {
		sign = "-"
	}
	return sign + "$" + humanize.FormatFloat("#,###.", math.Abs(math.Round(v)))
}

// displayPositive is the sign of v as shown, i.e. after rounding to whole dollars,
// so text and colour always agree.
func displayPositive(v float64) bool {
	return domain.Positive(math.Round(v))
}

// StyleClass is the CSS class for a P/L value.
func StyleClass(v float64) string {
	if displayPositive(v) {
		return "positive"
	}
	return "negative"
}

// ChartColor is the trace colour for the latest total.
func ChartColor(total float64) string {
	if displayPositive(total) {
		return ColorPositive
	}
	return ColorNegative
}
