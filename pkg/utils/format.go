package utils

import (
	"fmt"
	"math"
)

// FormatMarketCap renders a market capitalization as a short human figure,
// e.g. 2.85T, 312.40B, 950.00M.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v > 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return "N/A"
	}
}

// FormatVolume renders an average volume as a short human figure.
func FormatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// FormatPrice renders a price with two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatSignedChange renders a price change with an explicit sign.
func FormatSignedChange(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatRatio renders a ratio such as P/E; NaN or zero means not available.
func FormatRatio(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}
