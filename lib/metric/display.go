// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package metric

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Display formats the value for presentation. Formatting is driven by
// the unit: percentages and temperatures keep one decimal, byte counts
// and byte rates are humanized to IEC units, fan speeds are integral,
// and unitless numbers drop trailing zeros. Text values render
// verbatim. Never panics: NaN, infinities, and negative byte counts
// render as an em dash.
func (value Value) Display() string {
	if value.Kind == KindText {
		return value.Text
	}
	number := value.Number
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return "—"
	}
	switch value.Unit {
	case "%":
		return fmt.Sprintf("%.1f%%", number)
	case "B":
		if number < 0 {
			return "—"
		}
		return humanize.IBytes(uint64(number))
	case "B/s":
		if number < 0 {
			return "—"
		}
		return humanize.IBytes(uint64(number)) + "/s"
	case "°C":
		return fmt.Sprintf("%.1f°C", number)
	case "RPM":
		return fmt.Sprintf("%.0f RPM", number)
	case "":
		return trimNumber(number)
	default:
		return trimNumber(number) + " " + value.Unit
	}
}

// trimNumber formats a unitless number with up to two decimals and no
// trailing zeros: 0.52 stays "0.52", 1.50 becomes "1.5", 3.00 "3".
func trimNumber(number float64) string {
	formatted := strconv.FormatFloat(number, 'f', 2, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimSuffix(formatted, ".")
}
