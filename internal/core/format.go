// Package core provides the transaction domain model and display formatting.
//
// This file contains the money and date formatters used by reports and
// exports. Output is byte-stable: the CSV and HTML artifacts embed these
// strings, so any change here changes the export format.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders a whole-unit amount with comma thousands separators
// and the tugrik sign, e.g. 2500000 -> "2,500,000 ₮".
func FormatMoney(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + b.String() + " ₮"
	}
	return b.String() + " ₮"
}

// FormatDate renders an ISO date in the long Mongolian style,
// e.g. "2025-12-01" -> "2025 оны 12-р сарын 1".
// Unparseable input is returned unchanged so a bad record cannot break
// an otherwise valid report.
func FormatDate(iso string) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d оны %d-р сарын %d", t.Year(), int(t.Month()), t.Day())
}
