// Package contribution computes self-reported paid-in totals. Inputs arrive
// as free-text form values, so every function tolerates blanks and garbage by
// treating them as zero instead of failing.
package contribution

import (
	"strconv"
	"strings"
)

// Section39MonthlyRate is the fixed statutory contribution for section 39.
// Respondents never supply it.
const Section39MonthlyRate = 432

// Total returns (years*12 + months) * monthly. Non-numeric or empty inputs
// count as zero.
func Total(years, months, monthly string) float64 {
	y := parseAmount(years)
	m := parseAmount(months)
	rate := parseAmount(monthly)
	return (y*12 + m) * rate
}

// DualRegimeTotal sums the section 33 period (user-supplied rate) and the
// section 39 period (fixed rate) of a voluntary-continuation history.
func DualRegimeTotal(years33, months33, monthly33, years39, months39 string) float64 {
	total33 := Total(years33, months33, monthly33)
	total39 := (parseAmount(years39)*12 + parseAmount(months39)) * Section39MonthlyRate
	return total33 + total39
}

// FormatAmount renders an amount for display with thousands separators.
// Fractions are dropped; self-reported contributions are whole baht.
func FormatAmount(amount float64) string {
	n := int64(amount)
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
