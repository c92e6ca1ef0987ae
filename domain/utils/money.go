package utils

import (
	"fmt"
	"strings"
)

// FormatCents renders an integer cent amount as a dollar string with
// thousands separators, e.g. 700000000 -> "$7,000,000.00"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := cents / 100
	remainder := cents % 100

	digits := fmt.Sprintf("%d", dollars)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return fmt.Sprintf("%s$%s.%02d", sign, strings.Join(groups, ","), remainder)
}
