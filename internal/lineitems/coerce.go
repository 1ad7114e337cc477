package lineitems

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNonNumeric = regexp.MustCompile(`[^0-9.,\-]`)
	// A comma standing before exactly three digits at a word boundary is a
	// thousands separator; any other comma is OCR noise.
	reThousands   = regexp.MustCompile(`,(\d{3})\b`)
	reFloatPrefix = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// coerceNumber coerces a column value like "₱1,234.50" to a number. It
// keeps only digits, commas, dots and hyphens, strips thousands-separator
// commas, then parses the leading numeric run. Returns nil for anything
// that does not yield a number.
func coerceNumber(v string) *float64 {
	if v == "" {
		return nil
	}
	c := reNonNumeric.ReplaceAllString(v, "")
	c = reThousands.ReplaceAllString(c, "$1")
	c = strings.ReplaceAll(c, ",", "")
	if c == "" {
		return nil
	}
	m := reFloatPrefix.FindString(c)
	if m == "" {
		return nil
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &n
}
