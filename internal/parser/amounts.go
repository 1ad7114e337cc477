package parser

import (
	"strconv"
	"strings"
)

// Amounts holds the labeled monetary candidates scanned from raw text,
// independent of any upstream payload. A nil field means no labeled amount
// of that kind was seen.
type Amounts struct {
	Subtotal   *float64
	Total      *float64
	GrandTotal *float64
}

// DeriveAmountsFromText scans every labeled amount in text and classifies it
// by label:
//   - "grand ..." overwrites GrandTotal (last match wins)
//   - "subtotal"  overwrites Subtotal (last match wins)
//   - "balance ..." fills GrandTotal only when unset; an explicit grand
//     total label is never overridden by a balance-due line
//   - a plain "total" fills Total only when unset (first match wins) and is
//     never conflated with GrandTotal
//
// Values that fail to parse as numbers are skipped silently.
func DeriveAmountsFromText(text string) Amounts {
	var a Amounts
	for _, m := range reAmounts.FindAllStringSubmatch(text, -1) {
		label := strings.ToLower(m[1])
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
		if err != nil {
			continue
		}
		switch {
		case strings.Contains(label, "grand"):
			a.GrandTotal = &value
		case strings.Contains(label, "subtotal"):
			a.Subtotal = &value
		case strings.Contains(label, "balance"):
			if a.GrandTotal == nil {
				a.GrandTotal = &value
			}
		case label == "total":
			if a.Total == nil {
				a.Total = &value
			}
		}
	}
	return a
}
