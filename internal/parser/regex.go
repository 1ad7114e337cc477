package parser

import "regexp"

// Fixed extraction table, compiled once at init. The patterns never change
// at runtime; extraction functions share these by reference.
var (
	reOrderNumber = regexp.MustCompile(`(?i)\b(?:order|ord|invoice|inv)[\s:]*([A-Za-z0-9-]+)`)

	// Four-digit-year form is tried first; the 2-2-4 form is ambiguous
	// between DD/MM/YYYY and MM/DD/YYYY and is returned verbatim either
	// way. Disambiguation is left to human review downstream.
	reDateYMD = regexp.MustCompile(`\b\d{4}[/\-]\d{2}[/\-]\d{2}\b`)
	reDateDMY = regexp.MustCompile(`\b\d{2}[/\-]\d{2}[/\-]\d{4}\b`)

	rePaymentMethod = regexp.MustCompile(`(?i)\b(?:cash on delivery|cod|credit card|paypal|bank transfer|gcash)\b`)
	reEmail         = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	rePhone         = regexp.MustCompile(`\+?\d{1,4}[\s-]?\d{3,4}[\s-]?\d{3,4}`)

	// House number followed by a few word tokens and a trailing locality
	// token. No validation of real addresses.
	reAddress = regexp.MustCompile(`\d{1,5}\s+\w+(\s+\w+){1,5},?\s+\w+`)

	// Two consecutive capitalized words. Used as the fallback for both
	// buyer and seller name; the table has no way to tell them apart.
	reName = regexp.MustCompile(`\b[A-Z][a-z]+\s[A-Z][a-z]+\b`)

	// Labeled monetary amount: label, optional currency symbol, value with
	// optional thousands separators and 0 or 2 decimal digits.
	reAmounts = regexp.MustCompile(`(?i)(subtotal|grand total|total|balance due)\s*[:\-]?\s*(₱|\$|€)?\s?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
)

// firstMatch returns the first match of re in text, preferring the first
// capture group over the whole match when the pattern defines one. Returns
// "" when the pattern does not match.
func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 && m[1] != "" {
		return m[1]
	}
	return m[0]
}
