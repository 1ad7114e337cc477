// Package parser derives a canonical invoice record from raw OCR text and
// an optional loosely-structured payload produced by an upstream
// document-understanding step. It is pure: no I/O, no clock, no state
// between calls, and no error returns — a field that cannot be determined
// becomes the Unknown sentinel rather than a failure.
package parser

// ExtractInvoiceFields is the single entry point of the field extraction
// engine. text may be empty (every pattern then fails gracefully) and
// payload may be nil (treated as an empty payload for alias lookups).
func ExtractInvoiceFields(text string, payload Payload) Record {
	rf := ExtractRegexFields(text)
	amounts := DeriveAmountsFromText(text)
	return MapToExpected(payload, rf, amounts)
}
