// Package lineitems recovers invoice line items from raw multi-line text.
// It is the fallback used when the upstream structured extraction yields no
// usable items: locate a plausible table header by keyword scoring, then
// walk subsequent lines inferring which trailing numeric columns are the
// quantity, unit price and subtotal. Best effort by design — malformed
// tables degrade to an empty or partial list, never an error.
package lineitems

import (
	"math"
	"regexp"
	"slices"
	"strings"
)

const (
	// maxItems bounds row scanning on pathological input.
	maxItems = 150
	// maxProductChars truncates runaway product name joins.
	maxProductChars = 200
	// maxQty is the largest value still treated as a quantity column.
	// Larger or fractional numbers are left in place and fold into the
	// product name.
	maxQty = 999
)

var (
	reLineSplit   = regexp.MustCompile(`\r?\n`)
	reColumnSplit = regexp.MustCompile(`\s{2,}`)
	reTerminator  = regexp.MustCompile(`(?i)grand\s*total|amount\s*due|total\s*quantity`)
)

// Keyword groups scored independently during header detection. A line
// qualifies when it has at least two columns and hits at least two groups.
var headerGroups = [][]string{
	{"item", "product", "description"},
	{"qty", "quantity"},
	{"price", "unit", "amount", "subtotal", "total"},
}

// Item is one inferred table row. ProductPrice, Qty and Subtotal are nil
// (JSON null) when the row did not carry them; at least one of the three is
// always set, rows with none are discarded. Variation is always null here,
// the column splitter cannot attribute one.
type Item struct {
	No           int      `json:"no"`
	Product      string   `json:"product"`
	Variation    any      `json:"variation"`
	ProductPrice *float64 `json:"productPrice"`
	Qty          *float64 `json:"qty"`
	Subtotal     *float64 `json:"subtotal"`
}

// ParseItemsFromText walks text looking for a line-item table and returns
// the rows it can make sense of. Empty or headerless text yields an empty
// slice; no input makes it fail.
func ParseItemsFromText(text string) []Item {
	items := make([]Item, 0)
	if text == "" {
		return items
	}

	var lines []string
	for _, ln := range reLineSplit.Split(text, -1) {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	headerIdx := -1
	for i, ln := range lines {
		parts := splitColumns(ln)
		if len(parts) >= 2 && scoreHeader(parts) >= 2 {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return items
	}

	for _, ln := range lines[headerIdx+1:] {
		if reTerminator.MatchString(ln) {
			break
		}
		cols := splitColumns(ln)
		if len(cols) < 2 {
			continue
		}

		// Rightmost numeric is the subtotal, the next one leftward the
		// unit price, and the next small integer the quantity.
		subtotal := takeRightmost(&cols, anyNumber)
		unit := takeRightmost(&cols, anyNumber)
		qty := takeRightmost(&cols, smallInteger)

		product := strings.TrimSpace(truncateRunes(strings.Join(cols, " "), maxProductChars))
		if product == "" {
			continue
		}
		if subtotal == nil && unit == nil && qty == nil {
			continue
		}
		items = append(items, Item{
			No:           len(items) + 1,
			Product:      product,
			ProductPrice: unit,
			Qty:          qty,
			Subtotal:     subtotal,
		})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

// splitColumns breaks a line on runs of 2+ whitespace characters, trimming
// cells and dropping empties.
func splitColumns(line string) []string {
	var out []string
	for _, c := range reColumnSplit.Split(line, -1) {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func scoreHeader(parts []string) int {
	joined := strings.ToLower(strings.Join(parts, " "))
	score := 0
	for _, group := range headerGroups {
		for _, kw := range group {
			if strings.Contains(joined, kw) {
				score++
				break
			}
		}
	}
	return score
}

// takeRightmost scans columns from the right, removes the first one whose
// coerced number satisfies accept, and returns that number. Columns that
// coerce but fail accept stay in place.
func takeRightmost(cols *[]string, accept func(float64) bool) *float64 {
	cs := *cols
	for k := len(cs) - 1; k >= 0; k-- {
		n := coerceNumber(cs[k])
		if n == nil || !accept(*n) {
			continue
		}
		*cols = slices.Delete(cs, k, k+1)
		return n
	}
	return nil
}

func anyNumber(float64) bool { return true }

func smallInteger(n float64) bool { return n == math.Trunc(n) && n <= maxQty }

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
