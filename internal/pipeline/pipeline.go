// Package pipeline ties the field extraction engine and the line-item
// column-inference fallback together: extract fields first, and when the
// upstream payload contributed no items, backfill them from the raw text.
package pipeline

import (
	"encoding/json"
	"log/slog"
	"unicode/utf8"

	"github.com/studio360/invoice-parser/internal/common"
	"github.com/studio360/invoice-parser/internal/lineitems"
	"github.com/studio360/invoice-parser/internal/parser"
)

// Config holds behavior knobs for the parse pipeline.
type Config struct {
	MaxTextBytes int // default 512 KiB if zero
}

const defaultMaxTextBytes = 512 << 10

type Pipeline struct {
	Logger *slog.Logger
	Cfg    Config
}

func New(logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = defaultMaxTextBytes
	}
	return &Pipeline{Logger: logger, Cfg: cfg}
}

// Parse produces the canonical record for one invoice. The raw text is
// capped at MaxTextBytes before any pattern runs; beyond that the call is
// pure and cannot fail, so there is no error return. Logged attributes are
// sizes and counts only, never extracted buyer data.
func (p *Pipeline) Parse(text string, payload parser.Payload) parser.Record {
	if len(text) > p.Cfg.MaxTextBytes {
		text = truncate(text, p.Cfg.MaxTextBytes)
		p.Logger.Warn("raw text truncated", "max_bytes", p.Cfg.MaxTextBytes)
	}

	rec := parser.ExtractInvoiceFields(text, payload)
	if len(rec.Items) == 0 {
		fallback := lineitems.ParseItemsFromText(text)
		rec.Items = toLineItems(fallback)
		p.Logger.Info("item fallback ran",
			"text_bytes", len(text), "items", len(rec.Items))
	}

	p.Logger.Info("invoice parsed",
		"text_bytes", len(text),
		"payload_keys", len(payload),
		"items", len(rec.Items),
	)
	return rec
}

// ParseJSON is Parse with the upstream payload still in wire form. An
// undecodable payload is a caller error, not a parse failure.
func (p *Pipeline) ParseJSON(text string, payloadJSON []byte) (parser.Record, error) {
	var payload parser.Payload
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &payload); err != nil {
			return parser.Record{}, common.WrapError(err, "decode structured payload")
		}
	}
	return p.Parse(text, payload), nil
}

// toLineItems lifts fallback items into the canonical item shape
// (product becomes name, productPrice becomes price). nil numerics stay
// null in the record.
func toLineItems(items []lineitems.Item) []parser.LineItem {
	out := make([]parser.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, parser.LineItem{
			Name:     it.Product,
			Qty:      deref(it.Qty),
			Price:    deref(it.ProductPrice),
			Subtotal: deref(it.Subtotal),
		})
	}
	return out
}

func deref(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
