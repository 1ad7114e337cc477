package parser

import "fmt"

// present reports whether v counts as a usable value in a first-non-empty
// alias chain: nil, empty string, false and numeric zero all fall through
// to the next source.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// first returns the first present value among the payload keys, or nil.
func (p Payload) first(keys ...string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && present(v) {
			return v
		}
	}
	return nil
}

// coalesce returns the first non-nil value among the payload keys, or nil.
// Unlike first, empty strings and zeros are kept; only absence and explicit
// null fall through. Used for the amount fields, where zero is meaningful.
func (p Payload) coalesce(keys ...string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// orRegex falls back from an upstream value to a regex result, treating ""
// as no match.
func orRegex(v any, match string) any {
	if v != nil {
		return v
	}
	if match != "" {
		return match
	}
	return nil
}

// MapToExpected combines the upstream payload, the regex fields and the
// amount candidates into the canonical record. Precedence per field:
// upstream aliases in listed order, then the regex/amount fallback, then
// the Unknown sentinel. Note that the same regex name result backs both
// buyer and seller name, and that Total is sourced from the amount scan
// only.
func MapToExpected(p Payload, rf RegexFields, amounts Amounts) Record {
	orderNumber := orRegex(p.first("invoiceNumber", "orderSummaryNo", "orderId"), rf.OrderNumber)
	buyerName := orRegex(p.first("buyerName"), rf.Name)
	buyerAddress := p.first("buyerAddress")
	sellerName := orRegex(p.first("supplier"), rf.Name)
	sellerAddress := p.first("sellerAddress")
	orderDate := orRegex(p.first("date", "dateIssued"), rf.Date)
	paymentMethod := orRegex(p.first("paymentMethod"), rf.PaymentMethod)

	subtotal := p.coalesce("merchandiseSubtotal")
	if subtotal == nil && amounts.Subtotal != nil {
		subtotal = *amounts.Subtotal
	}
	grandTotal := p.coalesce("grandTotal", "total")
	if grandTotal == nil && amounts.GrandTotal != nil {
		grandTotal = *amounts.GrandTotal
	}
	var total any
	if amounts.Total != nil {
		total = *amounts.Total
	}

	return Record{
		OrderNumber:   toUnknown(orderNumber),
		BuyerName:     toUnknown(buyerName),
		BuyerAddress:  toUnknown(buyerAddress),
		SellerName:    toUnknown(sellerName),
		SellerAddress: toUnknown(sellerAddress),
		OrderDate:     toUnknown(orderDate),
		PaymentMethod: toUnknown(paymentMethod),
		Subtotal:      toUnknown(subtotal),
		Total:         toUnknown(total),
		GrandTotal:    toUnknown(grandTotal),
		Items:         mapItems(p),
	}
}

// mapItems lifts the upstream items list into LineItems using alias
// precedence (product|name, qty, productPrice|price, subtotal). A missing
// or non-list items value yields an empty slice; the caller is then
// expected to backfill from the column-inference fallback.
func mapItems(p Payload) []LineItem {
	items := make([]LineItem, 0)
	raw, ok := p["items"].([]any)
	if !ok {
		return items
	}
	for _, el := range raw {
		it, _ := el.(map[string]any)
		items = append(items, LineItem{
			Name:     itemName(it),
			Qty:      itemValue(it, "qty"),
			Price:    itemValue(it, "productPrice", "price"),
			Subtotal: itemValue(it, "subtotal"),
		})
	}
	return items
}

func itemName(it map[string]any) string {
	for _, k := range []string{"product", "name"} {
		if v, ok := it[k]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			// numeric product codes arrive as JSON numbers
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func itemValue(it map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := it[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
