package parser

// Unknown is the sentinel substituted for any scalar field that could not
// be resolved from either the upstream payload or the raw text. Callers
// must expect every scalar field to be either its native type or this exact
// string.
const Unknown = "unknown"

// Payload is the loosely-typed record produced by the upstream
// document-understanding step. No key is guaranteed present; a nil map is a
// valid payload.
type Payload map[string]any

// LineItem is one invoice line in the canonical record. Qty, Price and
// Subtotal are JSON null when missing, never "unknown"; this asymmetry with
// the top-level sentinel is part of the output contract.
type LineItem struct {
	Name     string `json:"name"`
	Qty      any    `json:"qty"`
	Price    any    `json:"price"`
	Subtotal any    `json:"subtotal"`
}

// Record is the normalized invoice. Scalar fields hold either a concrete
// value carried over from the inputs (string or number) or the Unknown
// sentinel, so they are deliberately typed any. Items is never nil; an
// empty slice is the valid "no items" value.
type Record struct {
	OrderNumber   any        `json:"order_number"`
	BuyerName     any        `json:"buyer_name"`
	BuyerAddress  any        `json:"buyer_address"`
	SellerName    any        `json:"seller_name"`
	SellerAddress any        `json:"seller_address"`
	OrderDate     any        `json:"order_date"`
	PaymentMethod any        `json:"payment_method"`
	Subtotal      any        `json:"subtotal"`
	Total         any        `json:"total"`
	GrandTotal    any        `json:"grand_total"`
	Items         []LineItem `json:"items"`
}

// toUnknown substitutes the sentinel for nil and empty-string values only.
// Numeric zero is a real value and survives.
func toUnknown(v any) any {
	if v == nil || v == "" {
		return Unknown
	}
	return v
}
