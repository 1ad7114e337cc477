package parser

// RegexFields holds the raw results of the pattern table applied to invoice
// text. An empty string means the pattern did not match. Email, Phone and
// Address are extracted for callers that want them but are not consulted by
// the merge step.
type RegexFields struct {
	OrderNumber   string
	Date          string
	PaymentMethod string
	Email         string
	Phone         string
	Address       string
	Name          string
}

// ExtractRegexFields evaluates the fixed pattern table against text. Each
// field is the first match, or "" when absent. Never fails; empty text
// simply matches nothing.
func ExtractRegexFields(text string) RegexFields {
	date := firstMatch(reDateYMD, text)
	if date == "" {
		date = firstMatch(reDateDMY, text)
	}
	return RegexFields{
		OrderNumber:   firstMatch(reOrderNumber, text),
		Date:          date,
		PaymentMethod: firstMatch(rePaymentMethod, text),
		Email:         firstMatch(reEmail, text),
		Phone:         firstMatch(rePhone, text),
		Address:       firstMatch(reAddress, text),
		Name:          firstMatch(reName, text),
	}
}
