package dto

// LastErrorResponse describes the validation failure that ended a disclosure.
type LastErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CardViewResponse is the disclosed card data as rendered to the client. The
// card number is already grouped for display.
type CardViewResponse struct {
	CardID string `json:"card_id"`
	Alias  string `json:"alias"`
	Holder string `json:"holder"`
	PAN    string `json:"pan"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"`
}

// DisclosureStatusResponse is the folded status of the current disclosure.
// Card is present only while the sensitive data is shown.
type DisclosureStatusResponse struct {
	State     string             `json:"state"`
	CardID    string             `json:"card_id,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	LastError *LastErrorResponse `json:"last_error,omitempty"`
	Card      *CardViewResponse  `json:"card,omitempty"`
}

// CopyResponse carries the grouped card number returned by the copy action.
type CopyResponse struct {
	PAN string `json:"pan"`
}
