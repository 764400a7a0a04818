package request

import "encoding/json"

// CreateClosingRequest represents a create closing request.
//
// ManualOpening and ManualClosing accept a JSON number or a numeric string and
// are parsed by the handler. ExpectedPriorID is the id of the latest closing
// the form was built from; "" means the form saw no closing at all and null or
// absent skips the check.
type CreateClosingRequest struct {
	Day             *string         `json:"day"`
	ManualOpening   json.RawMessage `json:"manual_opening" swaggertype:"number"`
	ManualClosing   json.RawMessage `json:"manual_closing" swaggertype:"number"`
	Notes           *string         `json:"notes" binding:"omitempty,max=1000"`
	ExpectedPriorID *string         `json:"expected_prior_id"`
}
