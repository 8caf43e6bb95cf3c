// Package llm provides provider-neutral representations of chat completion
// requests and responses, and the client contract used to send them.
package llm

import "errors"

// ErrNoChoices is returned when a completion response carries no choices.
var ErrNoChoices = errors.New("completion response has no choices")

// ErrorResponse represents an error returned over HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}
