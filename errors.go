package cosmopay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
var ErrMissingAPIKey = errors.New("missing API key")

// FieldError is one per-field validation failure reported by the API.
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"error"`
}

// APIError is a non-success response from the Cosmo Pay API.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cosmopay: %s (status %d)", e.Message, e.StatusCode)
	for _, fe := range e.Errors {
		fmt.Fprintf(&b, "; %s: %s", fe.Property, fe.Message)
	}
	return b.String()
}

// newAPIError builds an *APIError from a failure response body. Bodies that do
// not carry the standard envelope fall back to the HTTP status text.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var envelope apiEnvelope
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Message = envelope.Message
		apiErr.Errors = envelope.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.ToLower(http.StatusText(statusCode))
	}
	if apiErr.Message == "" {
		apiErr.Message = "request failed"
	}

	return apiErr
}
