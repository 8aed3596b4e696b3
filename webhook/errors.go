package webhook

import (
	"errors"
	"fmt"
)

// ErrInvalidSignature is returned by VerifyAndParse when HMAC verification
// fails. It deliberately carries no further detail: an unauthenticated caller
// learns nothing about why a forged signature was rejected.
var ErrInvalidSignature = errors.New("invalid signature")

// ParseError reports which structural check an inbound payload failed.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}
