// Package webhook authenticates and parses inbound Cosmo Pay payment
// notifications.
//
// The host HTTP server reads the raw request body and the Cosmo-Pay-Signature
// header and hands both to VerifyAndParse together with the application's API
// key (the same key used for outbound calls). The body must be the exact bytes
// received on the wire: re-serializing parsed JSON can change byte-for-byte
// equality and makes every valid signature fail.
package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SignatureHeader is the request header carrying the hex-encoded HMAC of the
// raw request body.
const SignatureHeader = "Cosmo-Pay-Signature"

var (
	invoiceFields = []string{"id", "amount", "currency", "status", "payment"}
	paymentFields = []string{"userId", "paymentNum", "paymentAmount", "paid"}
)

// VerifySignature reports whether signature is a valid MAC for body under the
// application's API key. The signing key is the SHA-256 digest of the key, and
// the MAC is the lowercase hex HMAC-SHA256 of the body under that signing key.
// Comparison is constant-time. The check never panics; empty body, signature
// or token simply fail verification.
func VerifySignature(body []byte, signature, token string) bool {
	if len(body) == 0 || signature == "" || token == "" {
		return false
	}

	key := sha256.Sum256([]byte(token))
	mac := hmac.New(sha256.New, key[:])
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(signature))
}

// Parse validates the structure of an inbound notification body and returns
// the typed envelope. Validation is all-or-nothing: every failure returns a
// *ParseError naming the check that failed, and no partial envelope is ever
// returned.
func Parse(body []byte) (*Envelope, error) {
	if len(body) == 0 {
		return nil, &ParseError{Reason: "empty body"}
	}
	if !json.Valid(body) {
		return nil, &ParseError{Reason: "invalid JSON"}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil || root == nil {
		return nil, &ParseError{Reason: "payload is not an object"}
	}

	typeTag, ok := envelopeField(root, "type")
	if !ok {
		return nil, parseErrorf("missing envelope field %q", "type")
	}
	timestamp, ok := envelopeField(root, "timestamp")
	if !ok {
		return nil, parseErrorf("missing envelope field %q", "timestamp")
	}
	if typeTag != TypeInvoicePay {
		return nil, parseErrorf("unsupported webhook type %q", typeTag)
	}

	rawData, ok := root["data"]
	var data map[string]json.RawMessage
	if !ok || json.Unmarshal(rawData, &data) != nil || data == nil {
		return nil, &ParseError{Reason: "missing or invalid data"}
	}
	for _, field := range invoiceFields {
		if raw, present := data[field]; !present || isNull(raw) {
			return nil, parseErrorf("missing data field %q", field)
		}
	}

	var payment map[string]json.RawMessage
	if json.Unmarshal(data["payment"], &payment) != nil || payment == nil {
		return nil, &ParseError{Reason: "missing or invalid payment"}
	}
	for _, field := range paymentFields {
		if raw, present := payment[field]; !present || isNull(raw) {
			return nil, parseErrorf("missing payment field %q", field)
		}
	}

	// Only now that every required field is known to be present is the typed
	// struct populated, from the same raw bytes the checks ran over.
	var invoice InvoicePayment
	if err := json.Unmarshal(rawData, &invoice); err != nil {
		return nil, parseErrorf("malformed invoice payment data: %v", err)
	}

	return &Envelope{Type: typeTag, Timestamp: timestamp, Data: invoice}, nil
}

// VerifyAndParse is the fail-fast entry point: it authenticates the raw body
// first and only then interprets it. A body that fails verification is never
// parsed, so parser diagnostics are unreachable for unauthenticated callers.
func VerifyAndParse(body []byte, signature, token string) (*Envelope, error) {
	if !VerifySignature(body, signature, token) {
		return nil, ErrInvalidSignature
	}
	return Parse(body)
}

// ReadRequest reads the raw body and signature header from an inbound HTTP
// request and runs VerifyAndParse against them.
func ReadRequest(r *http.Request, token string) (*Envelope, error) {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		return nil, fmt.Errorf("missing signature header")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return VerifyAndParse(body, signature, token)
}

// envelopeField returns the named field rendered as a string and whether it
// is present and truthy. Truthy non-string values are kept as their raw JSON
// text so that the unsupported-type error can name what was actually sent.
func envelopeField(obj map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := obj[name]
	if !ok || isFalsy(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw), true
	}
	return s, true
}

// isFalsy reports whether raw is a JSON value the envelope contract counts as
// unset: null, false, a zero number or the empty string.
func isFalsy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) ||
		bytes.Equal(trimmed, []byte("false")) ||
		bytes.Equal(trimmed, []byte(`""`)) {
		return true
	}

	var n float64
	if json.Unmarshal(trimmed, &n) == nil {
		return n == 0
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
