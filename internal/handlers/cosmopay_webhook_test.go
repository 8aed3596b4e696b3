package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cosmopay/cosmopay-go/internal/config"
	"github.com/cosmopay/cosmopay-go/webhook"
)

const paidInvoiceBody = `{"type":"invoicePay","timestamp":"2024-01-01T00:00:00Z","data":{"id":1,"amount":5,"currency":"TONCOIN","status":"paid","payment":{"userId":42,"paymentNum":1,"paymentAmount":5,"paid":"2024-01-01T00:05:00Z"}}}`

func signTestBody(t *testing.T, body, token string) string {
	t.Helper()

	key := sha256.Sum256([]byte(token))
	mac := hmac.New(sha256.New, key[:])
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestHandlers(t *testing.T, router *EventRouter) *Handlers {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if router == nil {
		router = NewEventRouter(nil, nil, logger)
	}
	return &Handlers{
		config: &config.Config{APIKey: "test-token"},
		router: router,
		logger: logger,
	}
}

func TestCosmopayWebhook_AcceptsSignedDelivery(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cosmopay", strings.NewReader(paidInvoiceBody))
	req.Header.Set(webhook.SignatureHeader, signTestBody(t, paidInvoiceBody, "test-token"))
	rec := httptest.NewRecorder()

	h.CosmopayWebhook(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%q", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestCosmopayWebhook_RejectsMissingSignatureHeader(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cosmopay", strings.NewReader(paidInvoiceBody))
	rec := httptest.NewRecorder()

	h.CosmopayWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Invalid webhook") {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestCosmopayWebhook_RejectsWrongToken(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cosmopay", strings.NewReader(paidInvoiceBody))
	req.Header.Set(webhook.SignatureHeader, signTestBody(t, paidInvoiceBody, "some-other-token"))
	rec := httptest.NewRecorder()

	h.CosmopayWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestCosmopayWebhook_RejectsTamperedBody(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)
	tampered := strings.Replace(paidInvoiceBody, `"amount":5`, `"amount":500`, 1)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cosmopay", strings.NewReader(tampered))
	req.Header.Set(webhook.SignatureHeader, signTestBody(t, paidInvoiceBody, "test-token"))
	rec := httptest.NewRecorder()

	h.CosmopayWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestCosmopayWebhook_RejectsUnparseablePayload(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)

	// Correctly signed, so rejection has to come from payload validation.
	body := `{"type":"invoicePay","timestamp":"2024-01-01T00:00:00Z"}`

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cosmopay", strings.NewReader(body))
	req.Header.Set(webhook.SignatureHeader, signTestBody(t, body, "test-token"))
	rec := httptest.NewRecorder()

	h.CosmopayWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}
