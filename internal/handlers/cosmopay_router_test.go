package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cosmopay/cosmopay-go/internal/relay"
	"github.com/cosmopay/cosmopay-go/webhook"
)

type fakeNotifier struct {
	summaries []*webhook.Summary
	err       error
}

func (f *fakeNotifier) NotifyPaid(_ context.Context, summary *webhook.Summary) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

func parseEnvelope(t *testing.T, body string) *webhook.Envelope {
	t.Helper()

	env, err := webhook.Parse([]byte(body))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return env
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventRouter_NotifiesOnPaidInvoice(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	router := NewEventRouter(nil, notifier, discardLogger())
	env := parseEnvelope(t, paidInvoiceBody)

	if err := router.Handle(context.Background(), env, []byte(paidInvoiceBody), "sig"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.summaries) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.summaries))
	}
	summary := notifier.summaries[0]
	if summary.InvoiceID != 1 {
		t.Fatalf("unexpected invoice id: %d", summary.InvoiceID)
	}
	if summary.UserID != 42 {
		t.Fatalf("unexpected user id: %d", summary.UserID)
	}
}

func TestEventRouter_SkipsNotifyForUnpaidInvoice(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	router := NewEventRouter(nil, notifier, discardLogger())
	body := strings.Replace(paidInvoiceBody, `"status":"paid"`, `"status":"active"`, 1)
	env := parseEnvelope(t, body)

	if err := router.Handle(context.Background(), env, []byte(body), "sig"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.summaries) != 0 {
		t.Fatalf("expected no notifications, got %d", len(notifier.summaries))
	}
}

func TestEventRouter_NotifyFailureDoesNotFailHandling(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: errors.New("mail provider down")}
	router := NewEventRouter(nil, notifier, discardLogger())
	env := parseEnvelope(t, paidInvoiceBody)

	if err := router.Handle(context.Background(), env, []byte(paidInvoiceBody), "sig"); err != nil {
		t.Fatalf("notification failure must not fail the delivery: %v", err)
	}
}

func TestEventRouter_ForwardsRawBodyWithSignature(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get(webhook.SignatureHeader); got != "original-signature" {
			t.Errorf("unexpected signature header: %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read forwarded body: %v", err)
		}
		if string(body) != paidInvoiceBody {
			t.Errorf("forwarded body was not byte-identical: %q", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	forwarder := relay.NewForwarder([]relay.Target{{Name: "orders", URL: srv.URL}}, nil, discardLogger())
	router := NewEventRouter(forwarder, nil, discardLogger())
	env := parseEnvelope(t, paidInvoiceBody)

	if err := router.Handle(context.Background(), env, []byte(paidInvoiceBody), "original-signature"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 forwarded delivery, got %d", got)
	}
}

func TestEventRouter_IgnoresUnknownEventType(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	router := NewEventRouter(nil, notifier, discardLogger())
	env := &webhook.Envelope{Type: "subscriptionPay", Timestamp: "2024-01-01T00:00:00Z"}

	if err := router.Handle(context.Background(), env, nil, ""); err != nil {
		t.Fatalf("unknown event types must be accepted: %v", err)
	}
	if len(notifier.summaries) != 0 {
		t.Fatalf("expected no notifications, got %d", len(notifier.summaries))
	}
}

func TestEventRouter_RejectsNilEnvelope(t *testing.T) {
	t.Parallel()

	router := NewEventRouter(nil, nil, discardLogger())

	if err := router.Handle(context.Background(), nil, nil, ""); err == nil {
		t.Fatal("expected an error for a nil envelope")
	}
}
