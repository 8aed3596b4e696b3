// Package notify delivers paid-invoice notifications.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/cosmopay/cosmopay-go/webhook"
)

// Notifier announces one paid invoice.
type Notifier interface {
	NotifyPaid(ctx context.Context, summary *webhook.Summary) error
}

// renderPaid builds the subject and plain-text body for a paid-invoice
// notification.
func renderPaid(summary *webhook.Summary) (subject, text string) {
	subject = fmt.Sprintf("Invoice #%d paid: %s %s",
		summary.InvoiceID, summary.PaymentAmount, summary.Currency)

	var b strings.Builder
	fmt.Fprintf(&b, "Invoice #%d was paid.\n\n", summary.InvoiceID)
	fmt.Fprintf(&b, "Amount:   %s %s\n", summary.PaymentAmount, summary.Currency)
	if summary.AmountReceived != nil {
		fmt.Fprintf(&b, "Received: %s %s\n", summary.AmountReceived, summary.Currency)
	}
	fmt.Fprintf(&b, "Payer:    user %d (payment #%d)\n", summary.UserID, summary.PaymentNum)
	fmt.Fprintf(&b, "Paid at:  %s\n", summary.PaidAt)
	if summary.Comment != nil && *summary.Comment != "" {
		fmt.Fprintf(&b, "Comment:  %s\n", *summary.Comment)
	}
	if summary.Payload != nil && *summary.Payload != "" {
		fmt.Fprintf(&b, "Payload:  %s\n", *summary.Payload)
	}

	return subject, b.String()
}
