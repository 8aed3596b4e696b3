package notify

import (
	"context"
	"fmt"

	resend "github.com/resend/resend-go/v3"

	"github.com/cosmopay/cosmopay-go/webhook"
)

// ResendNotifier emails paid-invoice notices via the Resend API.
type ResendNotifier struct {
	from   string
	to     string
	client *resend.Client
}

func NewResendNotifier(apiKey, from, to string) *ResendNotifier {
	return &ResendNotifier{
		from:   from,
		to:     to,
		client: resend.NewClient(apiKey),
	}
}

// NotifyPaid sends a plain-text notification email for the paid invoice.
func (n *ResendNotifier) NotifyPaid(ctx context.Context, summary *webhook.Summary) error {
	if summary == nil {
		return fmt.Errorf("summary is required")
	}
	if n.client == nil {
		return fmt.Errorf("resend client not configured")
	}

	subject, text := renderPaid(summary)
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Text:    text,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send notification via resend: %w", err)
	}
	return nil
}

// ValidateAPIKey checks at startup that the configured key is usable.
func (n *ResendNotifier) ValidateAPIKey(ctx context.Context) error {
	if n.client == nil {
		return fmt.Errorf("resend client not configured")
	}
	if _, err := n.client.ApiKeys.ListWithContext(ctx); err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}
	return nil
}
