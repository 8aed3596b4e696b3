package cosmopay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusActive  InvoiceStatus = "active"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusExpired InvoiceStatus = "expired"
)

// Invoice is a payment request issued by the application. Optional fields are
// pointers: nil means the field was not set when the invoice was created.
type Invoice struct {
	ID               int64            `json:"id"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	Status           InvoiceStatus    `json:"status"`
	MinPayment       *decimal.Decimal `json:"minPayment,omitempty"`
	TotalActivations *int             `json:"totalActivations,omitempty"`
	ActivationsLeft  *int             `json:"activationsLeft,omitempty"`
	Description      *string          `json:"description,omitempty"`
	HiddenMessage    *string          `json:"hiddenMessage,omitempty"`
	Payload          *string          `json:"payload,omitempty"`
	CallbackURL      *string          `json:"callbackUrl,omitempty"`
	CommentsEnabled  *bool            `json:"commentsEnabled,omitempty"`
	Created          string           `json:"created"`
	Paid             *string          `json:"paid,omitempty"`
	ExpiredIn        *int             `json:"expiredIn,omitempty"`
	Link             string           `json:"link"`
}

// InvoiceList is one page of invoices.
type InvoiceList struct {
	Page
	Results []Invoice `json:"results"`
}

// CreateInvoiceParams describes a new invoice. Amount and Currency are
// required; everything else is optional.
type CreateInvoiceParams struct {
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency" validate:"required"`
	MinPayment       *decimal.Decimal `json:"minPayment,omitempty"`
	TotalActivations int              `json:"totalActivations,omitempty" validate:"min=0"`
	Description      string           `json:"description,omitempty" validate:"max=1000"`
	HiddenMessage    string           `json:"hiddenMessage,omitempty" validate:"max=2000"`
	Payload          string           `json:"payload,omitempty" validate:"max=4096"`
	CallbackURL      string           `json:"callbackUrl,omitempty" validate:"omitempty,url"`
	CommentsEnabled  bool             `json:"commentsEnabled,omitempty"`
	ExpiredIn        int              `json:"expiredIn,omitempty" validate:"min=0"`
}

// CreateInvoice creates an invoice and returns it with its id and payment
// link assigned.
func (c *Client) CreateInvoice(ctx context.Context, params *CreateInvoiceParams) (*Invoice, error) {
	if params == nil {
		return nil, fmt.Errorf("params are required")
	}
	if err := c.validateParams(params); err != nil {
		return nil, err
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid request parameters: amount must be positive")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "invoices", params)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := c.do(req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetInvoice fetches a single invoice by id.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("invoices/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := c.do(req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns a page of the application's invoices, newest first.
func (c *Client) ListInvoices(ctx context.Context, opts *ListOptions) (*InvoiceList, error) {
	path, err := addOptions("invoices", opts)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list InvoiceList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteInvoice removes an unpaid invoice. Deleting an invoice that was
// already paid is rejected by the API.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("invoices/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
