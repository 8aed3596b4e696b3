package webhook

import (
	"github.com/shopspring/decimal"
)

// TypeInvoicePay is the only notification type Cosmo Pay currently sends.
const TypeInvoicePay = "invoicePay"

// StatusPaid is the invoice status carried by a completed payment notification.
const StatusPaid = "paid"

// Envelope is the outer shape of an inbound Cosmo Pay notification. Timestamp
// is kept as the verbatim ISO-8601 string from the wire; it is informational
// and its format is never validated.
type Envelope struct {
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"`
	Data      InvoicePayment `json:"data"`
}

// InvoicePayment mirrors the public fields of the invoice a payment was made
// against. Optional fields are pointers so that a value the platform omitted
// stays distinguishable from a zero value it sent.
type InvoicePayment struct {
	ID               int64            `json:"id"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	Status           string           `json:"status"`
	MinPayment       *decimal.Decimal `json:"minPayment,omitempty"`
	TotalActivations *int             `json:"totalActivations,omitempty"`
	ActivationsLeft  *int             `json:"activationsLeft,omitempty"`
	Description      *string          `json:"description,omitempty"`
	HiddenMessage    *string          `json:"hiddenMessage,omitempty"`
	Payload          *string          `json:"payload,omitempty"`
	CallbackURL      *string          `json:"callbackUrl,omitempty"`
	CommentsEnabled  *bool            `json:"commentsEnabled,omitempty"`
	Created          *string          `json:"created,omitempty"`
	Paid             *string          `json:"paid,omitempty"`
	ExpiredIn        *int             `json:"expiredIn,omitempty"`
	Link             *string          `json:"link,omitempty"`
	Payment          PaymentRecord    `json:"payment"`
}

// PaymentRecord describes one individual payment event against an invoice.
type PaymentRecord struct {
	UserID         int64            `json:"userId"`
	PaymentNum     int              `json:"paymentNum"`
	PaymentAmount  decimal.Decimal  `json:"paymentAmount"`
	AmountReceived *decimal.Decimal `json:"paymentAmountReceived,omitempty"`
	Comment        *string          `json:"comment,omitempty"`
	Paid           string           `json:"paid"`
}

// Summary is a flat projection of a validated invoice-payment notification,
// convenient for logging and display. Nil pointer fields were absent from the
// source payload; they are never defaulted to zero.
type Summary struct {
	InvoiceID        int64
	Amount           decimal.Decimal
	Currency         string
	Status           string
	UserID           int64
	PaymentNum       int
	PaymentAmount    decimal.Decimal
	AmountReceived   *decimal.Decimal
	PaidAt           string
	Comment          *string
	Payload          *string
	Description      *string
	TotalActivations *int
	ActivationsLeft  *int
}

// IsPaid reports whether the notification describes a fully paid invoice.
func (e *Envelope) IsPaid() bool {
	return e != nil && e.Data.Status == StatusPaid
}

// Summary projects the envelope into a flat Summary record.
func (e *Envelope) Summary() *Summary {
	if e == nil {
		return nil
	}
	return &Summary{
		InvoiceID:        e.Data.ID,
		Amount:           e.Data.Amount,
		Currency:         e.Data.Currency,
		Status:           e.Data.Status,
		UserID:           e.Data.Payment.UserID,
		PaymentNum:       e.Data.Payment.PaymentNum,
		PaymentAmount:    e.Data.Payment.PaymentAmount,
		AmountReceived:   e.Data.Payment.AmountReceived,
		PaidAt:           e.Data.Payment.Paid,
		Comment:          e.Data.Payment.Comment,
		Payload:          e.Data.Payload,
		Description:      e.Data.Description,
		TotalActivations: e.Data.TotalActivations,
		ActivationsLeft:  e.Data.ActivationsLeft,
	}
}
