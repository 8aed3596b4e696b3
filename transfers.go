package cosmopay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Transfer is a completed balance transfer to a platform user.
type Transfer struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

// CreateTransferParams describes a transfer from the application balance to a
// user. TransferID is a caller-chosen unique id; reusing one is rejected by
// the API, so an accidental duplicate submission cannot pay a user twice.
type CreateTransferParams struct {
	UserID      int64           `json:"userId" validate:"required"`
	Currency    string          `json:"currency" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	TransferID  string          `json:"transferId" validate:"required,max=100"`
	Description string          `json:"description,omitempty" validate:"max=1000"`
}

// CreateTransfer sends funds from the application balance directly to a user.
// Transfers are instant and cannot be reversed.
func (c *Client) CreateTransfer(ctx context.Context, params *CreateTransferParams) (*Transfer, error) {
	if params == nil {
		return nil, fmt.Errorf("params are required")
	}
	if err := c.validateParams(params); err != nil {
		return nil, err
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid request parameters: amount must be positive")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "app/transfer", params)
	if err != nil {
		return nil, err
	}

	var transfer Transfer
	if err := c.do(req, &transfer); err != nil {
		return nil, err
	}
	return &transfer, nil
}
