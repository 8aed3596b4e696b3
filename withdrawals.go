package cosmopay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// WithdrawalState represents the state of an on-chain withdrawal.
type WithdrawalState string

const (
	WithdrawalStateCreated   WithdrawalState = "CREATED"
	WithdrawalStateCompleted WithdrawalState = "COMPLETED"
	WithdrawalStateFailed    WithdrawalState = "FAIL"
)

// Withdrawal is an on-chain withdrawal from the application balance to an
// external address. TxHash and TxLink stay nil until the transaction is
// broadcast.
type Withdrawal struct {
	WithdrawalID string          `json:"withdrawalId"`
	Network      string          `json:"network"`
	Currency     string          `json:"currency"`
	Amount       decimal.Decimal `json:"amount"`
	Address      string          `json:"address"`
	Status       WithdrawalState `json:"status"`
	Comment      *string         `json:"comment,omitempty"`
	TxHash       *string         `json:"txHash,omitempty"`
	TxLink       *string         `json:"txLink,omitempty"`
	Error        *string         `json:"error,omitempty"`
}

// CreateWithdrawalParams describes a new withdrawal. WithdrawalID is a
// caller-chosen unique id used to query the withdrawal's status later.
type CreateWithdrawalParams struct {
	Network      string          `json:"network" validate:"required"`
	Address      string          `json:"address" validate:"required"`
	Currency     string          `json:"currency" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	WithdrawalID string          `json:"withdrawalId" validate:"required,max=100"`
	Comment      string          `json:"comment,omitempty" validate:"max=1000"`
}

// NetworkFee is the withdrawal fee for one network a currency is available on.
type NetworkFee struct {
	Network       string          `json:"network"`
	Fee           decimal.Decimal `json:"fee"`
	MinWithdrawal decimal.Decimal `json:"minWithdrawal"`
}

// WithdrawalFee lists the per-network withdrawal fees of one currency.
type WithdrawalFee struct {
	Currency string       `json:"currency"`
	Fees     []NetworkFee `json:"fees"`
}

// WithdrawalFeesOptions narrows WithdrawalFees to a single currency.
type WithdrawalFeesOptions struct {
	Currency string `url:"currency,omitempty"`
}

// CreateWithdrawal requests an on-chain withdrawal. The returned record is in
// state CREATED; poll WithdrawalStatus with the same WithdrawalID for the
// outcome.
func (c *Client) CreateWithdrawal(ctx context.Context, params *CreateWithdrawalParams) (*Withdrawal, error) {
	if params == nil {
		return nil, fmt.Errorf("params are required")
	}
	if err := c.validateParams(params); err != nil {
		return nil, err
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid request parameters: amount must be positive")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "app/withdrawal", params)
	if err != nil {
		return nil, err
	}

	var withdrawal Withdrawal
	if err := c.do(req, &withdrawal); err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// WithdrawalStatus fetches a withdrawal by the caller-chosen WithdrawalID it
// was created with.
func (c *Client) WithdrawalStatus(ctx context.Context, withdrawalID string) (*Withdrawal, error) {
	if withdrawalID == "" {
		return nil, fmt.Errorf("withdrawalID is required")
	}

	path := "app/withdrawal/status/" + url.PathEscape(withdrawalID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var withdrawal Withdrawal
	if err := c.do(req, &withdrawal); err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// WithdrawalFees returns current withdrawal fees, optionally narrowed to one
// currency.
func (c *Client) WithdrawalFees(ctx context.Context, opts *WithdrawalFeesOptions) ([]WithdrawalFee, error) {
	path, err := addOptions("app/withdrawal/fees", opts)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var fees []WithdrawalFee
	if err := c.do(req, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}
