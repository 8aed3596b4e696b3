package cosmopay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ChequeState represents the lifecycle state of a multi-cheque.
type ChequeState string

const (
	ChequeStateActive    ChequeState = "active"
	ChequeStateCompleted ChequeState = "completed"
	ChequeStateDraft     ChequeState = "draft"
)

// Cheque is a multi-user cheque: a fixed per-user amount claimable by a
// limited number of users through a shared link.
type Cheque struct {
	ID                int64           `json:"id"`
	Currency          string          `json:"currency"`
	Total             decimal.Decimal `json:"total"`
	PerUser           decimal.Decimal `json:"perUser"`
	Users             int             `json:"users"`
	Activations       int             `json:"activations"`
	RefProgramPercent int             `json:"refProgramPercent"`
	Password          *string         `json:"password,omitempty"`
	Description       *string         `json:"description,omitempty"`
	SendNotifications bool            `json:"sendNotifications"`
	CaptchaEnabled    bool            `json:"captchaEnabled"`
	DisabledLanguages []string        `json:"disabledLanguages,omitempty"`
	State             ChequeState     `json:"state"`
	Link              string          `json:"link"`
}

// ChequeList is one page of cheques.
type ChequeList struct {
	Page
	Results []Cheque `json:"results"`
}

// CreateChequeParams describes a new multi-cheque. The total charged to the
// application balance is PerUser times Users, plus the platform fee.
type CreateChequeParams struct {
	Currency          string          `json:"currency" validate:"required"`
	PerUser           decimal.Decimal `json:"perUser"`
	Users             int             `json:"users" validate:"min=1"`
	RefProgramPercent int             `json:"refProgramPercent,omitempty" validate:"min=0,max=100"`
	Password          string          `json:"password,omitempty" validate:"max=100"`
	Description       string          `json:"description,omitempty" validate:"max=1000"`
	SendNotifications bool            `json:"sendNotifications,omitempty"`
	CaptchaEnabled    bool            `json:"captchaEnabled,omitempty"`
	DisabledLanguages []string        `json:"disabledLanguages,omitempty"`
}

// UpdateChequeParams carries a partial update for an existing cheque. Nil
// fields are left unchanged.
type UpdateChequeParams struct {
	Password          *string `json:"password,omitempty" validate:"omitempty,max=100"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SendNotifications *bool   `json:"sendNotifications,omitempty"`
	CaptchaEnabled    *bool   `json:"captchaEnabled,omitempty"`
	RefProgramPercent *int    `json:"refProgramPercent,omitempty" validate:"omitempty,min=0,max=100"`
}

// CreateCheque creates a multi-cheque and returns it with its id and claim
// link assigned.
func (c *Client) CreateCheque(ctx context.Context, params *CreateChequeParams) (*Cheque, error) {
	if params == nil {
		return nil, fmt.Errorf("params are required")
	}
	if err := c.validateParams(params); err != nil {
		return nil, err
	}
	if !params.PerUser.IsPositive() {
		return nil, fmt.Errorf("invalid request parameters: perUser must be positive")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "multi-cheques", params)
	if err != nil {
		return nil, err
	}

	var cheque Cheque
	if err := c.do(req, &cheque); err != nil {
		return nil, err
	}
	return &cheque, nil
}

// GetCheque fetches a single cheque by id.
func (c *Client) GetCheque(ctx context.Context, id int64) (*Cheque, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("multi-cheques/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var cheque Cheque
	if err := c.do(req, &cheque); err != nil {
		return nil, err
	}
	return &cheque, nil
}

// ListCheques returns a page of the application's cheques.
func (c *Client) ListCheques(ctx context.Context, opts *ListOptions) (*ChequeList, error) {
	path, err := addOptions("multi-cheques", opts)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list ChequeList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateCheque applies a partial update to a cheque and returns the updated
// record.
func (c *Client) UpdateCheque(ctx context.Context, id int64, params *UpdateChequeParams) (*Cheque, error) {
	if params == nil {
		return nil, fmt.Errorf("params are required")
	}
	if err := c.validateParams(params); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("multi-cheques/%d", id), params)
	if err != nil {
		return nil, err
	}

	var cheque Cheque
	if err := c.do(req, &cheque); err != nil {
		return nil, err
	}
	return &cheque, nil
}

// DeleteCheque removes a cheque. Remaining funds return to the application
// balance.
func (c *Client) DeleteCheque(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("multi-cheques/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
