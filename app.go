package cosmopay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// Balance is the application's balance in one currency.
type Balance struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// AppInfo describes the application the API key belongs to.
type AppInfo struct {
	Name       string          `json:"name"`
	FeePercent decimal.Decimal `json:"feePercent"`
	Balances   []Balance       `json:"balances"`
}

// AppInfo returns the application's name, fee and balances. It is also the
// cheapest way to check that an API key is valid.
func (c *Client) AppInfo(ctx context.Context) (*AppInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "app/info", nil)
	if err != nil {
		return nil, err
	}

	var info AppInfo
	if err := c.do(req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
