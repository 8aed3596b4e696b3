package cosmopay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// Currency describes one currency the platform supports, with the minimum
// amounts it accepts per operation.
type Currency struct {
	Code          string          `json:"currency"`
	Name          string          `json:"name"`
	MinTransfer   decimal.Decimal `json:"minTransfer"`
	MinCheque     decimal.Decimal `json:"minCheque"`
	MinInvoice    decimal.Decimal `json:"minInvoice"`
	MinWithdrawal decimal.Decimal `json:"minWithdrawal"`
}

// AvailableCurrencies lists the currencies the platform currently supports.
func (c *Client) AvailableCurrencies(ctx context.Context) ([]Currency, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "currencies/available", nil)
	if err != nil {
		return nil, err
	}

	var currencies []Currency
	if err := c.do(req, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}
