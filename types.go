package cosmopay

// Well-known currency codes. The authoritative list, including minimum amounts
// per operation, comes from AvailableCurrencies.
const (
	CurrencyToncoin = "TONCOIN"
	CurrencyUSDT    = "USDT"
	CurrencyBitcoin = "BTC"
	CurrencyEther   = "ETH"
)

// ListOptions selects a page of results for list operations. Zero values are
// omitted and the API defaults apply.
type ListOptions struct {
	Limit  int `url:"limit,omitempty"`
	Offset int `url:"offset,omitempty"`
}

// Page carries the pagination header every list response repeats alongside its
// results.
type Page struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
