package cosmopay

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAppInfo(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/info" {
			t.Errorf("path = %s, want /app/info", r.URL.Path)
		}
		writeData(t, w, `{"name":"Cosmo Shop","feePercent":1.5,"balances":[{"currency":"TONCOIN","balance":"250.75"},{"currency":"USDT","balance":0}]}`)
	})

	info, err := client.AppInfo(context.Background())
	if err != nil {
		t.Fatalf("AppInfo() error = %v", err)
	}

	if info.Name != "Cosmo Shop" {
		t.Errorf("Name = %q, want Cosmo Shop", info.Name)
	}
	if !info.FeePercent.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("FeePercent = %s, want 1.5", info.FeePercent)
	}
	if len(info.Balances) != 2 {
		t.Fatalf("len(Balances) = %d, want 2", len(info.Balances))
	}
	if !info.Balances[0].Balance.Equal(decimal.RequireFromString("250.75")) {
		t.Errorf("Balances[0] = %s, want 250.75", info.Balances[0].Balance)
	}
}

func TestAvailableCurrencies(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/currencies/available" {
			t.Errorf("path = %s, want /currencies/available", r.URL.Path)
		}
		writeData(t, w, `[{"currency":"TONCOIN","name":"Toncoin","minTransfer":0.001,"minCheque":0.01,"minInvoice":0.001,"minWithdrawal":1},{"currency":"USDT","name":"Tether","minTransfer":0.01,"minCheque":0.01,"minInvoice":0.01,"minWithdrawal":10}]`)
	})

	currencies, err := client.AvailableCurrencies(context.Background())
	if err != nil {
		t.Fatalf("AvailableCurrencies() error = %v", err)
	}

	if len(currencies) != 2 {
		t.Fatalf("len(currencies) = %d, want 2", len(currencies))
	}
	if currencies[0].Code != CurrencyToncoin {
		t.Errorf("Code = %q, want TONCOIN", currencies[0].Code)
	}
	if !currencies[1].MinWithdrawal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("MinWithdrawal = %s, want 10", currencies[1].MinWithdrawal)
	}
}
