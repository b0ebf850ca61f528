package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetWorthMixedHoldings(t *testing.T) {
	store := newFakeStore(
		account(1, "Bank", "bank", "USD", "TradFi", "BANK", "100"),
		account(2, "Obscure Coin", "wallet", "XNOPE", "DeFi", "EVM", "7"),
		account(3, "Exchange XYZ", "exchange", "XYZ", "CeFi", "EXCHANGE", "5"),
	)
	prices := &fakePrices{prices: map[string]decimal.Decimal{"XYZ": dec("10")}}
	u := NewValuationUsecase(store, prices, &fakeSettings{})

	nw, err := u.NetWorth(context.Background(), "USD")
	require.NoError(t, err)

	// 100 + 0 (no price) + 5*10
	assert.True(t, nw.Total.Equal(dec("150")), "got %s", nw.Total)
	assert.Equal(t, "USD", nw.Currency)

	// The unpriced account is still reported, flagged no_price.
	var flagged int
	var rows int
	for _, group := range nw.Breakdown {
		for _, row := range group {
			rows++
			if row.NoPrice {
				flagged++
				assert.Equal(t, int64(2), row.AccountID)
				assert.True(t, row.Value.IsZero())
			}
		}
	}
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, flagged)

	// Grouped by account kind.
	assert.Len(t, nw.Breakdown["bank"], 1)
	assert.Len(t, nw.Breakdown["wallet"], 1)
	assert.Len(t, nw.Breakdown["exchange"], 1)
}

func TestNetWorthIdempotentRead(t *testing.T) {
	store := newFakeStore(
		account(1, "Bank", "bank", "USD", "TradFi", "BANK", "250"),
		account(2, "BTC", "wallet", "BTC", "DeFi", "BITCOIN", "2"),
	)
	prices := &fakePrices{prices: map[string]decimal.Decimal{"BTC": dec("30000")}}
	u := NewValuationUsecase(store, prices, &fakeSettings{})

	first, err := u.NetWorth(context.Background(), "USD")
	require.NoError(t, err)
	second, err := u.NetWorth(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestNetWorthReferenceCurrencyDefaults(t *testing.T) {
	store := newFakeStore(account(1, "Bank", "bank", "EUR", "TradFi", "BANK", "10"))
	prices := &fakePrices{}
	settings := &fakeSettings{values: map[string]string{SettingReferenceCurrency: "eur"}}
	u := NewValuationUsecase(store, prices, settings)

	// Stored default wins when the caller passes nothing.
	nw, err := u.NetWorth(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "EUR", nw.Currency)
	assert.True(t, nw.Total.Equal(dec("10")))

	// Hard fallback is USD.
	u = NewValuationUsecase(store, prices, &fakeSettings{})
	nw, err = u.NetWorth(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", nw.Currency)
}

func TestNetWorthExcludesInactiveAccounts(t *testing.T) {
	hidden := account(2, "Closed", "bank", "USD", "TradFi", "BANK", "999")
	hidden.IsActive = false
	store := newFakeStore(
		account(1, "Bank", "bank", "USD", "TradFi", "BANK", "100"),
		hidden,
	)
	u := NewValuationUsecase(store, &fakePrices{}, &fakeSettings{})

	nw, err := u.NetWorth(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, nw.Total.Equal(dec("100")))
}
