package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/oracle"
)

// SettingReferenceCurrency is the kv_store key holding the default valuation
// currency.
const SettingReferenceCurrency = "valuation.reference_currency"

const defaultReferenceCurrency = "USD"

// ValuationUsecase converts every active account balance into a reference
// currency and sums them into a net-worth figure.
type ValuationUsecase struct {
	store    Store
	prices   PriceSource
	settings Settings
}

func NewValuationUsecase(store Store, prices PriceSource, settings Settings) *ValuationUsecase {
	return &ValuationUsecase{store: store, prices: prices, settings: settings}
}

// NetWorth values all active accounts in referenceCurrency (falling back to
// the stored default, then USD). Accounts without an oracle price contribute
// zero but stay in the breakdown, flagged no_price.
func (u *ValuationUsecase) NetWorth(ctx context.Context, referenceCurrency string) (*dto.NetWorth, error) {
	ref := strings.ToUpper(strings.TrimSpace(referenceCurrency))
	if ref == "" {
		stored, err := u.settings.Get(ctx, SettingReferenceCurrency)
		if err != nil {
			return nil, err
		}
		ref = strings.ToUpper(stored)
		if ref == "" {
			ref = defaultReferenceCurrency
		}
	}

	accounts, err := u.store.ListActiveAccounts(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.NetWorth{
		Currency:  ref,
		Total:     decimal.Zero,
		Breakdown: make(map[string][]dto.AccountValue),
	}
	for _, acc := range accounts {
		row := dto.AccountValue{
			AccountID: acc.ID,
			Name:      acc.Name,
			Currency:  acc.Currency,
			Balance:   acc.Balance,
		}
		switch {
		case acc.Currency == ref:
			row.Value = acc.Balance
		default:
			price, err := u.prices.GetPrice(ctx, acc.Currency)
			if err != nil {
				if !errors.Is(err, oracle.ErrPriceNotFound) {
					return nil, err
				}
				row.NoPrice = true
				row.Value = decimal.Zero
			} else {
				row.Value = acc.Balance.Mul(price)
			}
		}
		out.Total = out.Total.Add(row.Value)
		out.Breakdown[acc.Kind] = append(out.Breakdown[acc.Kind], row)
	}
	return out, nil
}
