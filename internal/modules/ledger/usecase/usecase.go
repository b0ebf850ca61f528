// Package usecase holds the ledger engines. Each engine is stateless: it
// fetches request-scoped account state, validates, and commits atomically
// through the store. Nothing is cached across calls.
package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fledger/internal/modules/ledger/model"
)

// Store is the persistence boundary implemented by repository.LedgerRepository.
type Store interface {
	GetAccount(ctx context.Context, id int64) (*model.Account, error)
	ListActiveAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, acc *model.Account) error
	DeactivateAccount(ctx context.Context, id int64) error
	CashflowSummary(ctx context.Context, from, to time.Time) (income, expense decimal.Decimal, err error)
	LedgerSums(ctx context.Context, walletID int64) (debit, credit decimal.Decimal, err error)
	CommitLedgerTransaction(ctx context.Context, txRec *model.Transaction, entries []model.LedgerEntry, changes []model.BalanceChange) (int64, error)
}

// PriceSource is the read-only price oracle boundary.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Settings exposes the key-value settings table.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
