package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fledger/internal/infrastructure/db"
	"fledger/internal/modules/ledger/model"
)

// Needs a reachable Postgres, e.g.
// TEST_DATABASE_DSN="host=localhost user=postgres password=password dbname=fledger_test port=5432 sslmode=disable"
func setupDB(t *testing.T) (*gorm.DB, context.Context) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping integration test")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	return conn, context.Background()
}

func setupRepo(t *testing.T) (*LedgerRepository, context.Context) {
	t.Helper()
	conn, ctx := setupDB(t)
	return NewLedgerRepository(conn, conn), ctx
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func createAccount(t *testing.T, ctx context.Context, repo *LedgerRepository, name, currency, category, network string) *model.Account {
	t.Helper()
	acc := &model.Account{
		Name:     name + " " + uuid.NewString()[:8],
		Kind:     "bank",
		Currency: currency,
		Category: category,
		Network:  network,
	}
	require.NoError(t, repo.CreateAccount(ctx, acc))
	return acc
}

func TestCommitLedgerTransactionTransfer(t *testing.T) {
	repo, ctx := setupRepo(t)

	src := createAccount(t, ctx, repo, "Src", "USD", "TradFi", "BANK")
	dst := createAccount(t, ctx, repo, "Dst", "USD", "CeFi", "BINANCE")

	// Fund the source first.
	_, err := repo.CommitLedgerTransaction(ctx,
		&model.Transaction{Reference: uuid.NewString(), Type: model.TxIncome, Category: "Opening",
			Amount: dec("1000"), Currency: "USD", WalletID: src.ID},
		[]model.LedgerEntry{{WalletID: src.ID, Debit: dec("1000")}},
		[]model.BalanceChange{{WalletID: src.ID, Delta: dec("1000")}},
	)
	require.NoError(t, err)

	fee := dec("5")
	txID, err := repo.CommitLedgerTransaction(ctx,
		&model.Transaction{Reference: uuid.NewString(), Type: model.TxTransfer, Category: "Transfer",
			Amount: dec("100"), Currency: "USD", WalletID: src.ID, DestWalletID: &dst.ID, Fee: fee},
		[]model.LedgerEntry{
			{WalletID: dst.ID, Debit: dec("100")},
			{WalletID: src.ID, Credit: dec("105")},
		},
		[]model.BalanceChange{
			{WalletID: src.ID, Delta: dec("-105"), Floor: model.FloorZero()},
			{WalletID: dst.ID, Delta: dec("100")},
		},
	)
	require.NoError(t, err)
	assert.Positive(t, txID)

	srcAfter, err := repo.GetAccount(ctx, src.ID)
	require.NoError(t, err)
	assert.True(t, srcAfter.Balance.Equal(dec("895")), "got %s", srcAfter.Balance)

	dstAfter, err := repo.GetAccount(ctx, dst.ID)
	require.NoError(t, err)
	assert.True(t, dstAfter.Balance.Equal(dec("100")))

	// Balance equals its ledger sum on both sides.
	for _, acc := range []*model.Account{srcAfter, dstAfter} {
		debit, credit, err := repo.LedgerSums(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(debit.Sub(credit)), "account %d drifted", acc.ID)
	}
}

func TestCommitLedgerTransactionFloorRejected(t *testing.T) {
	repo, ctx := setupRepo(t)

	src := createAccount(t, ctx, repo, "Poor", "USD", "TradFi", "BANK")
	dst := createAccount(t, ctx, repo, "Dst", "USD", "TradFi", "BANK")

	_, err := repo.CommitLedgerTransaction(ctx,
		&model.Transaction{Reference: uuid.NewString(), Type: model.TxTransfer, Category: "Transfer",
			Amount: dec("50"), Currency: "USD", WalletID: src.ID, DestWalletID: &dst.ID},
		[]model.LedgerEntry{
			{WalletID: dst.ID, Debit: dec("50")},
			{WalletID: src.ID, Credit: dec("50")},
		},
		[]model.BalanceChange{
			{WalletID: src.ID, Delta: dec("-50"), Floor: model.FloorZero()},
			{WalletID: dst.ID, Delta: dec("50")},
		},
	)
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	// Rolled back: no balances moved, no entries written.
	srcAfter, err := repo.GetAccount(ctx, src.ID)
	require.NoError(t, err)
	assert.True(t, srcAfter.Balance.IsZero())

	debit, credit, err := repo.LedgerSums(ctx, dst.ID)
	require.NoError(t, err)
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestCommitLedgerTransactionUnknownAccount(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.CommitLedgerTransaction(ctx,
		&model.Transaction{Reference: uuid.NewString(), Type: model.TxIncome, Category: "Salary",
			Amount: dec("10"), Currency: "USD", WalletID: -1},
		[]model.LedgerEntry{{WalletID: -1, Debit: dec("10")}},
		[]model.BalanceChange{{WalletID: -1, Delta: dec("10")}},
	)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestDeactivateAccountHidesAccount(t *testing.T) {
	repo, ctx := setupRepo(t)

	acc := createAccount(t, ctx, repo, "Old", "USD", "Personal", "Unknown")
	require.NoError(t, repo.DeactivateAccount(ctx, acc.ID))

	_, err := repo.GetAccount(ctx, acc.ID)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
	assert.ErrorIs(t, repo.DeactivateAccount(ctx, acc.ID), model.ErrAccountNotFound)
}
