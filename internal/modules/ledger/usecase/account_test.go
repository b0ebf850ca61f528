package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/model"
)

func TestCreateAccountWithOpeningBalance(t *testing.T) {
	store := newFakeStore()
	u := NewAccountUsecase(store)

	acc, err := u.CreateAccount(context.Background(), dto.CreateAccountInput{
		Name: "Main Bank", Kind: "bank", Currency: "USD",
		Category: "TradFi", Network: "BANK", Balance: dec("1000"),
	})
	require.NoError(t, err)

	assert.True(t, store.accounts[acc.ID].Balance.Equal(dec("1000")))

	// Opening balance arrives as a booked income, not a raw balance write.
	require.Len(t, store.txs, 1)
	assert.Equal(t, model.TxIncome, store.txs[0].Type)
	assert.Equal(t, "Opening", store.txs[0].Category)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(store.ledgerSum(acc.ID)))
}

func TestCreateAccountDefaults(t *testing.T) {
	store := newFakeStore()
	u := NewAccountUsecase(store)

	acc, err := u.CreateAccount(context.Background(), dto.CreateAccountInput{
		Name: "Pocket", Kind: "cash", Currency: "IDR",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryPersonal, acc.Category)
	assert.Equal(t, "Unknown", acc.Network)
	assert.True(t, acc.Balance.IsZero())
	assert.Empty(t, store.txs)
}

func TestRecordIncomeAndExpense(t *testing.T) {
	store := newFakeStore(account(1, "Bank", "bank", "USD", "TradFi", "BANK", "0"))
	u := NewAccountUsecase(store)

	_, err := u.RecordIncome(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("500"), Category: "Salary",
	})
	require.NoError(t, err)
	assert.True(t, store.accounts[1].Balance.Equal(dec("500")))

	receipt, err := u.RecordExpense(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("120.50"), Category: "Groceries", Note: "weekly",
	})
	require.NoError(t, err)
	assert.True(t, store.accounts[1].Balance.Equal(dec("379.5")))
	assert.Equal(t, model.TxExpense, receipt.Type)

	// One entry per booking, debit for income and credit for expense.
	require.Len(t, store.entries, 2)
	assert.True(t, store.entries[0].Debit.Equal(dec("500")))
	assert.True(t, store.entries[1].Credit.Equal(dec("120.50")))
	assert.True(t, store.accounts[1].Balance.Equal(store.ledgerSum(1)))
}

func TestRecordExpenseOverdraftDenied(t *testing.T) {
	store := newFakeStore(account(1, "Bank", "bank", "USD", "TradFi", "BANK", "10"))
	u := NewAccountUsecase(store)

	_, err := u.RecordExpense(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("11"), Category: "Oops",
	})
	require.ErrorIs(t, err, model.ErrInsufficientFunds)
	assert.True(t, store.accounts[1].Balance.Equal(dec("10")))
	assert.Empty(t, store.txs)
}

func TestRecordWithExplicitDate(t *testing.T) {
	store := newFakeStore(account(1, "Bank", "bank", "USD", "TradFi", "BANK", "0"))
	u := NewAccountUsecase(store)

	_, err := u.RecordIncome(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("5"), Category: "Refund", Date: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", store.txs[0].Date.Format("2006-01-02"))

	_, err = u.RecordIncome(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("5"), Category: "Refund", Date: "01/07/2025",
	})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAccountDetailReconciles(t *testing.T) {
	store := newFakeStore(account(1, "Bank", "bank", "USD", "TradFi", "BANK", "0"))
	u := NewAccountUsecase(store)

	_, err := u.RecordIncome(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("300"), Category: "Salary",
	})
	require.NoError(t, err)
	_, err = u.RecordExpense(context.Background(), dto.RecordInput{
		AccountID: 1, Amount: dec("80"), Category: "Rent",
	})
	require.NoError(t, err)

	detail, err := u.AccountDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, detail.Debit.Equal(dec("300")))
	assert.True(t, detail.Credit.Equal(dec("80")))
	assert.True(t, detail.Reconciled)

	// A balance written outside the ledger shows up as unreconciled.
	store.accounts[1].Balance = dec("999")
	detail, err = u.AccountDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, detail.Reconciled)

	_, err = u.AccountDetail(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestDeactivateAccountHidesFromReads(t *testing.T) {
	store := newFakeStore(account(1, "Old Bank", "bank", "USD", "TradFi", "BANK", "5"))
	u := NewAccountUsecase(store)

	require.NoError(t, u.DeactivateAccount(context.Background(), 1))

	_, err := store.GetAccount(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	assert.ErrorIs(t, u.DeactivateAccount(context.Background(), 1), model.ErrAccountNotFound)
}

func TestCashflow(t *testing.T) {
	store := newFakeStore()
	store.income = dec("900")
	store.expense = dec("350")
	u := NewAccountUsecase(store)

	cf, err := u.Cashflow(context.Background(), dto.CashflowInput{From: "2025-08-01", To: "2025-08-31"})
	require.NoError(t, err)
	assert.True(t, cf.Income.Equal(dec("900")))
	assert.True(t, cf.Expense.Equal(dec("350")))
	assert.True(t, cf.Net.Equal(dec("550")))
	assert.Equal(t, "2025-08-01", cf.From)
	assert.Equal(t, "2025-08-31", cf.To)

	_, err = u.Cashflow(context.Background(), dto.CashflowInput{From: "bad"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
