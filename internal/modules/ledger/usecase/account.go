package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/model"
)

// AccountUsecase covers account lifecycle and single-sided bookings
// (income/expense) plus the cash-flow report.
type AccountUsecase struct {
	store Store
}

func NewAccountUsecase(store Store) *AccountUsecase {
	return &AccountUsecase{store: store}
}

// CreateAccount creates the account with a zero balance and, when an initial
// balance is given, books it as an opening income transaction so the balance
// always equals its ledger sum.
func (u *AccountUsecase) CreateAccount(ctx context.Context, in dto.CreateAccountInput) (*model.Account, error) {
	if in.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", model.ErrInvalidInput)
	}

	acc := &model.Account{
		Name:     in.Name,
		Kind:     in.Kind,
		Currency: in.Currency,
		Category: in.Category,
		Network:  in.Network,
	}
	if acc.Category == "" {
		acc.Category = model.CategoryPersonal
	}
	if acc.Network == "" {
		acc.Network = "Unknown"
	}
	if err := u.store.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	if in.Balance.IsPositive() {
		txRec := &model.Transaction{
			Reference:   uuid.NewString(),
			Type:        model.TxIncome,
			Category:    "Opening",
			Description: fmt.Sprintf("Opening balance for %s", acc.Name),
			Amount:      in.Balance,
			Currency:    acc.Currency,
			WalletID:    acc.ID,
		}
		entries := []model.LedgerEntry{{WalletID: acc.ID, Debit: in.Balance}}
		changes := []model.BalanceChange{{WalletID: acc.ID, Delta: in.Balance}}
		if _, err := u.store.CommitLedgerTransaction(ctx, txRec, entries, changes); err != nil {
			return nil, err
		}
		acc.Balance = in.Balance
	}
	return acc, nil
}

// ListAccounts returns all active accounts, ordered category > network > name.
func (u *AccountUsecase) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return u.store.ListActiveAccounts(ctx)
}

// AccountDetail returns one account together with its ledger debit and credit
// sums. Reconciled is false when balance != debit - credit, which means the
// ledger and the balance column have drifted and need investigation.
func (u *AccountUsecase) AccountDetail(ctx context.Context, id int64) (*dto.AccountDetail, error) {
	acc, err := u.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	debit, credit, err := u.store.LedgerSums(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AccountDetail{
		Account:    *acc,
		Debit:      debit,
		Credit:     credit,
		Reconciled: acc.Balance.Equal(debit.Sub(credit)),
	}, nil
}

// DeactivateAccount soft-deletes an account; its history stays queryable.
func (u *AccountUsecase) DeactivateAccount(ctx context.Context, id int64) error {
	return u.store.DeactivateAccount(ctx, id)
}

// RecordIncome books an income: one transaction, one debit entry, balance up.
func (u *AccountUsecase) RecordIncome(ctx context.Context, in dto.RecordInput) (*dto.RecordReceipt, error) {
	return u.record(ctx, model.TxIncome, in)
}

// RecordExpense books an expense: one transaction, one credit entry, balance
// down. The balance may not drop below zero.
func (u *AccountUsecase) RecordExpense(ctx context.Context, in dto.RecordInput) (*dto.RecordReceipt, error) {
	return u.record(ctx, model.TxExpense, in)
}

func (u *AccountUsecase) record(ctx context.Context, txType string, in dto.RecordInput) (*dto.RecordReceipt, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidInput)
	}

	acc, err := u.store.GetAccount(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrInvalidInput)
		}
		date = parsed
	}

	txRec := &model.Transaction{
		Reference:   uuid.NewString(),
		Date:        date,
		Type:        txType,
		Category:    in.Category,
		Description: in.Note,
		Amount:      in.Amount,
		Currency:    acc.Currency,
		WalletID:    acc.ID,
	}

	var entries []model.LedgerEntry
	var changes []model.BalanceChange
	if txType == model.TxIncome {
		entries = []model.LedgerEntry{{WalletID: acc.ID, Debit: in.Amount}}
		changes = []model.BalanceChange{{WalletID: acc.ID, Delta: in.Amount}}
	} else {
		if acc.Balance.LessThan(in.Amount) {
			return nil, fmt.Errorf("%w: %s has %s %s, need %s", model.ErrInsufficientFunds,
				acc.Name, acc.Currency, acc.Balance, in.Amount)
		}
		entries = []model.LedgerEntry{{WalletID: acc.ID, Credit: in.Amount}}
		changes = []model.BalanceChange{{WalletID: acc.ID, Delta: in.Amount.Neg(), Floor: model.FloorZero()}}
	}

	txID, err := u.store.CommitLedgerTransaction(ctx, txRec, entries, changes)
	if err != nil {
		return nil, err
	}

	return &dto.RecordReceipt{
		TransactionID: txID,
		Type:          txType,
		AccountID:     acc.ID,
		Amount:        in.Amount,
		Category:      in.Category,
	}, nil
}

// Cashflow sums income vs expense transactions between from and to. Empty
// bounds default to the current month so far.
func (u *AccountUsecase) Cashflow(ctx context.Context, in dto.CashflowInput) (*dto.Cashflow, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 0, 1)

	var err error
	if in.From != "" {
		if from, err = time.Parse("2006-01-02", in.From); err != nil {
			return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", model.ErrInvalidInput)
		}
	}
	if in.To != "" {
		if to, err = time.Parse("2006-01-02", in.To); err != nil {
			return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", model.ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1) // inclusive end date
	}

	income, expense, err := u.store.CashflowSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.Cashflow{
		From:    from.Format("2006-01-02"),
		To:      to.AddDate(0, 0, -1).Format("2006-01-02"),
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}, nil
}
