package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/model"
	"fledger/internal/modules/ledger/policy"
)

// TransferUsecase moves funds between two same-currency accounts. The fee is
// deducted from the source on top of the amount and retained by the system.
type TransferUsecase struct {
	store Store
}

func NewTransferUsecase(store Store) *TransferUsecase {
	return &TransferUsecase{store: store}
}

func (u *TransferUsecase) Transfer(ctx context.Context, in dto.TransferInput) (*dto.TransferReceipt, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidInput)
	}
	if in.Fee.IsNegative() {
		return nil, fmt.Errorf("%w: fee cannot be negative", model.ErrInvalidInput)
	}
	if in.SourceID == in.DestID {
		return nil, fmt.Errorf("%w: source and destination are the same account", model.ErrInvalidInput)
	}

	src, err := u.store.GetAccount(ctx, in.SourceID)
	if err != nil {
		return nil, err
	}
	dst, err := u.store.GetAccount(ctx, in.DestID)
	if err != nil {
		return nil, err
	}

	if src.Currency != dst.Currency {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrCurrencyMismatch, src.Currency, dst.Currency)
	}

	total := in.Amount.Add(in.Fee)
	if src.Balance.LessThan(total) {
		return nil, fmt.Errorf("%w: %s has %s %s, need %s", model.ErrInsufficientFunds,
			src.Name, src.Currency, src.Balance, total)
	}

	if ok, reason := policy.Validate(classify(src), classify(dst)); !ok {
		return nil, &model.PolicyError{Reason: reason}
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	txRec := &model.Transaction{
		Reference:    reference,
		Type:         model.TxTransfer,
		Category:     "Transfer",
		Description:  fmt.Sprintf("Transfer from %s to %s", src.Name, dst.Name),
		Amount:       in.Amount,
		Currency:     src.Currency,
		WalletID:     src.ID,
		DestWalletID: &dst.ID,
		Fee:          in.Fee,
	}
	entries := []model.LedgerEntry{
		{WalletID: dst.ID, Debit: in.Amount},
		{WalletID: src.ID, Credit: total},
	}
	changes := []model.BalanceChange{
		{WalletID: src.ID, Delta: total.Neg(), Floor: model.FloorZero()},
		{WalletID: dst.ID, Delta: in.Amount},
	}

	txID, err := u.store.CommitLedgerTransaction(ctx, txRec, entries, changes)
	if err != nil {
		return nil, err
	}

	return &dto.TransferReceipt{
		TransactionID: txID,
		Reference:     reference,
		SourceID:      src.ID,
		DestID:        dst.ID,
		Amount:        in.Amount,
		Fee:           in.Fee,
		Currency:      src.Currency,
	}, nil
}

func classify(acc *model.Account) policy.Classification {
	return policy.Classification{Category: acc.Category, Network: acc.Network}
}
