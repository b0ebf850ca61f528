package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fledger/internal/modules/ledger/model"
)

// LedgerRepository is the only component that touches persistent storage.
// Writes go through dbWrite, plain reads may use the read replica.
type LedgerRepository struct {
	dbWrite *gorm.DB
	dbRead  *gorm.DB
}

func NewLedgerRepository(dbWrite *gorm.DB, dbRead *gorm.DB) *LedgerRepository {
	return &LedgerRepository{dbWrite: dbWrite, dbRead: dbRead}
}

// CommitLedgerTransaction atomically applies the balance changes, inserts the
// transaction record and inserts its ledger entries. Affected rows are locked
// FOR UPDATE in ascending wallet id order, and each change's floor is
// re-checked under the lock so a concurrent debit cannot overdraw an account.
// Either everything commits or nothing does.
func (r *LedgerRepository) CommitLedgerTransaction(
	ctx context.Context,
	txRec *model.Transaction,
	entries []model.LedgerEntry,
	changes []model.BalanceChange,
) (int64, error) {
	ordered := make([]model.BalanceChange, len(changes))
	copy(ordered, changes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].WalletID < ordered[j].WalletID })

	var txID int64
	err := r.dbWrite.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range ordered {
			var balance decimal.Decimal
			err := tx.Raw(
				`SELECT balance FROM accounts WHERE id = ? AND is_active = TRUE FOR UPDATE`,
				ch.WalletID,
			).Row().Scan(&balance)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
					return model.ErrAccountNotFound
				}
				return err
			}

			next := balance.Add(ch.Delta)
			if ch.Floor != nil && next.LessThan(*ch.Floor) {
				return model.ErrInsufficientFunds
			}

			if err := tx.Exec(
				`UPDATE accounts SET balance = ? WHERE id = ?`,
				next.String(), ch.WalletID,
			).Error; err != nil {
				return err
			}
		}

		if txRec.Date.IsZero() {
			txRec.Date = time.Now().UTC()
		}
		err := tx.Raw(`
			INSERT INTO transactions
				(reference, date, type, category, description, amount, currency,
				 wallet_id, dest_wallet_id, asset_symbol, quantity, price_per_unit, fee)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			txRec.Reference, txRec.Date, txRec.Type, txRec.Category, txRec.Description,
			txRec.Amount.String(), txRec.Currency, txRec.WalletID, txRec.DestWalletID,
			txRec.AssetSymbol, decimalArg(txRec.Quantity), decimalArg(txRec.PricePerUnit),
			txRec.Fee.String(),
		).Row().Scan(&txID)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if err := tx.Exec(`
				INSERT INTO ledger (transaction_id, wallet_id, debit, credit)
				VALUES (?, ?, ?, ?)`,
				txID, e.WalletID, e.Debit.String(), e.Credit.String(),
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) || errors.Is(err, model.ErrInsufficientFunds) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	txRec.ID = txID
	return txID, nil
}

// GetAccount fetches a single active account.
func (r *LedgerRepository) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	var acc model.Account
	err := r.dbRead.WithContext(ctx).
		Raw(`SELECT * FROM accounts WHERE id = ? AND is_active = TRUE`, id).
		Scan(&acc).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	if acc.ID == 0 {
		return nil, model.ErrAccountNotFound
	}
	return &acc, nil
}

// ListActiveAccounts returns active accounts ordered for grouped display.
func (r *LedgerRepository) ListActiveAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.dbRead.WithContext(ctx).
		Raw(`SELECT * FROM accounts WHERE is_active = TRUE ORDER BY category, network, name`).
		Scan(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return accounts, nil
}

// CreateAccount inserts a new account row. Balance starts at zero; opening
// balances are booked by the caller as a regular transaction.
func (r *LedgerRepository) CreateAccount(ctx context.Context, acc *model.Account) error {
	err := r.dbWrite.WithContext(ctx).Raw(`
		INSERT INTO accounts (name, kind, balance, currency, category, network)
		VALUES (?, ?, 0, ?, ?, ?)
		RETURNING id, created_at`,
		acc.Name, acc.Kind, acc.Currency, acc.Category, acc.Network,
	).Row().Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	acc.Balance = decimal.Zero
	acc.IsActive = true
	return nil
}

// DeactivateAccount soft-deletes an account, keeping its history.
func (r *LedgerRepository) DeactivateAccount(ctx context.Context, id int64) error {
	res := r.dbWrite.WithContext(ctx).
		Exec(`UPDATE accounts SET is_active = FALSE WHERE id = ? AND is_active = TRUE`, id)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// CashflowSummary sums income and expense transactions inside [from, to).
func (r *LedgerRepository) CashflowSummary(ctx context.Context, from, to time.Time) (income, expense decimal.Decimal, err error) {
	rows, err := r.dbRead.WithContext(ctx).Raw(`
		SELECT type, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE date >= ? AND date < ? AND type IN ('income', 'expense')
		GROUP BY type`,
		from, to,
	).Rows()
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	defer rows.Close()

	for rows.Next() {
		var txType string
		var total decimal.Decimal
		if err := rows.Scan(&txType, &total); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", model.ErrStorage, err)
		}
		switch txType {
		case model.TxIncome:
			income = total
		case model.TxExpense:
			expense = total
		}
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return income, expense, nil
}

// LedgerSums returns the committed debit and credit totals of one account,
// used to audit the balance-equals-ledger-sum invariant.
func (r *LedgerRepository) LedgerSums(ctx context.Context, walletID int64) (debit, credit decimal.Decimal, err error) {
	row := r.dbRead.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger WHERE wallet_id = ?`,
		walletID,
	).Row()
	if err := row.Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return debit, credit, nil
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
