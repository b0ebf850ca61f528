package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fledger/internal/modules/ledger/model"
	"fledger/internal/modules/ledger/oracle"
)

// fakeStore applies commit plans the same way the repository does: floors are
// checked before anything mutates, so a failed commit leaves no trace.
type fakeStore struct {
	accounts map[int64]*model.Account
	txs      []model.Transaction
	entries  []model.LedgerEntry
	nextAcc  int64
	nextTx   int64
	income   decimal.Decimal
	expense  decimal.Decimal
}

func newFakeStore(accounts ...*model.Account) *fakeStore {
	s := &fakeStore{accounts: make(map[int64]*model.Account), nextAcc: 1, nextTx: 1}
	for _, acc := range accounts {
		s.accounts[acc.ID] = acc
		if acc.ID >= s.nextAcc {
			s.nextAcc = acc.ID + 1
		}
	}
	return s
}

func (s *fakeStore) GetAccount(_ context.Context, id int64) (*model.Account, error) {
	acc, ok := s.accounts[id]
	if !ok || !acc.IsActive {
		return nil, model.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *fakeStore) ListActiveAccounts(_ context.Context) ([]model.Account, error) {
	var out []model.Account
	for _, acc := range s.accounts {
		if acc.IsActive {
			out = append(out, *acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) CreateAccount(_ context.Context, acc *model.Account) error {
	acc.ID = s.nextAcc
	s.nextAcc++
	acc.Balance = decimal.Zero
	acc.IsActive = true
	acc.CreatedAt = time.Now().UTC()
	cp := *acc
	s.accounts[acc.ID] = &cp
	return nil
}

func (s *fakeStore) DeactivateAccount(_ context.Context, id int64) error {
	acc, ok := s.accounts[id]
	if !ok || !acc.IsActive {
		return model.ErrAccountNotFound
	}
	acc.IsActive = false
	return nil
}

func (s *fakeStore) CashflowSummary(_ context.Context, _, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return s.income, s.expense, nil
}

func (s *fakeStore) CommitLedgerTransaction(_ context.Context, txRec *model.Transaction, entries []model.LedgerEntry, changes []model.BalanceChange) (int64, error) {
	for _, ch := range changes {
		acc, ok := s.accounts[ch.WalletID]
		if !ok || !acc.IsActive {
			return 0, model.ErrAccountNotFound
		}
		next := acc.Balance.Add(ch.Delta)
		if ch.Floor != nil && next.LessThan(*ch.Floor) {
			return 0, model.ErrInsufficientFunds
		}
	}
	for _, ch := range changes {
		acc := s.accounts[ch.WalletID]
		acc.Balance = acc.Balance.Add(ch.Delta)
	}

	txRec.ID = s.nextTx
	s.nextTx++
	if txRec.Date.IsZero() {
		txRec.Date = time.Now().UTC()
	}
	s.txs = append(s.txs, *txRec)
	for _, e := range entries {
		e.TransactionID = txRec.ID
		s.entries = append(s.entries, e)
	}
	return txRec.ID, nil
}

func (s *fakeStore) LedgerSums(_ context.Context, walletID int64) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range s.entries {
		if e.WalletID == walletID {
			debit = debit.Add(e.Debit)
			credit = credit.Add(e.Credit)
		}
	}
	return debit, credit, nil
}

// ledgerSum returns sum(debit)-sum(credit) for one account.
func (s *fakeStore) ledgerSum(walletID int64) decimal.Decimal {
	debit, credit, _ := s.LedgerSums(context.Background(), walletID)
	return debit.Sub(credit)
}

type fakePrices struct {
	prices map[string]decimal.Decimal
	err    error
}

func (p *fakePrices) GetPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	if p.err != nil {
		return decimal.Zero, p.err
	}
	price, ok := p.prices[symbol]
	if !ok {
		return decimal.Zero, oracle.ErrPriceNotFound
	}
	return price, nil
}

type fakeSettings struct {
	values map[string]string
}

func (s *fakeSettings) Get(_ context.Context, key string) (string, error) {
	return s.values[key], nil
}

func (s *fakeSettings) Set(_ context.Context, key, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func account(id int64, name, kind, currency, category, network, balance string) *model.Account {
	return &model.Account{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Currency: currency,
		Category: category,
		Network:  network,
		Balance:  dec(balance),
		IsActive: true,
	}
}
