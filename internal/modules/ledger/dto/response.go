package dto

import (
	"github.com/shopspring/decimal"

	"fledger/internal/modules/ledger/model"
)

// TransferReceipt is returned after a committed transfer.
type TransferReceipt struct {
	TransactionID int64           `json:"transaction_id"`
	Reference     string          `json:"reference"`
	SourceID      int64           `json:"source_id"`
	DestID        int64           `json:"dest_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Currency      string          `json:"currency"`
}

// TradeReceipt is returned after a committed buy or sell.
type TradeReceipt struct {
	TransactionID int64           `json:"transaction_id"`
	Reference     string          `json:"reference"`
	Direction     string          `json:"direction"`
	AssetSymbol   string          `json:"asset_symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PayID         int64           `json:"pay_id"`
	ReceiveID     int64           `json:"receive_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	ReceiveAmount decimal.Decimal `json:"receive_amount"`
}

// RecordReceipt is returned after an income or expense booking.
type RecordReceipt struct {
	TransactionID int64           `json:"transaction_id"`
	Type          string          `json:"type"`
	AccountID     int64           `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
}

// AccountDetail is one account with its ledger sums. Reconciled reports
// whether balance equals debit minus credit.
type AccountDetail struct {
	Account    model.Account   `json:"account"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Reconciled bool            `json:"reconciled"`
}

// AccountValue is one row of the net-worth breakdown.
type AccountValue struct {
	AccountID int64           `json:"account_id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Value     decimal.Decimal `json:"value"`
	NoPrice   bool            `json:"no_price,omitempty"`
}

// NetWorth is the valuation total plus per-account values grouped by kind.
type NetWorth struct {
	Currency  string                    `json:"currency"`
	Total     decimal.Decimal           `json:"total"`
	Breakdown map[string][]AccountValue `json:"breakdown"`
}

// Cashflow summarizes income vs expense over a date range.
type Cashflow struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
