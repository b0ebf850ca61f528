package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account categories governing transfer legality.
const (
	CategoryTradFi   = "TradFi"
	CategoryCeFi     = "CeFi"
	CategoryDeFi     = "DeFi"
	CategoryPersonal = "Personal"
)

// Transaction types.
const (
	TxIncome   = "income"
	TxExpense  = "expense"
	TxBuy      = "buy"
	TxSell     = "sell"
	TxTransfer = "transfer"
)

// Account is a named balance-holding wallet. Balance carries up to 8 decimal
// places (NUMERIC(32,8)) and must always equal the sum of debit-credit over the
// account's ledger entries.
type Account struct {
	ID        int64           `json:"id" gorm:"column:id;primaryKey"`
	Name      string          `json:"name" gorm:"column:name;not null"`
	Kind      string          `json:"kind" gorm:"column:kind;not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"column:balance;type:numeric(32,8);not null;default:0"`
	Currency  string          `json:"currency" gorm:"column:currency;type:VARCHAR(16);not null;default:USD"`
	Category  string          `json:"category" gorm:"column:category;not null;default:Personal"`
	Network   string          `json:"network" gorm:"column:network;not null;default:Unknown"`
	IsActive  bool            `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (Account) TableName() string { return "accounts" }

// Transaction is an append-only record of a committed money movement. Amount is
// expressed in the source account's currency. AssetSymbol, Quantity and
// PricePerUnit are populated only for buy/sell transactions.
type Transaction struct {
	ID           int64            `json:"id" gorm:"column:id;primaryKey"`
	Reference    string           `json:"reference" gorm:"column:reference;type:uuid"`
	Date         time.Time        `json:"date" gorm:"column:date;type:timestamptz;not null;default:now()"`
	Type         string           `json:"type" gorm:"column:type;not null"`
	Category     string           `json:"category" gorm:"column:category;not null;default:Uncategorized"`
	Description  string           `json:"description" gorm:"column:description"`
	Amount       decimal.Decimal  `json:"amount" gorm:"column:amount;type:numeric(32,8);not null;default:0"`
	Currency     string           `json:"currency" gorm:"column:currency;type:VARCHAR(16);not null"`
	WalletID     int64            `json:"wallet_id" gorm:"column:wallet_id;not null"`
	DestWalletID *int64           `json:"dest_wallet_id,omitempty" gorm:"column:dest_wallet_id"`
	AssetSymbol  *string          `json:"asset_symbol,omitempty" gorm:"column:asset_symbol"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty" gorm:"column:quantity;type:numeric(32,8)"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty" gorm:"column:price_per_unit;type:numeric(32,8)"`
	Fee          decimal.Decimal  `json:"fee" gorm:"column:fee;type:numeric(32,8);not null;default:0"`
}

func (Transaction) TableName() string { return "transactions" }

// LedgerEntry is one side of a double-entry booking. Debit increases the
// account's asset balance, credit decreases it.
type LedgerEntry struct {
	ID            int64           `json:"id" gorm:"column:id;primaryKey"`
	TransactionID int64           `json:"transaction_id" gorm:"column:transaction_id;not null"`
	WalletID      int64           `json:"wallet_id" gorm:"column:wallet_id;not null"`
	Debit         decimal.Decimal `json:"debit" gorm:"column:debit;type:numeric(32,8);not null;default:0"`
	Credit        decimal.Decimal `json:"credit" gorm:"column:credit;type:numeric(32,8);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (LedgerEntry) TableName() string { return "ledger" }

// BalanceChange instructs the store to move an account's balance by Delta
// inside the same storage transaction that records the ledger rows. When Floor
// is non-nil the store re-checks, under the row lock, that the resulting
// balance does not drop below it.
type BalanceChange struct {
	WalletID int64
	Delta    decimal.Decimal
	Floor    *decimal.Decimal
}

// FloorZero is a convenience floor for overdraft protection.
func FloorZero() *decimal.Decimal {
	z := decimal.Zero
	return &z
}
