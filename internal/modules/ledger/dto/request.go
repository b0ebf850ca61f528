package dto

import "github.com/shopspring/decimal"

type CreateAccountInput struct {
	Name     string          `json:"name" validate:"required"`
	Kind     string          `json:"kind" validate:"required,oneof=bank ewallet cash exchange wallet"`
	Currency string          `json:"currency" validate:"required,uppercase"`
	Category string          `json:"category" validate:"omitempty,oneof=TradFi CeFi DeFi Personal"`
	Network  string          `json:"network" validate:"omitempty"`
	Balance  decimal.Decimal `json:"balance"`
}

type TransferInput struct {
	SourceID  int64           `json:"source_id" validate:"required,gt=0"`
	DestID    int64           `json:"dest_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Reference string          `json:"reference" validate:"omitempty,uuid4"`
}

type TradeInput struct {
	Direction string           `json:"direction" validate:"required,oneof=buy sell"`
	PayID     int64            `json:"pay_id" validate:"required,gt=0"`
	ReceiveID int64            `json:"receive_id" validate:"required,gt=0"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Reference string           `json:"reference" validate:"omitempty,uuid4"`
}

type RecordInput struct {
	AccountID int64           `json:"account_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category" validate:"required"`
	Note      string          `json:"note"`
	Date      string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type CashflowInput struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
