package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/model"
	"fledger/internal/modules/ledger/oracle"
	"fledger/internal/modules/ledger/policy"
)

// TradeUsecase executes buy/sell flows between a paying and a receiving
// account. The risk asset is priced through the oracle unless the caller
// supplies an explicit price.
//
// Convention: quantity always counts units of the risk asset.
//   - buy:  receive = quantity,          payment = quantity * price
//   - sell: payment = quantity,          receive = quantity * price
type TradeUsecase struct {
	store  Store
	prices PriceSource
}

func NewTradeUsecase(store Store, prices PriceSource) *TradeUsecase {
	return &TradeUsecase{store: store, prices: prices}
}

func (u *TradeUsecase) Trade(ctx context.Context, in dto.TradeInput) (*dto.TradeReceipt, error) {
	if in.Direction != model.TxBuy && in.Direction != model.TxSell {
		return nil, fmt.Errorf("%w: direction must be buy or sell", model.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", model.ErrInvalidInput)
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", model.ErrInvalidInput)
	}
	if in.PayID == in.ReceiveID {
		return nil, fmt.Errorf("%w: pay and receive are the same account", model.ErrInvalidInput)
	}

	pay, err := u.store.GetAccount(ctx, in.PayID)
	if err != nil {
		return nil, err
	}
	recv, err := u.store.GetAccount(ctx, in.ReceiveID)
	if err != nil {
		return nil, err
	}

	// The risk asset is the non-quote side of the trade.
	assetSymbol := recv.Currency
	if in.Direction == model.TxSell {
		assetSymbol = pay.Currency
	}

	var price decimal.Decimal
	if in.Price != nil {
		price = *in.Price
	} else {
		price, err = u.prices.GetPrice(ctx, assetSymbol)
		if err != nil {
			if errors.Is(err, oracle.ErrPriceNotFound) {
				return nil, fmt.Errorf("%w: %s", model.ErrPriceUnavailable, assetSymbol)
			}
			return nil, err
		}
	}

	var paymentAmount, receiveAmount decimal.Decimal
	if in.Direction == model.TxBuy {
		receiveAmount = in.Quantity
		paymentAmount = in.Quantity.Mul(price)
	} else {
		paymentAmount = in.Quantity
		receiveAmount = in.Quantity.Mul(price)
	}

	if pay.Balance.LessThan(paymentAmount) {
		return nil, fmt.Errorf("%w: %s has %s %s, need %s", model.ErrInsufficientFunds,
			pay.Name, pay.Currency, pay.Balance, paymentAmount)
	}

	if ok, reason := policy.Validate(classify(pay), classify(recv)); !ok {
		return nil, &model.PolicyError{Reason: reason}
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	txRec := &model.Transaction{
		Reference:    reference,
		Type:         in.Direction,
		Category:     "Trade",
		Description:  fmt.Sprintf("%s %s %s @ %s", in.Direction, in.Quantity, assetSymbol, price),
		Amount:       paymentAmount,
		Currency:     pay.Currency,
		WalletID:     pay.ID,
		DestWalletID: &recv.ID,
		AssetSymbol:  &assetSymbol,
		Quantity:     &in.Quantity,
		PricePerUnit: &price,
	}
	entries := []model.LedgerEntry{
		{WalletID: recv.ID, Debit: receiveAmount},
		{WalletID: pay.ID, Credit: paymentAmount},
	}
	changes := []model.BalanceChange{
		{WalletID: pay.ID, Delta: paymentAmount.Neg(), Floor: model.FloorZero()},
		{WalletID: recv.ID, Delta: receiveAmount},
	}

	txID, err := u.store.CommitLedgerTransaction(ctx, txRec, entries, changes)
	if err != nil {
		return nil, err
	}

	return &dto.TradeReceipt{
		TransactionID: txID,
		Reference:     reference,
		Direction:     in.Direction,
		AssetSymbol:   assetSymbol,
		Quantity:      in.Quantity,
		Price:         price,
		PayID:         pay.ID,
		ReceiveID:     recv.ID,
		PaymentAmount: paymentAmount,
		ReceiveAmount: receiveAmount,
	}, nil
}
