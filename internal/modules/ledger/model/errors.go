package model

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced verbatim to the command layer. None of these
// ever leave a partial commit behind.
var (
	ErrAccountNotFound   = errors.New("account not found or inactive")
	ErrCurrencyMismatch  = errors.New("accounts hold different currencies, use a trade instead")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPriceUnavailable  = errors.New("no price available and none was supplied")
	ErrInvalidInput      = errors.New("invalid input")
)

// ErrStorage marks commit failures after the transaction has been rolled back.
// Callers may retry.
var ErrStorage = errors.New("storage failure")

// PolicyError reports a transfer rejected by the category/network rules.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("transfer denied by policy: %s", e.Reason)
}
