package ledger

import (
	"errors"

	"payments/currency"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrAccountLocked      = errors.New("account locked")
)

// Reason maps a rejection error to a stable label, e.g. for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, currency.ErrOverflow):
		return "overflow"
	default:
		return "other"
	}
}
