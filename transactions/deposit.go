package transactions

import (
	"payments/currency"
	"payments/ledger"
)

type Deposit struct {
	ClientID ledger.ClientID
	TxID     ledger.TxID
	Amount   currency.Currency
}

func (t Deposit) Client() ledger.ClientID { return t.ClientID }

func (t Deposit) Type() string { return TypeDeposit }

func (t Deposit) Apply(acc *ledger.Account) error {
	return acc.Deposit(t.TxID, t.Amount)
}
