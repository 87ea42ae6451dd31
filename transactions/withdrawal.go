package transactions

import (
	"payments/currency"
	"payments/ledger"
)

type Withdrawal struct {
	ClientID ledger.ClientID
	TxID     ledger.TxID
	Amount   currency.Currency
}

func (t Withdrawal) Client() ledger.ClientID { return t.ClientID }

func (t Withdrawal) Type() string { return TypeWithdrawal }

func (t Withdrawal) Apply(acc *ledger.Account) error {
	return acc.Withdraw(t.TxID, t.Amount)
}
