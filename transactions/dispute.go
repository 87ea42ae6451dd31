package transactions

import "payments/ledger"

// Dispute refers to an earlier deposit or withdrawal of the same client.
type Dispute struct {
	ClientID ledger.ClientID
	TxID     ledger.TxID
}

func (t Dispute) Client() ledger.ClientID { return t.ClientID }

func (t Dispute) Type() string { return TypeDispute }

func (t Dispute) Apply(acc *ledger.Account) error {
	return acc.Dispute(t.TxID)
}

// Resolve and Chargeback refer to the transaction under dispute, not to the dispute record.
type Resolve struct {
	ClientID ledger.ClientID
	TxID     ledger.TxID
}

func (t Resolve) Client() ledger.ClientID { return t.ClientID }

func (t Resolve) Type() string { return TypeResolve }

func (t Resolve) Apply(acc *ledger.Account) error {
	return acc.Resolve(t.TxID)
}

type Chargeback struct {
	ClientID ledger.ClientID
	TxID     ledger.TxID
}

func (t Chargeback) Client() ledger.ClientID { return t.ClientID }

func (t Chargeback) Type() string { return TypeChargeback }

func (t Chargeback) Apply(acc *ledger.Account) error {
	return acc.Chargeback(t.TxID)
}
