package executor

import (
	"context"
	"io"

	"payments/ledger"
)

type Transaction interface {
	// Client identifies the account the transaction applies to.
	Client() ledger.ClientID
	// Type is the record type name, e.g. "deposit".
	Type() string
	// Apply mutates the account or returns an error and leaves it untouched.
	Apply(*ledger.Account) error
}

// Source yields transactions in input order and returns io.EOF once exhausted.
type Source interface {
	Next() (Transaction, error)
}

type Block struct {
	Transactions []Transaction
}

// Source returns a Source that replays the block from the start.
func (b Block) Source() Source {
	return &blockSource{transactions: b.Transactions}
}

type blockSource struct {
	transactions []Transaction
	next         int
}

func (s *blockSource) Next() (Transaction, error) {
	if s.next >= len(s.transactions) {
		return nil, io.EOF
	}
	tx := s.transactions[s.next]
	s.next++
	return tx, nil
}

type Executor interface {
	// Execute applies every transaction of the source to the table. Rejected
	// transactions are reported and skipped; source errors and cancellation abort.
	Execute(context.Context, Source, *ledger.Table) (Report, error)
}
