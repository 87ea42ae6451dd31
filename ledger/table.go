package ledger

import "math"

// Table maps every possible client id to its account.
//
// Client ids are uint16, so the table is a dense slice over the whole id range rather
// than a map. Slots are created on first use. Distinct slots may be used from distinct
// goroutines without locking, which is what the parallel executor relies on.
type Table struct {
	accounts []*Account
	policy   LockPolicy
}

type Option func(*Table)

func WithLockPolicy(policy LockPolicy) Option {
	return func(t *Table) {
		t.policy = policy
	}
}

func NewTable(opts ...Option) *Table {
	t := &Table{accounts: make([]*Account, math.MaxUint16+1)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Account returns the account of client, creating it on first reference.
func (t *Table) Account(client ClientID) *Account {
	acc := t.accounts[client]
	if acc == nil {
		acc = NewAccount(t.policy)
		t.accounts[client] = acc
	}
	return acc
}

// Lookup returns the account of client without creating it.
func (t *Table) Lookup(client ClientID) (*Account, bool) {
	acc := t.accounts[client]
	return acc, acc != nil
}

func (t *Table) LockPolicy() LockPolicy {
	return t.policy
}

// Statements lists every client with at least one deposit or withdrawal, by ascending id.
func (t *Table) Statements() []Statement {
	var statements []Statement
	for id, acc := range t.accounts {
		if acc != nil && acc.Exists() {
			statements = append(statements, acc.Statement(ClientID(id)))
		}
	}
	return statements
}
