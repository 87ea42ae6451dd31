// Package ledger holds per-client balances and enforces the dispute protocol.
package ledger

import (
	"fmt"
	"slices"

	"payments/currency"
)

type ClientID uint16

type TxID uint32

// LockPolicy decides which operations a locked account still accepts.
type LockPolicy int

const (
	// LockRejectAll makes a charged back account terminal.
	LockRejectAll LockPolicy = iota
	// LockRejectWithdrawals only stops money from leaving a charged back account.
	LockRejectWithdrawals
)

func (p LockPolicy) String() string {
	switch p {
	case LockRejectAll:
		return "all"
	case LockRejectWithdrawals:
		return "withdrawals"
	default:
		return fmt.Sprintf("LockPolicy(%d)", int(p))
	}
}

// ParseLockPolicy accepts the names produced by LockPolicy.String.
func ParseLockPolicy(s string) (LockPolicy, error) {
	switch s {
	case "all":
		return LockRejectAll, nil
	case "withdrawals":
		return LockRejectWithdrawals, nil
	default:
		return 0, fmt.Errorf("unknown lock policy %q", s)
	}
}

type entry struct {
	tx     TxID
	amount currency.Currency
}

// Account is the state of a single client.
//
// Deposits and withdrawals are far more common than disputes, so both the history and
// the open disputes are plain slices: appends are cheap and the occasional dispute pays
// for a linear scan. Lookups return the first entry with a matching id.
//
// available + held + chargedBack always equals the sum of history amounts, and held
// equals the sum of open dispute amounts.
type Account struct {
	available   currency.Currency
	held        currency.Currency
	chargedBack currency.Currency
	locked      bool
	policy      LockPolicy

	history  []entry
	disputes []entry
}

func NewAccount(policy LockPolicy) *Account {
	return &Account{policy: policy}
}

// Deposit credits amount to the available funds. The sign of amount is not checked.
func (a *Account) Deposit(tx TxID, amount currency.Currency) error {
	if a.locked && a.policy == LockRejectAll {
		return fmt.Errorf("deposit %d: %w", tx, ErrAccountLocked)
	}
	available, err := a.available.Add(amount)
	if err != nil {
		return fmt.Errorf("deposit %d: %w", tx, err)
	}

	a.available = available
	a.history = append(a.history, entry{tx: tx, amount: amount})
	return nil
}

// Withdraw debits amount from the available funds. Withdrawing the entire available
// balance is refused.
func (a *Account) Withdraw(tx TxID, amount currency.Currency) error {
	if a.locked {
		return fmt.Errorf("withdraw %d: %w", tx, ErrAccountLocked)
	}
	if a.available.Cmp(amount) <= 0 {
		return fmt.Errorf("withdraw %d of %s with %s available: %w", tx, amount, a.available, ErrInsufficientFunds)
	}
	debit, err := amount.Neg()
	if err != nil {
		return fmt.Errorf("withdraw %d: %w", tx, err)
	}
	available, err := a.available.Sub(amount)
	if err != nil {
		return fmt.Errorf("withdraw %d: %w", tx, err)
	}

	a.available = available
	a.history = append(a.history, entry{tx: tx, amount: debit})
	return nil
}

// Dispute moves the amount of a past deposit or withdrawal from available to held.
// For a withdrawal the stored amount is negative, so available grows and held shrinks.
func (a *Account) Dispute(tx TxID) error {
	if a.locked && a.policy == LockRejectAll {
		return fmt.Errorf("dispute %d: %w", tx, ErrAccountLocked)
	}
	i := find(a.history, tx)
	if i < 0 {
		return fmt.Errorf("dispute %d: %w", tx, ErrUnknownTransaction)
	}
	amount := a.history[i].amount

	available, err := a.available.Sub(amount)
	if err != nil {
		return fmt.Errorf("dispute %d: %w", tx, err)
	}
	held, err := a.held.Add(amount)
	if err != nil {
		return fmt.Errorf("dispute %d: %w", tx, err)
	}

	a.available = available
	a.held = held
	a.disputes = append(a.disputes, entry{tx: tx, amount: amount})
	return nil
}

// Resolve settles an open dispute in the client's favour.
func (a *Account) Resolve(tx TxID) error {
	if a.locked && a.policy == LockRejectAll {
		return fmt.Errorf("resolve %d: %w", tx, ErrAccountLocked)
	}
	i := find(a.disputes, tx)
	if i < 0 {
		return fmt.Errorf("resolve %d: %w", tx, ErrUnknownTransaction)
	}
	amount := a.disputes[i].amount

	available, err := a.available.Add(amount)
	if err != nil {
		return fmt.Errorf("resolve %d: %w", tx, err)
	}
	held, err := a.held.Sub(amount)
	if err != nil {
		return fmt.Errorf("resolve %d: %w", tx, err)
	}

	a.available = available
	a.held = held
	a.disputes = slices.Delete(a.disputes, i, i+1)
	return nil
}

// Chargeback settles an open dispute against the client: the held amount leaves the
// account and the account is locked.
func (a *Account) Chargeback(tx TxID) error {
	if a.locked && a.policy == LockRejectAll {
		return fmt.Errorf("chargeback %d: %w", tx, ErrAccountLocked)
	}
	i := find(a.disputes, tx)
	if i < 0 {
		return fmt.Errorf("chargeback %d: %w", tx, ErrUnknownTransaction)
	}
	amount := a.disputes[i].amount

	held, err := a.held.Sub(amount)
	if err != nil {
		return fmt.Errorf("chargeback %d: %w", tx, err)
	}
	chargedBack, err := a.chargedBack.Add(amount)
	if err != nil {
		return fmt.Errorf("chargeback %d: %w", tx, err)
	}

	a.held = held
	a.chargedBack = chargedBack
	a.locked = true
	a.disputes = slices.Delete(a.disputes, i, i+1)
	return nil
}

func find(entries []entry, tx TxID) int {
	for i := range entries {
		if entries[i].tx == tx {
			return i
		}
	}
	return -1
}

func (a *Account) Available() currency.Currency {
	return a.available
}

func (a *Account) Held() currency.Currency {
	return a.held
}

// Total is available + held, clamped to the representable range.
func (a *Account) Total() currency.Currency {
	return a.available.SaturatingAdd(a.held)
}

// ChargedBack is the sum of amounts removed by chargebacks.
func (a *Account) ChargedBack() currency.Currency {
	return a.chargedBack
}

func (a *Account) Locked() bool {
	return a.locked
}

// Exists reports whether the account has accepted at least one deposit or withdrawal.
func (a *Account) Exists() bool {
	return len(a.history) > 0
}

// OpenDisputes is the number of disputes awaiting a resolve or chargeback.
func (a *Account) OpenDisputes() int {
	return len(a.disputes)
}

// Statement is the externally visible state of one client.
type Statement struct {
	Client    ClientID
	Available currency.Currency
	Held      currency.Currency
	Total     currency.Currency
	Locked    bool
}

func (a *Account) Statement(client ClientID) Statement {
	return Statement{
		Client:    client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}
