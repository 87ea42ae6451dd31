// Package transactions defines the records accepted by the ledger.
package transactions

import "payments/executor"

// Record type names, as they appear in the input.
const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
	TypeDispute    = "dispute"
	TypeResolve    = "resolve"
	TypeChargeback = "chargeback"
)

var (
	_ executor.Transaction = Deposit{}
	_ executor.Transaction = Withdrawal{}
	_ executor.Transaction = Dispute{}
	_ executor.Transaction = Resolve{}
	_ executor.Transaction = Chargeback{}
)
