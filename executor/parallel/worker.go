package parallel

import (
	"payments/executor"
	"payments/ledger"
)

// executionWorker applies the transactions of the clients that hash to its queue.
// No other worker touches those accounts, so the table needs no locking.
type executionWorker struct {
	table *ledger.Table
	opts  executor.Options
}

type indexedTransaction struct {
	// seq is the position in the source, used to merge reports back into source order
	seq         int
	transaction executor.Transaction
}

func (w executionWorker) execute(transactions <-chan indexedTransaction) executor.Report {
	var report executor.Report
	for tx := range transactions {
		w.opts.Apply(w.table, tx.seq, tx.transaction, &report)
	}
	return report
}
