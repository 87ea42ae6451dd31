package executor

import (
	"fmt"
	"slices"
)

// Rejection records a transaction the ledger refused.
type Rejection struct {
	// Seq is the zero based position of the transaction in the source.
	Seq         int
	Transaction Transaction
	Err         error
}

func (r Rejection) String() string {
	return fmt.Sprintf("Rejection{seq:%d,type:%s,client:%d,err:%v}", r.Seq, r.Transaction.Type(), r.Transaction.Client(), r.Err)
}

type Report struct {
	// Applied is the number of transactions that changed the ledger.
	Applied  int
	Rejected []Rejection
}

func (r *Report) Reject(seq int, tx Transaction, err error) {
	r.Rejected = append(r.Rejected, Rejection{Seq: seq, Transaction: tx, Err: err})
}

func (r Report) Total() int {
	return r.Applied + len(r.Rejected)
}

// Merge combines reports of disjoint parts of one source, keeping rejections in source order.
func Merge(reports ...Report) Report {
	var merged Report
	for _, r := range reports {
		merged.Applied += r.Applied
		merged.Rejected = append(merged.Rejected, r.Rejected...)
	}
	slices.SortFunc(merged.Rejected, func(a, b Rejection) int {
		return a.Seq - b.Seq
	})
	return merged
}
