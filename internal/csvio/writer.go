package csvio

import (
	"bufio"
	"fmt"
	"io"

	"payments/ledger"
)

const statementHeader = "client, available, held, total, locked"

// WriteStatements renders one row per statement under a header row.
func WriteStatements(w io.Writer, statements []ledger.Statement) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, statementHeader)
	for _, s := range statements {
		fmt.Fprintf(bw, "%d, %s, %s, %s, %t\n", s.Client, s.Available, s.Held, s.Total, s.Locked)
	}
	return bw.Flush()
}
