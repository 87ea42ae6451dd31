package csvio

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payments/currency"
	"payments/executor"
	"payments/ledger"
	"payments/transactions"
)

func readAll(t *testing.T, input string) ([]executor.Transaction, error) {
	t.Helper()

	r := NewReader(strings.NewReader(input))
	var txs []executor.Transaction
	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			return txs, nil
		}
		if err != nil {
			return txs, err
		}
		txs = append(txs, tx)
	}
}

func TestReader(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit,2,2,2.0
  withdrawal , 1, 4, 1.5
dispute, 1, 1,
resolve, 1, 1
chargeback, 2, 2,
deposit, 65535, 4294967295, -0.0001
`

	txs, err := readAll(t, input)

	require.NoError(t, err)
	assert.Equal(t, []executor.Transaction{
		transactions.Deposit{ClientID: 1, TxID: 1, Amount: currency.MustParse("1")},
		transactions.Deposit{ClientID: 2, TxID: 2, Amount: currency.MustParse("2")},
		transactions.Withdrawal{ClientID: 1, TxID: 4, Amount: currency.MustParse("1.5")},
		transactions.Dispute{ClientID: 1, TxID: 1},
		transactions.Resolve{ClientID: 1, TxID: 1},
		transactions.Chargeback{ClientID: 2, TxID: 2},
		transactions.Deposit{ClientID: 65535, TxID: 4294967295, Amount: currency.MustParse("-0.0001")},
	}, txs)
}

func TestReaderWithoutHeader(t *testing.T) {
	txs, err := readAll(t, "deposit, 3, 7, 2\n\n   \ndispute, 3, 7\n")

	require.NoError(t, err)
	assert.Equal(t, []executor.Transaction{
		transactions.Deposit{ClientID: 3, TxID: 7, Amount: currency.MustParse("2")},
		transactions.Dispute{ClientID: 3, TxID: 7},
	}, txs)
}

func TestReaderRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		target error
	}{
		{"unknown type", "transfer, 1, 1, 1.0", ErrUnknownRecord},
		{"missing client", "deposit, , 1, 1.0", ErrMissingField},
		{"missing tx", "dispute, 1", ErrMissingField},
		{"missing amount", "deposit, 1, 1", ErrMissingField},
		{"empty amount", "withdrawal, 1, 1, ", ErrMissingField},
		{"client out of range", "deposit, 65536, 1, 1.0", strconv.ErrRange},
		{"negative client", "deposit, -1, 1, 1.0", strconv.ErrSyntax},
		{"tx out of range", "dispute, 1, 4294967296", strconv.ErrRange},
		{"too many decimals", "deposit, 1, 1, 1.00001", currency.ErrInvalidFormat},
		{"not a number", "deposit, 1, 1, one", currency.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := readAll(t, "type, client, tx, amount\ndeposit, 1, 9, 1\n"+tt.row+"\n")

			assert.Len(t, txs, 1)
			assert.ErrorIs(t, err, tt.target)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, 3, parseErr.Line)
		})
	}
}

func TestWriteStatements(t *testing.T) {
	var out bytes.Buffer

	err := WriteStatements(&out, []ledger.Statement{
		{Client: 1, Available: currency.MustParse("1.5"), Held: currency.Zero, Total: currency.MustParse("1.5")},
		{Client: 2, Available: currency.MustParse("-0.5"), Held: currency.MustParse("1"), Total: currency.MustParse("0.5"), Locked: true},
	})

	require.NoError(t, err)
	assert.Equal(t, `client, available, held, total, locked
1, 1.5000, 0.0000, 1.5000, false
2, -0.5000, 1.0000, 0.5000, true
`, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteStatementsReportsWriteErrors(t *testing.T) {
	err := WriteStatements(failingWriter{}, nil)

	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
