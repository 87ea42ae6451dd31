// Package csvio reads transaction records from CSV and writes account statements back.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"payments/currency"
	"payments/executor"
	"payments/ledger"
	"payments/transactions"
)

var (
	ErrUnknownRecord = errors.New("unknown record type")
	ErrMissingField  = errors.New("missing field")
)

// ParseError reports a row that could not be turned into a transaction.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader parses rows of the form "type, client, tx, amount". A leading header row is
// skipped, surrounding whitespace is ignored and the amount may be omitted for
// disputes, resolves and chargebacks.
type Reader struct {
	csv     *csv.Reader
	started bool
}

var _ executor.Source = &Reader{}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// Next returns the next transaction, or io.EOF after the last row.
func (r *Reader) Next() (executor.Transaction, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			return nil, err
		}
		line, _ := r.csv.FieldPos(0)

		if !r.started {
			r.started = true
			if strings.EqualFold(strings.TrimSpace(record[0]), "type") {
				continue
			}
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		tx, err := parseRecord(record)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		return tx, nil
	}
}

func parseRecord(record []string) (executor.Transaction, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	txType, clientText, txText, amountText := field(0), field(1), field(2), field(3)

	if clientText == "" {
		return nil, fmt.Errorf("client: %w", ErrMissingField)
	}
	if txText == "" {
		return nil, fmt.Errorf("tx: %w", ErrMissingField)
	}
	// Ids are parsed at their full width so out of range values fail instead of wrapping.
	client, err := strconv.ParseUint(clientText, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("client %q: %w", clientText, err)
	}
	tx, err := strconv.ParseUint(txText, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("tx %q: %w", txText, err)
	}
	clientID, txID := ledger.ClientID(client), ledger.TxID(tx)

	switch txType {
	case transactions.TypeDeposit, transactions.TypeWithdrawal:
		if amountText == "" {
			return nil, fmt.Errorf("amount: %w", ErrMissingField)
		}
		amount, err := currency.Parse(amountText)
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		if txType == transactions.TypeDeposit {
			return transactions.Deposit{ClientID: clientID, TxID: txID, Amount: amount}, nil
		}
		return transactions.Withdrawal{ClientID: clientID, TxID: txID, Amount: amount}, nil
	case transactions.TypeDispute:
		return transactions.Dispute{ClientID: clientID, TxID: txID}, nil
	case transactions.TypeResolve:
		return transactions.Resolve{ClientID: clientID, TxID: txID}, nil
	case transactions.TypeChargeback:
		return transactions.Chargeback{ClientID: clientID, TxID: txID}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRecord, txType)
	}
}
