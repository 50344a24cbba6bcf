package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/model"
)

// Header is the CSV header for an exported ledger.
const Header = "index,date,narration,withdrawal,deposited,balance,counterparty_name,description,rule,upi_key,cumulative_withdrawal,cumulative_deposited"

const (
	numFields = 12
	colIndex  = 0
	colDate   = 1
	colNarr   = 2
	colWdl    = 3
	colDep    = 4
	colBal    = 5
	colCparty = 6
	colDesc   = 7
	colRule   = 8
	colUPIKey = 9
	colCumWdl = 10
	colCumDep = 11
)

// WriteCSV writes the ledger including the header. Amounts have two
// decimals, dates are ISO, absent values are empty.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a ledger written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colIndex] = strconv.Itoa(t.Index)
	if !t.Undated() {
		row[colDate] = t.Date.String()
	}
	row[colNarr] = t.Narration
	row[colWdl] = t.Withdrawal.StringFixed(2)
	row[colDep] = t.Deposited.StringFixed(2)
	row[colBal] = t.Balance.StringFixed(2)
	row[colCparty] = deref(t.CounterpartyName)
	row[colDesc] = deref(t.Description)
	row[colRule] = t.Rule
	row[colUPIKey] = deref(t.UPIKey)
	row[colCumWdl] = t.CumulativeWithdrawal.StringFixed(2)
	row[colCumDep] = t.CumulativeDeposited.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	index, err := strconv.Atoi(record[colIndex])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing index %q: %w", record[colIndex], err)
	}

	var date civil.Date
	if record[colDate] != "" {
		date, err = civil.ParseDate(record[colDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	amounts := make([]decimal.Decimal, 0, 5)
	for _, col := range []int{colWdl, colDep, colBal, colCumWdl, colCumDep} {
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
		amounts = append(amounts, d)
	}

	return model.Transaction{
		Index:                index,
		Date:                 date,
		Narration:            record[colNarr],
		Withdrawal:           amounts[0],
		Deposited:            amounts[1],
		Balance:              amounts[2],
		CounterpartyName:     optional(record[colCparty]),
		Description:          optional(record[colDesc]),
		Rule:                 record[colRule],
		UPIKey:               optional(record[colUPIKey]),
		CumulativeWithdrawal: amounts[3],
		CumulativeDeposited:  amounts[4],
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
