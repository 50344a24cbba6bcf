package model

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is one row of the ledger.
type Transaction struct {
	Index      int        // 1-based position in the ledger
	Date       civil.Date // zero value = undated
	Narration  string     // empty = absent
	Withdrawal decimal.Decimal
	Deposited  decimal.Decimal
	Balance    decimal.Decimal

	CounterpartyName *string
	Description      *string
	Rule             string  // classifier rule that produced the pair above
	UPIKey           *string // coarse aggregation key, see narration.UPIKey

	CumulativeWithdrawal decimal.Decimal
	CumulativeDeposited  decimal.Decimal
}

// Undated reports whether the source date could not be parsed.
func (t Transaction) Undated() bool {
	return !t.Date.IsValid()
}

// InMonth reports whether the transaction falls in the given month and year.
func (t Transaction) InMonth(month time.Month, year int) bool {
	return !t.Undated() && t.Date.Month == month && t.Date.Year == year
}

// Ledger is the ordered, immutable output of one pipeline run.
type Ledger struct {
	Source       string
	Fingerprint  string
	RunID        string
	Transactions []Transaction
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.Transactions)
}
