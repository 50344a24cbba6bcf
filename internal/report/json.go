package report

import (
	"encoding/json"
	"errors"
	"io"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
	"github.com/ledgerlens-dev/ledgerlens/internal/metrics"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
)

// Document is the JSON form of a command's output. Amounts are strings
// with two decimals; dates are ISO 8601 and omitted when undated.
type Document struct {
	Source         string            `json:"source"`
	Fingerprint    string            `json:"fingerprint"`
	RunID          string            `json:"run_id"`
	Summary        *SummaryDoc       `json:"summary,omitempty"`
	Highlights     *HighlightsDoc    `json:"highlights,omitempty"`
	Selection      *SelectionDoc     `json:"selection,omitempty"`
	Transactions   []TransactionDoc  `json:"transactions,omitempty"`
	Counterparties []CounterpartyDoc `json:"counterparties,omitempty"`
	Periods        []string          `json:"periods,omitempty"`
}

// SummaryDoc mirrors metrics.Summary. Averages are null when undefined.
type SummaryDoc struct {
	First           string  `json:"first,omitempty"`
	Last            string  `json:"last,omitempty"`
	Days            int     `json:"days"`
	Count           int     `json:"count"`
	TotalWithdrawal string  `json:"total_withdrawal"`
	TotalDeposited  string  `json:"total_deposited"`
	OpeningBalance  string  `json:"opening_balance"`
	ClosingBalance  string  `json:"closing_balance"`
	AveragePerDay   *string `json:"average_per_day"`
	AveragePerMonth *string `json:"average_per_month"`
}

// TransactionDoc mirrors model.Transaction.
type TransactionDoc struct {
	Index                int     `json:"index"`
	Date                 string  `json:"date,omitempty"`
	Narration            string  `json:"narration,omitempty"`
	Withdrawal           string  `json:"withdrawal"`
	Deposited            string  `json:"deposited"`
	Balance              string  `json:"balance"`
	CounterpartyName     *string `json:"counterparty_name"`
	Description          *string `json:"description"`
	Rule                 string  `json:"rule"`
	UPIKey               *string `json:"upi_key"`
	CumulativeWithdrawal string  `json:"cumulative_withdrawal"`
	CumulativeDeposited  string  `json:"cumulative_deposited"`
}

// SelectionDoc mirrors metrics.Selection.
type SelectionDoc struct {
	Label           string           `json:"label"`
	Transactions    []TransactionDoc `json:"transactions"`
	TotalWithdrawal string           `json:"total_withdrawal"`
	TotalDeposited  string           `json:"total_deposited"`
}

// CounterpartyDoc mirrors metrics.CounterpartyGroup. Key is null for the
// group without a key.
type CounterpartyDoc struct {
	Key        *string `json:"key"`
	Count      int     `json:"count"`
	Withdrawal string  `json:"withdrawal"`
}

// DayDoc mirrors metrics.DayTotal.
type DayDoc struct {
	Date       string `json:"date"`
	Withdrawal string `json:"withdrawal"`
	Deposited  string `json:"deposited"`
}

// HighlightsDoc holds the extremum queries; each is null when the ledger
// has no withdrawals.
type HighlightsDoc struct {
	MaxSingleWithdrawal *TransactionDoc `json:"max_single_withdrawal"`
	MaxWithdrawalDay    *DayDoc         `json:"max_withdrawal_day"`
}

// NewDocument starts a Document with the ledger's provenance.
func NewDocument(l *model.Ledger) *Document {
	return &Document{Source: l.Source, Fingerprint: l.Fingerprint, RunID: l.RunID}
}

// NewSummaryDoc converts a summary.
func NewSummaryDoc(s metrics.Summary) *SummaryDoc {
	doc := &SummaryDoc{
		First:           isoDate(s.First),
		Last:            isoDate(s.Last),
		Days:            s.Days,
		Count:           s.Count,
		TotalWithdrawal: amount(s.TotalWithdrawal),
		TotalDeposited:  amount(s.TotalDeposited),
		OpeningBalance:  amount(s.OpeningBalance),
		ClosingBalance:  amount(s.ClosingBalance),
	}
	if v, err := s.AveragePerDay(); err == nil {
		a := amount(v)
		doc.AveragePerDay = &a
	}
	if v, err := s.AveragePerMonth(); err == nil {
		a := amount(v)
		doc.AveragePerMonth = &a
	}
	return doc
}

// NewTransactionDocs converts transactions.
func NewTransactionDocs(txns []model.Transaction) []TransactionDoc {
	docs := make([]TransactionDoc, len(txns))
	for i, t := range txns {
		docs[i] = newTransactionDoc(t)
	}
	return docs
}

func newTransactionDoc(t model.Transaction) TransactionDoc {
	return TransactionDoc{
		Index:                t.Index,
		Date:                 isoDate(t.Date),
		Narration:            t.Narration,
		Withdrawal:           amount(t.Withdrawal),
		Deposited:            amount(t.Deposited),
		Balance:              amount(t.Balance),
		CounterpartyName:     t.CounterpartyName,
		Description:          t.Description,
		Rule:                 t.Rule,
		UPIKey:               t.UPIKey,
		CumulativeWithdrawal: amount(t.CumulativeWithdrawal),
		CumulativeDeposited:  amount(t.CumulativeDeposited),
	}
}

// NewSelectionDoc converts a filter result.
func NewSelectionDoc(label string, sel metrics.Selection) *SelectionDoc {
	return &SelectionDoc{
		Label:           label,
		Transactions:    NewTransactionDocs(sel.Transactions),
		TotalWithdrawal: amount(sel.TotalWithdrawal),
		TotalDeposited:  amount(sel.TotalDeposited),
	}
}

// NewCounterpartyDocs converts counterparty groups.
func NewCounterpartyDocs(groups []metrics.CounterpartyGroup) []CounterpartyDoc {
	docs := make([]CounterpartyDoc, len(groups))
	for i, g := range groups {
		docs[i] = CounterpartyDoc{Key: g.Key, Count: g.Count, Withdrawal: amount(g.Withdrawal)}
	}
	return docs
}

// NewHighlightsDoc runs the extremum queries. An empty ledger leaves the
// fields null; any other error is returned.
func NewHighlightsDoc(e *metrics.Engine) (*HighlightsDoc, error) {
	doc := &HighlightsDoc{}

	tx, err := e.MaxSingleWithdrawal()
	switch {
	case err == nil:
		t := newTransactionDoc(tx)
		doc.MaxSingleWithdrawal = &t
	case !errors.Is(err, common.ErrEmptyLedger):
		return nil, err
	}

	day, err := e.MaxWithdrawalDay()
	switch {
	case err == nil:
		doc.MaxWithdrawalDay = &DayDoc{
			Date:       isoDate(day.Date),
			Withdrawal: amount(day.Withdrawal),
			Deposited:  amount(day.Deposited),
		}
	case !errors.Is(err, common.ErrEmptyLedger):
		return nil, err
	}
	return doc, nil
}

// NewPeriodStrings converts periods to "YYYY-MM" strings.
func NewPeriodStrings(periods []metrics.Period) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		out[i] = civil.Date{Year: p.Year, Month: p.Month, Day: 1}.String()[:7]
	}
	return out
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func isoDate(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.String()
}
