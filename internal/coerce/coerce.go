// Package coerce turns raw statement cells into typed fields. A cell that
// cannot be parsed never aborts the run: the Result carries the error and
// the caller substitutes the value named by a Policy.
package coerce

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/extract"
)

// Field names used in Error.
const (
	FieldNarration  = "narration"
	FieldDate       = "date"
	FieldWithdrawal = "withdrawal"
	FieldDeposited  = "deposited"
	FieldBalance    = "balance"
)

// amountPlaces is the display precision the statement export uses for
// withdrawal and deposit columns.
const amountPlaces = 1

// ErrMissing marks an empty cell.
var ErrMissing = errors.New("missing value")

// Error records one cell that failed to coerce.
type Error struct {
	Field string
	Raw   string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Raw, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Missing reports whether the cell was empty rather than unparsable.
func (e *Error) Missing() bool { return errors.Is(e.Err, ErrMissing) }

// Result is a coerced value or the reason it could not be produced.
type Result[T any] struct {
	Value T
	Err   *Error
}

// OK reports whether the value was parsed.
func (r Result[T]) OK() bool { return r.Err == nil }

// Or returns the parsed value, or fallback on failure.
func (r Result[T]) Or(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}

// Policy is the table of values substituted for fields that fail to
// coerce. Narration and date have no substitute: they stay absent.
type Policy struct {
	Withdrawal decimal.Decimal
	Deposited  decimal.Decimal
	Balance    decimal.Decimal
}

// DefaultPolicy treats "no data" as "no amount".
var DefaultPolicy = Policy{
	Withdrawal: decimal.Zero,
	Deposited:  decimal.Zero,
	Balance:    decimal.Zero,
}

// Row is a statement line with every field coerced.
type Row struct {
	Line       int
	Narration  Result[string]
	Date       Result[civil.Date]
	Withdrawal Result[decimal.Decimal]
	Deposited  Result[decimal.Decimal]
	Balance    Result[decimal.Decimal]
}

// Issues lists the fields of the row that failed to coerce.
func (r Row) Issues() []*Error {
	var issues []*Error
	for _, e := range []*Error{r.Narration.Err, r.Date.Err, r.Withdrawal.Err, r.Deposited.Err, r.Balance.Err} {
		if e != nil {
			issues = append(issues, e)
		}
	}
	return issues
}

// Values applies the policy and returns the row's typed values. An
// undated row gets the zero civil.Date; a missing narration is "".
func (r Row) Values(p Policy) (narration string, date civil.Date, withdrawal, deposited, balance decimal.Decimal) {
	return r.Narration.Or(""),
		r.Date.Or(civil.Date{}),
		r.Withdrawal.Or(p.Withdrawal),
		r.Deposited.Or(p.Deposited),
		r.Balance.Or(p.Balance)
}

// Coercer parses RawRows with a fixed date layout.
type Coercer struct {
	dateLayout string
}

// New creates a Coercer for dates in the given Go reference layout.
func New(dateLayout string) *Coercer {
	return &Coercer{dateLayout: dateLayout}
}

// Row coerces one raw row. It is a pure function of its input.
func (c *Coercer) Row(raw extract.RawRow) Row {
	return Row{
		Line:       raw.Line,
		Narration:  Narration(raw.Cells[extract.ColNarration]),
		Date:       Date(raw.Cells[extract.ColDate], c.dateLayout),
		Withdrawal: Amount(FieldWithdrawal, raw.Cells[extract.ColWithdrawal]),
		Deposited:  Amount(FieldDeposited, raw.Cells[extract.ColDeposited]),
		Balance:    Balance(raw.Cells[extract.ColBalance]),
	}
}

// Rows coerces every raw row in order.
func (c *Coercer) Rows(raws []extract.RawRow) []Row {
	rows := make([]Row, len(raws))
	for i, raw := range raws {
		rows[i] = c.Row(raw)
	}
	return rows
}

// Narration trims the cell; an empty cell is absent.
func Narration(raw string) Result[string] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Result[string]{Err: &Error{Field: FieldNarration, Raw: raw, Err: ErrMissing}}
	}
	return Result[string]{Value: s}
}

// Date parses a calendar date in layout.
func Date(raw, layout string) Result[civil.Date] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Result[civil.Date]{Err: &Error{Field: FieldDate, Raw: raw, Err: ErrMissing}}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Result[civil.Date]{Err: &Error{Field: FieldDate, Raw: raw, Err: err}}
	}
	return Result[civil.Date]{Value: civil.DateOf(t)}
}

// Amount parses a withdrawal or deposit cell, rounded to the statement's
// one-digit display precision. Negative amounts are rejected.
func Amount(field, raw string) Result[decimal.Decimal] {
	d, err := parseDecimal(raw)
	if err != nil {
		return Result[decimal.Decimal]{Err: &Error{Field: field, Raw: raw, Err: err}}
	}
	if d.IsNegative() {
		return Result[decimal.Decimal]{Err: &Error{Field: field, Raw: raw, Err: errors.New("negative amount")}}
	}
	return Result[decimal.Decimal]{Value: d.Round(amountPlaces)}
}

// Balance parses a running balance cell at full precision.
func Balance(raw string) Result[decimal.Decimal] {
	d, err := parseDecimal(raw)
	if err != nil {
		return Result[decimal.Decimal]{Err: &Error{Field: FieldBalance, Raw: raw, Err: err}}
	}
	return Result[decimal.Decimal]{Value: d}
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, ErrMissing
	}
	return decimal.NewFromString(s)
}
