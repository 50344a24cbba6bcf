// Package report renders ledgers and metrics as aligned text or JSON.
package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
	"github.com/ledgerlens-dev/ledgerlens/internal/format"
	"github.com/ledgerlens-dev/ledgerlens/internal/metrics"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
)

// NotAvailable stands in for a metric that is undefined for the data.
const NotAvailable = "n/a"

// OtherCounterparty labels the group of transactions without a key.
const OtherCounterparty = "(other)"

// Writer renders text reports. Styling is only emitted when out is a
// terminal.
type Writer struct {
	out     io.Writer
	f       *format.Formatter
	heading lipgloss.Style
	muted   lipgloss.Style
}

// NewWriter creates a text report Writer.
func NewWriter(out io.Writer, f *format.Formatter) *Writer {
	r := lipgloss.NewRenderer(out)
	return &Writer{
		out:     out,
		f:       f,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (w *Writer) title(s string) error {
	_, err := fmt.Fprintln(w.out, w.heading.Render(s))
	return err
}

func (w *Writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
}

// WriteSummary prints the statement summary and the average spend rates.
func (w *Writer) WriteSummary(l *model.Ledger, s metrics.Summary) error {
	if err := w.title("Statement summary"); err != nil {
		return err
	}
	tw := w.table()
	fmt.Fprintf(tw, "Source\t%s\n", l.Source)
	fmt.Fprintf(tw, "Period\t%s to %s\n", w.f.Date(s.First), w.f.Date(s.Last))
	fmt.Fprintf(tw, "Days\t%d\n", s.Days)
	fmt.Fprintf(tw, "Transactions\t%d\n", s.Count)
	fmt.Fprintf(tw, "Total withdrawal\t%s\n", w.f.Money(s.TotalWithdrawal))
	fmt.Fprintf(tw, "Total deposited\t%s\n", w.f.Money(s.TotalDeposited))
	fmt.Fprintf(tw, "Opening balance\t%s\n", w.f.Money(s.OpeningBalance))
	fmt.Fprintf(tw, "Closing balance\t%s\n", w.f.Money(s.ClosingBalance))

	perDay, err := s.AveragePerDay()
	fmt.Fprintf(tw, "Average per day\t%s\n", w.rate(perDay, err))
	perMonth, err := s.AveragePerMonth()
	fmt.Fprintf(tw, "Average per month\t%s\n", w.rate(perMonth, err))
	return tw.Flush()
}

// WriteHighlights prints the largest single withdrawal and the day with the
// most spent.
func (w *Writer) WriteHighlights(e *metrics.Engine) error {
	if err := w.title("Highlights"); err != nil {
		return err
	}
	tw := w.table()

	if tx, err := e.MaxSingleWithdrawal(); err == nil {
		fmt.Fprintf(tw, "Largest withdrawal\t%s\t%s\t%s\n", w.f.Money(tx.Withdrawal), w.f.Date(tx.Date), tx.Narration)
	} else if errors.Is(err, common.ErrEmptyLedger) {
		fmt.Fprintf(tw, "Largest withdrawal\t%s\n", w.muted.Render(NotAvailable))
	} else {
		return err
	}

	if day, err := e.MaxWithdrawalDay(); err == nil {
		fmt.Fprintf(tw, "Busiest day\t%s\t%s\n", w.f.Money(day.Withdrawal), w.f.Date(day.Date))
	} else if errors.Is(err, common.ErrEmptyLedger) {
		fmt.Fprintf(tw, "Busiest day\t%s\n", w.muted.Render(NotAvailable))
	} else {
		return err
	}
	return tw.Flush()
}

// WriteLedger prints one line per transaction.
func (w *Writer) WriteLedger(txns []model.Transaction) error {
	tw := w.table()
	fmt.Fprintln(tw, "#\tDate\tCounterparty\tDescription\tWithdrawal\tDeposited\tBalance")
	for _, t := range txns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Index,
			w.f.Date(t.Date),
			w.f.Text(t.CounterpartyName),
			w.f.Text(t.Description),
			w.f.Amount(t.Withdrawal),
			w.f.Amount(t.Deposited),
			w.f.Amount(t.Balance),
		)
	}
	return tw.Flush()
}

// WriteSelection prints a filtered set of transactions with its totals.
func (w *Writer) WriteSelection(title string, sel metrics.Selection) error {
	if err := w.title(title); err != nil {
		return err
	}
	if len(sel.Transactions) == 0 {
		_, err := fmt.Fprintln(w.out, w.muted.Render("No transactions."))
		return err
	}
	if err := w.WriteLedger(sel.Transactions); err != nil {
		return err
	}
	tw := w.table()
	fmt.Fprintf(tw, "Total withdrawal\t%s\n", w.f.Money(sel.TotalWithdrawal))
	fmt.Fprintf(tw, "Total deposited\t%s\n", w.f.Money(sel.TotalDeposited))
	return tw.Flush()
}

// WriteCounterparties prints withdrawal totals per counterparty key.
func (w *Writer) WriteCounterparties(groups []metrics.CounterpartyGroup) error {
	if err := w.title("Spending by counterparty"); err != nil {
		return err
	}
	tw := w.table()
	fmt.Fprintln(tw, "Counterparty\tTransactions\tWithdrawal")
	for _, g := range groups {
		name := OtherCounterparty
		if g.Key != nil {
			name = *g.Key
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", name, g.Count, w.f.Money(g.Withdrawal))
	}
	return tw.Flush()
}

// WritePeriods lists the months covered by the ledger.
func (w *Writer) WritePeriods(periods []metrics.Period) error {
	if err := w.title("Months"); err != nil {
		return err
	}
	for _, p := range periods {
		if _, err := fmt.Fprintln(w.out, w.f.Month(p.Month, p.Year)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) rate(v decimal.Decimal, err error) string {
	if err != nil {
		return w.muted.Render(NotAvailable)
	}
	return w.f.Money(v)
}
