package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/ledgerlens-dev/ledgerlens/internal/metrics"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/report"
)

type filterFlags struct {
	date  string
	month int
	year  int
	from  string
	to    string
}

func newFilterCommand(a *app) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "filter <file>",
		Short: "Show transactions for a date, a month or a date range",
		Long: "Select transactions with exactly one of:\n" +
			"  --date YYYY-MM-DD\n" +
			"  --month M --year YYYY\n" +
			"  --from YYYY-MM-DD --to YYYY-MM-DD (inclusive)",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := ff.query()
			if err != nil {
				return err
			}
			l, err := a.pipeline().RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.runFilter(cmd.OutOrStdout(), l, query)
		},
	}

	cmd.Flags().StringVar(&ff.date, "date", "", "single date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&ff.month, "month", 0, "month number 1-12 (with --year)")
	cmd.Flags().IntVar(&ff.year, "year", 0, "year (with --month)")
	cmd.Flags().StringVar(&ff.from, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.to, "to", "", "range end (YYYY-MM-DD)")

	return cmd
}

// filterQuery is a parsed filter: a label for output and the selection it
// runs.
type filterQuery struct {
	label string
	run   func(*metrics.Engine) metrics.Selection
}

func (ff filterFlags) query() (filterQuery, error) {
	byDate := ff.date != ""
	byMonth := ff.month != 0 || ff.year != 0
	byRange := ff.from != "" || ff.to != ""

	modes := 0
	for _, set := range []bool{byDate, byMonth, byRange} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return filterQuery{}, errors.New("use exactly one of --date, --month/--year or --from/--to")
	}

	switch {
	case byDate:
		d, err := parseDate("date", ff.date)
		if err != nil {
			return filterQuery{}, err
		}
		return filterQuery{
			label: d.String(),
			run:   func(e *metrics.Engine) metrics.Selection { return e.FilterByDate(d) },
		}, nil

	case byMonth:
		if ff.month < 1 || ff.month > 12 {
			return filterQuery{}, fmt.Errorf("--month must be 1-12, got %d", ff.month)
		}
		if ff.year == 0 {
			return filterQuery{}, errors.New("--month requires --year")
		}
		month := time.Month(ff.month)
		return filterQuery{
			label: fmt.Sprintf("%s %d", month, ff.year),
			run:   func(e *metrics.Engine) metrics.Selection { return e.FilterByMonth(month, ff.year) },
		}, nil

	default:
		start, end, err := parseRange(ff.from, ff.to)
		if err != nil {
			return filterQuery{}, err
		}
		return filterQuery{
			label: start.String() + " to " + end.String(),
			run:   func(e *metrics.Engine) metrics.Selection { return e.FilterByRange(start, end) },
		}, nil
	}
}

func (a *app) runFilter(out io.Writer, l *model.Ledger, q filterQuery) error {
	sel := q.run(metrics.New(l.Transactions))

	if a.json() {
		doc := report.NewDocument(l)
		doc.Selection = report.NewSelectionDoc(q.label, sel)
		return report.JSON(out, doc)
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	return report.NewWriter(out, f).WriteSelection(q.label, sel)
}

func parseDate(flag, value string) (civil.Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

// parseRange parses --from/--to; both are required when either is set.
func parseRange(from, to string) (civil.Date, civil.Date, error) {
	if from == "" || to == "" {
		return civil.Date{}, civil.Date{}, errors.New("--from and --to must be used together")
	}
	start, err := parseDate("from", from)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	end, err := parseDate("to", to)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return start, end, nil
}
