package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ledgerlens-dev/ledgerlens/internal/metrics"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/report"
)

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Show the statement summary, averages and highlights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.pipeline().RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.runSummary(cmd.OutOrStdout(), l)
		},
	}
}

func (a *app) runSummary(out io.Writer, l *model.Ledger) error {
	e := metrics.New(l.Transactions)
	s, err := e.Summary()
	if err != nil {
		return err
	}

	if a.json() {
		highlights, err := report.NewHighlightsDoc(e)
		if err != nil {
			return err
		}
		doc := report.NewDocument(l)
		doc.Summary = report.NewSummaryDoc(s)
		doc.Highlights = highlights
		doc.Periods = report.NewPeriodStrings(e.Periods())
		return report.JSON(out, doc)
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	w := report.NewWriter(out, f)
	if err := w.WriteSummary(l, s); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := w.WriteHighlights(e); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return w.WritePeriods(e.Periods())
}
