package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ledgerlens-dev/ledgerlens/internal/metrics"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/report"
)

func newCounterpartiesCommand(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "counterparties <file>",
		Short: "Show withdrawals per counterparty, largest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.pipeline().RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			txns := l.Transactions
			if from != "" || to != "" {
				start, end, err := parseRange(from, to)
				if err != nil {
					return err
				}
				txns = metrics.New(txns).FilterByRange(start, end).Transactions
			}
			return a.runCounterparties(cmd.OutOrStdout(), l, txns)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "only transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "only transactions on or before this date (YYYY-MM-DD)")

	return cmd
}

func (a *app) runCounterparties(out io.Writer, l *model.Ledger, txns []model.Transaction) error {
	groups := metrics.New(txns).GroupByCounterparty()

	if a.json() {
		doc := report.NewDocument(l)
		doc.Counterparties = report.NewCounterpartyDocs(groups)
		return report.JSON(out, doc)
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	return report.NewWriter(out, f).WriteCounterparties(groups)
}
