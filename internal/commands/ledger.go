package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerlens-dev/ledgerlens/internal/ledger"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/report"
)

func newLedgerCommand(a *app) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "ledger <file>",
		Short: "Print the categorized ledger or export it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.pipeline().RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := exportCSV(csvPath, l); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", l.Len(), csvPath)
				return nil
			}
			return a.runLedger(cmd.OutOrStdout(), l)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the ledger to this CSV file")

	return cmd
}

func (a *app) runLedger(out io.Writer, l *model.Ledger) error {
	if a.json() {
		doc := report.NewDocument(l)
		doc.Transactions = report.NewTransactionDocs(l.Transactions)
		return report.JSON(out, doc)
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	return report.NewWriter(out, f).WriteLedger(l.Transactions)
}

func exportCSV(path string, l *model.Ledger) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := ledger.WriteCSV(file, l.Transactions); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
