// Package ledger turns coerced statement rows into an indexed, classified
// ledger with running totals, and exports it.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/coerce"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/narration"
)

// Classifier maps a narration to its display classification.
type Classifier interface {
	Classify(narration string) narration.Classification
}

// Build assigns 1-based indices, applies the fallback policy, classifies
// every narration and computes both cumulative columns. The input order is
// preserved.
func Build(rows []coerce.Row, policy coerce.Policy, classifier Classifier) []model.Transaction {
	if classifier == nil {
		classifier = narration.NewClassifier()
	}

	txns := make([]model.Transaction, 0, len(rows))
	cumWithdrawal := decimal.Zero
	cumDeposited := decimal.Zero

	for i, row := range rows {
		text, date, withdrawal, deposited, balance := row.Values(policy)
		cumWithdrawal = cumWithdrawal.Add(withdrawal)
		cumDeposited = cumDeposited.Add(deposited)

		c := classifier.Classify(text)
		txns = append(txns, model.Transaction{
			Index:                i + 1,
			Date:                 date,
			Narration:            text,
			Withdrawal:           withdrawal,
			Deposited:            deposited,
			Balance:              balance,
			CounterpartyName:     c.CounterpartyName,
			Description:          c.Description,
			Rule:                 c.Rule,
			UPIKey:               narration.UPIKey(text),
			CumulativeWithdrawal: cumWithdrawal,
			CumulativeDeposited:  cumDeposited,
		})
	}
	return txns
}
