package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/model"
)

// Invariant numbers reported in ValidationError.
const (
	InvariantIndex       = 1
	InvariantCumulative  = 2
	InvariantNonNegative = 3
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Index       int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [row %d]: %s", e.Invariant, e.Index, e.Description)
}

// Validate re-checks the ledger invariants: contiguous 1-based indices,
// the cumulative recurrences, and non-negative amounts.
func Validate(txns []model.Transaction) []ValidationError {
	var errs []ValidationError

	prevWithdrawal := decimal.Zero
	prevDeposited := decimal.Zero

	for i, t := range txns {
		// Invariant 1: index == position + 1.
		if t.Index != i+1 {
			errs = append(errs, ValidationError{
				Invariant:   InvariantIndex,
				Index:       t.Index,
				Description: fmt.Sprintf("index %d at position %d, want %d", t.Index, i, i+1),
			})
		}

		// Invariant 2: cumulative[i] == cumulative[i-1] + amount[i].
		wantWithdrawal := prevWithdrawal.Add(t.Withdrawal)
		if !t.CumulativeWithdrawal.Equal(wantWithdrawal) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantCumulative,
				Index:       t.Index,
				Description: fmt.Sprintf("cumulative withdrawal %s, want %s", t.CumulativeWithdrawal, wantWithdrawal),
			})
		}
		wantDeposited := prevDeposited.Add(t.Deposited)
		if !t.CumulativeDeposited.Equal(wantDeposited) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantCumulative,
				Index:       t.Index,
				Description: fmt.Sprintf("cumulative deposit %s, want %s", t.CumulativeDeposited, wantDeposited),
			})
		}
		prevWithdrawal = t.CumulativeWithdrawal
		prevDeposited = t.CumulativeDeposited

		// Invariant 3: amounts are never negative.
		if t.Withdrawal.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   InvariantNonNegative,
				Index:       t.Index,
				Description: fmt.Sprintf("negative withdrawal %s", t.Withdrawal),
			})
		}
		if t.Deposited.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   InvariantNonNegative,
				Index:       t.Index,
				Description: fmt.Sprintf("negative deposit %s", t.Deposited),
			})
		}
	}

	return errs
}
