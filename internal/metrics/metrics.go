// Package metrics answers read-only queries over a built ledger: the
// statement summary, date filters, grouped aggregates and extremum
// queries. An Engine can wrap the full ledger or any filtered subset.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
)

const daysPerMonth = 30

// Engine runs queries over an ordered transaction sequence. It never
// modifies the transactions.
type Engine struct {
	txns []model.Transaction
}

// New creates an Engine over txns.
func New(txns []model.Transaction) *Engine {
	return &Engine{txns: txns}
}

// Transactions returns the transactions the engine was built with.
func (e *Engine) Transactions() []model.Transaction {
	return e.txns
}

// Summary holds statement-level statistics.
type Summary struct {
	First           civil.Date
	Last            civil.Date
	Days            int
	TotalWithdrawal decimal.Decimal
	TotalDeposited  decimal.Decimal
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal
	Count           int
}

// AveragePerDay returns the mean withdrawal per day of the period.
func (s Summary) AveragePerDay() (decimal.Decimal, error) {
	if s.Days == 0 {
		return decimal.Zero, fmt.Errorf("average per day over %s: %w", s.First, common.ErrDivisionUndefined)
	}
	return s.TotalWithdrawal.Div(decimal.NewFromInt(int64(s.Days))), nil
}

// AveragePerMonth returns the mean withdrawal per 30-day month of the
// period.
func (s Summary) AveragePerMonth() (decimal.Decimal, error) {
	if s.Days == 0 {
		return decimal.Zero, fmt.Errorf("average per month over %s: %w", s.First, common.ErrDivisionUndefined)
	}
	return s.TotalWithdrawal.Mul(decimal.NewFromInt(daysPerMonth)).Div(decimal.NewFromInt(int64(s.Days))), nil
}

// Summary computes the statement summary. The period runs from the first to
// the last dated transaction; balances come from the first and last rows.
func (e *Engine) Summary() (Summary, error) {
	if len(e.txns) == 0 {
		return Summary{}, fmt.Errorf("summary: %w", common.ErrEmptyLedger)
	}

	s := Summary{
		TotalWithdrawal: decimal.Zero,
		TotalDeposited:  decimal.Zero,
		OpeningBalance:  e.txns[0].Balance,
		ClosingBalance:  e.txns[len(e.txns)-1].Balance,
		Count:           len(e.txns),
	}
	for _, t := range e.txns {
		s.TotalWithdrawal = s.TotalWithdrawal.Add(t.Withdrawal)
		s.TotalDeposited = s.TotalDeposited.Add(t.Deposited)
		if t.Undated() {
			continue
		}
		if s.First.IsZero() {
			s.First = t.Date
		}
		s.Last = t.Date
	}
	if s.First.IsZero() {
		return Summary{}, fmt.Errorf("summary: no dated transactions: %w", common.ErrEmptyLedger)
	}
	s.Days = s.Last.DaysSince(s.First)
	return s, nil
}

// Selection is the result of a filter with its totals.
type Selection struct {
	Transactions    []model.Transaction
	TotalWithdrawal decimal.Decimal
	TotalDeposited  decimal.Decimal
}

func (e *Engine) selectWhere(keep func(model.Transaction) bool) Selection {
	sel := Selection{TotalWithdrawal: decimal.Zero, TotalDeposited: decimal.Zero}
	for _, t := range e.txns {
		if t.Undated() || !keep(t) {
			continue
		}
		sel.Transactions = append(sel.Transactions, t)
		sel.TotalWithdrawal = sel.TotalWithdrawal.Add(t.Withdrawal)
		sel.TotalDeposited = sel.TotalDeposited.Add(t.Deposited)
	}
	return sel
}

// FilterByDate selects the transactions dated d.
func (e *Engine) FilterByDate(d civil.Date) Selection {
	return e.selectWhere(func(t model.Transaction) bool { return t.Date == d })
}

// FilterByMonth selects the transactions in the given calendar month.
func (e *Engine) FilterByMonth(month time.Month, year int) Selection {
	return e.selectWhere(func(t model.Transaction) bool { return t.InMonth(month, year) })
}

// FilterByRange selects transactions with start <= date <= end. An
// inverted range selects nothing.
func (e *Engine) FilterByRange(start, end civil.Date) Selection {
	return e.selectWhere(func(t model.Transaction) bool {
		return !t.Date.Before(start) && !t.Date.After(end)
	})
}

// CounterpartyGroup is the withdrawal total for one coarse counterparty
// key. Key is nil for the group of transactions without a key.
type CounterpartyGroup struct {
	Key        *string
	Withdrawal decimal.Decimal
	Count      int
}

// GroupByCounterparty sums withdrawals per UPI key, largest first, ties
// broken by key. Transactions without a key form one trailing group so the
// group sums always add up to the total withdrawal.
func (e *Engine) GroupByCounterparty() []CounterpartyGroup {
	byKey := make(map[string]*CounterpartyGroup)
	var keyless *CounterpartyGroup

	for _, t := range e.txns {
		var g *CounterpartyGroup
		if t.UPIKey == nil {
			if keyless == nil {
				keyless = &CounterpartyGroup{Withdrawal: decimal.Zero}
			}
			g = keyless
		} else {
			g = byKey[*t.UPIKey]
			if g == nil {
				key := *t.UPIKey
				g = &CounterpartyGroup{Key: &key, Withdrawal: decimal.Zero}
				byKey[key] = g
			}
		}
		g.Withdrawal = g.Withdrawal.Add(t.Withdrawal)
		g.Count++
	}

	groups := make([]CounterpartyGroup, 0, len(byKey)+1)
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if c := groups[i].Withdrawal.Cmp(groups[j].Withdrawal); c != 0 {
			return c > 0
		}
		return *groups[i].Key < *groups[j].Key
	})
	if keyless != nil {
		groups = append(groups, *keyless)
	}
	return groups
}

// DayTotal is the withdrawal and deposit total for one date.
type DayTotal struct {
	Date       civil.Date
	Withdrawal decimal.Decimal
	Deposited  decimal.Decimal
}

// GroupByDay sums withdrawals and deposits per date, in chronological
// order. Undated transactions are skipped.
func (e *Engine) GroupByDay() []DayTotal {
	byDate := make(map[civil.Date]int)
	var days []DayTotal
	for _, t := range e.txns {
		if t.Undated() {
			continue
		}
		i, ok := byDate[t.Date]
		if !ok {
			i = len(days)
			byDate[t.Date] = i
			days = append(days, DayTotal{Date: t.Date, Withdrawal: decimal.Zero, Deposited: decimal.Zero})
		}
		days[i].Withdrawal = days[i].Withdrawal.Add(t.Withdrawal)
		days[i].Deposited = days[i].Deposited.Add(t.Deposited)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// MaxSingleWithdrawal returns the first transaction with the largest
// withdrawal.
func (e *Engine) MaxSingleWithdrawal() (model.Transaction, error) {
	best := -1
	for i, t := range e.txns {
		if !t.Withdrawal.IsPositive() {
			continue
		}
		if best < 0 || t.Withdrawal.GreaterThan(e.txns[best].Withdrawal) {
			best = i
		}
	}
	if best < 0 {
		return model.Transaction{}, fmt.Errorf("max single withdrawal: %w", common.ErrEmptyLedger)
	}
	return e.txns[best], nil
}

// MaxWithdrawalDay returns the date with the largest summed withdrawal,
// the earliest such date on ties.
func (e *Engine) MaxWithdrawalDay() (DayTotal, error) {
	var best *DayTotal
	days := e.GroupByDay()
	for i := range days {
		if !days[i].Withdrawal.IsPositive() {
			continue
		}
		if best == nil || days[i].Withdrawal.GreaterThan(best.Withdrawal) {
			best = &days[i]
		}
	}
	if best == nil {
		return DayTotal{}, fmt.Errorf("max withdrawal day: %w", common.ErrEmptyLedger)
	}
	return *best, nil
}

// Period is one calendar month.
type Period struct {
	Month time.Month
	Year  int
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Periods lists the distinct months present in the ledger, in ledger
// order.
func (e *Engine) Periods() []Period {
	seen := make(map[Period]bool)
	var periods []Period
	for _, t := range e.txns {
		if t.Undated() {
			continue
		}
		p := Period{Month: t.Date.Month, Year: t.Date.Year}
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	return periods
}

// BalancePoint is the reported balance after one dated transaction.
type BalancePoint struct {
	Date    civil.Date
	Balance decimal.Decimal
}

// BalanceTrend returns the balance series of the dated transactions.
func (e *Engine) BalanceTrend() []BalancePoint {
	var points []BalancePoint
	for _, t := range e.txns {
		if t.Undated() {
			continue
		}
		points = append(points, BalancePoint{Date: t.Date, Balance: t.Balance})
	}
	return points
}
