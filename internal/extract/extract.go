// Package extract cuts the transaction window out of a statement sheet.
package extract

import (
	"strings"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
	"github.com/ledgerlens-dev/ledgerlens/internal/config"
	"github.com/ledgerlens-dev/ledgerlens/internal/importer"
)

// Column positions within a RawRow.
const (
	ColNarration = iota
	ColDate
	ColWithdrawal
	ColDeposited
	ColBalance
	NumColumns
)

// RawRow is one untyped statement line after boilerplate removal.
type RawRow struct {
	Line  int // 1-based row number in the source sheet
	Cells [NumColumns]string
}

// Narration returns the narration cell.
func (r RawRow) Narration() string { return r.Cells[ColNarration] }

// Extractor removes the fixed header, footer, separator row and unused
// label columns from a statement sheet.
type Extractor struct {
	layout config.LayoutConfig
	keep   []int
}

// New creates an Extractor for a validated layout.
func New(layout config.LayoutConfig) *Extractor {
	dropped := make(map[int]bool, len(layout.DroppedColumns))
	for _, c := range layout.DroppedColumns {
		dropped[c] = true
	}
	keep := make([]int, 0, NumColumns)
	for c := 0; c < layout.Columns; c++ {
		if !dropped[c] {
			keep = append(keep, c)
		}
	}
	if len(keep) > NumColumns {
		keep = keep[:NumColumns]
	}
	return &Extractor{layout: layout, keep: keep}
}

// Extract returns rows[header : R-footer] with the separator row and the
// dropped columns removed. Missing cells become empty strings.
func (e *Extractor) Extract(table importer.Table) ([]RawRow, error) {
	total := len(table)
	if total < e.layout.MinRows() {
		return nil, common.Malformed("statement has %d rows, need at least %d", total, e.layout.MinRows())
	}

	window := table[e.layout.HeaderRows : total-e.layout.FooterRows]
	widest := 0
	for _, row := range window {
		widest = max(widest, len(row))
	}
	if widest < e.layout.Columns {
		return nil, common.Malformed("statement rows have %d columns, expected %d", widest, e.layout.Columns)
	}

	rows := make([]RawRow, 0, len(window))
	for i, cells := range window {
		if i == e.layout.SeparatorRow {
			continue
		}
		raw := RawRow{Line: e.layout.HeaderRows + i + 1}
		for j, c := range e.keep {
			if c < len(cells) {
				raw.Cells[j] = strings.TrimSpace(cells[c])
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}
