package importer

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
)

// XLSReader reads legacy BIFF .xls workbooks, the format the bank exports.
type XLSReader struct{}

// Format returns the reader name.
func (p *XLSReader) Format() string { return "xls" }

// Read returns the cells of sheet 0. The xls package panics on some corrupt
// workbooks, so panics are reported as malformed input.
func (p *XLSReader) Read(r io.ReadSeeker) (table Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			table = nil
			err = common.WrapMalformed("decoding xls workbook", fmt.Errorf("%v", rec))
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, common.WrapMalformed("opening xls workbook", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, common.Malformed("xls workbook has no sheets")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, common.Malformed("xls workbook has no first sheet")
	}

	// MaxRow is the last row index, not the row count.
	rows := int(sheet.MaxRow) + 1
	table = make(Table, 0, rows)
	for i := 0; i < rows; i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			table = append(table, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		table = append(table, cells)
	}
	return table, nil
}

// sheetRow returns nil for rows the workbook does not store; WorkSheet.Row
// dereferences the missing entry.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
