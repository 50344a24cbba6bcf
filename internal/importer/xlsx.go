package importer

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
)

// XLSXReader reads Office Open XML workbooks.
type XLSXReader struct{}

// Format returns the reader name.
func (p *XLSXReader) Format() string { return "xlsx" }

// Read returns the cells of the first sheet.
func (p *XLSXReader) Read(r io.ReadSeeker) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.WrapMalformed("opening xlsx workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.Malformed("xlsx workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, common.WrapMalformed("reading sheet "+sheets[0], err)
	}
	return Table(rows), nil
}
