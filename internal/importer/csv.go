package importer

import (
	"encoding/csv"
	"io"

	"github.com/ledgerlens-dev/ledgerlens/internal/common"
)

// CSVReader reads a statement sheet saved as CSV. Rows may be ragged.
type CSVReader struct{}

// Format returns the reader name.
func (p *CSVReader) Format() string { return "csv" }

// Read returns every record of the file.
func (p *CSVReader) Read(r io.ReadSeeker) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, common.WrapMalformed("reading statement CSV", err)
	}
	return Table(records), nil
}
