package importer

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Table is the cell grid of the first sheet of a statement file.
type Table [][]string

// Reader decodes a statement container into a Table.
type Reader interface {
	Read(r io.ReadSeeker) (Table, error)
	Format() string
}

// Registry holds named readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSReader{})
	r.Register(&XLSXReader{})
	r.Register(&CSVReader{})
	return r
}

var (
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic = []byte("PK\x03\x04")
)

// DetectFormat picks a reader format from the file content, falling back to
// the file extension and finally to csv.
func DetectFormat(name string, data []byte) string {
	switch {
	case bytes.HasPrefix(data, oleMagic):
		return "xls"
	case bytes.HasPrefix(data, zipMagic):
		return "xlsx"
	}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xls", ".xlsx", ".csv":
		return ext[1:]
	}
	return "csv"
}
