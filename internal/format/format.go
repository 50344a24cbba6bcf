// Package format renders amounts and dates for display. All settings come
// from an explicit FormatConfig; nothing is read from process state.
package format

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ledgerlens-dev/ledgerlens/internal/config"
)

// Undated is shown in place of a missing date.
const Undated = "-"

// Formatter formats values for one locale.
type Formatter struct {
	tag        language.Tag
	printer    *message.Printer
	places     int
	dateLayout string
	currency   string
}

// New creates a Formatter from cfg.
func New(cfg config.FormatConfig) (*Formatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", cfg.Locale, err)
	}
	if cfg.AmountPlaces < 0 {
		return nil, fmt.Errorf("amount_places must be non-negative, got %d", cfg.AmountPlaces)
	}
	layout := cfg.DateLayout
	if layout == "" {
		layout = config.Default().Format.DateLayout
	}
	return &Formatter{
		tag:        tag,
		printer:    message.NewPrinter(tag),
		places:     cfg.AmountPlaces,
		dateLayout: layout,
		currency:   cfg.Currency,
	}, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Amount formats d with locale grouping and the configured number of
// fraction digits.
func (f *Formatter) Amount(d decimal.Decimal) string {
	v := d.Round(int32(f.places)).InexactFloat64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(f.places)))
}

// Money is Amount prefixed with the currency symbol, if one is set.
func (f *Formatter) Money(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Amount(d)
	}
	return f.currency + " " + f.Amount(d)
}

// Date formats d, or returns Undated for the zero date.
func (f *Formatter) Date(d civil.Date) string {
	if !d.IsValid() {
		return Undated
	}
	return d.In(time.UTC).Format(f.dateLayout)
}

// Month formats a calendar month, e.g. "April 2022".
func (f *Formatter) Month(month time.Month, year int) string {
	return fmt.Sprintf("%s %d", month, year)
}

// Text returns *s, or "" when absent.
func (f *Formatter) Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
