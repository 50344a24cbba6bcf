package format

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens-dev/ledgerlens/internal/config"
)

func newFormatter(t *testing.T, locale string) *Formatter {
	t.Helper()
	cfg := config.Default().Format
	cfg.Locale = locale
	f, err := New(cfg)
	require.NoError(t, err)
	return f
}

func TestAmount(t *testing.T) {
	tests := []struct {
		locale string
		value  string
		want   string
	}{
		{"en-US", "1234.5", "1,234.50"},
		{"en-US", "0", "0.00"},
		{"en-US", "1234.567", "1,234.57"},
		{"en-US", "-42.5", "-42.50"},
		{"en-IN", "123456.78", "1,23,456.78"},
		{"de-DE", "1234.5", "1.234,50"},
	}
	for _, tt := range tests {
		f := newFormatter(t, tt.locale)
		assert.Equal(t, tt.want, f.Amount(decimal.RequireFromString(tt.value)), "%s %s", tt.locale, tt.value)
	}
}

func TestAmount_Places(t *testing.T) {
	cfg := config.Default().Format
	cfg.Locale = "en-US"
	cfg.AmountPlaces = 0
	f, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "1,235", f.Amount(decimal.RequireFromString("1234.5")))
}

func TestMoney(t *testing.T) {
	f := newFormatter(t, "en-US")
	assert.Equal(t, "Rs 500.00", f.Money(decimal.NewFromInt(500)))

	cfg := config.Default().Format
	cfg.Locale = "en-US"
	cfg.Currency = ""
	bare, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "500.00", bare.Money(decimal.NewFromInt(500)))
}

func TestDate(t *testing.T) {
	f := newFormatter(t, "en-IN")
	assert.Equal(t, "01 April 2022", f.Date(civil.Date{Year: 2022, Month: time.April, Day: 1}))
	assert.Equal(t, Undated, f.Date(civil.Date{}))

	cfg := config.Default().Format
	cfg.DateLayout = "2006-01-02"
	iso, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2022-04-01", iso.Date(civil.Date{Year: 2022, Month: time.April, Day: 1}))
}

func TestMonthAndText(t *testing.T) {
	f := newFormatter(t, "en-IN")
	assert.Equal(t, "May 2022", f.Month(time.May, 2022))

	s := "JOHN DOE"
	assert.Equal(t, "JOHN DOE", f.Text(&s))
	assert.Equal(t, "", f.Text(nil))
}

func TestNew_Errors(t *testing.T) {
	cfg := config.Default().Format
	cfg.Locale = "not a locale!"
	_, err := New(cfg)
	assert.ErrorContains(t, err, "parsing locale")

	cfg = config.Default().Format
	cfg.AmountPlaces = -1
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNew_DefaultLocale(t *testing.T) {
	f, err := New(config.Default().Format)
	require.NoError(t, err)
	assert.Equal(t, "en-IN", f.Locale().String())
}
