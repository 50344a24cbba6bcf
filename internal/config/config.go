package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional config file name.
const FileName = "ledgerlens.yaml"

// Config represents the top-level ledgerlens.yaml configuration.
type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Format  FormatConfig  `yaml:"format"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// LayoutConfig describes the fixed statement layout.
type LayoutConfig struct {
	HeaderRows     int    `yaml:"header_rows"`
	FooterRows     int    `yaml:"footer_rows"`
	Columns        int    `yaml:"columns"`
	DroppedColumns []int  `yaml:"dropped_columns"`
	SeparatorRow   int    `yaml:"separator_row"` // index within the window, -1 = none
	DateLayout     string `yaml:"date_layout"`   // Go reference layout, e.g. "02/01/06"
}

// FormatConfig controls presentation formatting.
type FormatConfig struct {
	Locale       string `yaml:"locale"` // BCP 47 tag, e.g. "en-IN"
	AmountPlaces int    `yaml:"amount_places"`
	DateLayout   string `yaml:"date_layout"`
	Currency     string `yaml:"currency"`
}

// CacheConfig bounds the in-process load cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// MinRows returns the smallest grid that leaves a non-empty window.
func (l LayoutConfig) MinRows() int {
	return l.HeaderRows + l.FooterRows + 1
}

// Validate checks that the layout is internally consistent.
func (l LayoutConfig) Validate() error {
	if l.HeaderRows < 0 || l.FooterRows < 0 {
		return fmt.Errorf("layout: header_rows and footer_rows must be non-negative")
	}
	if l.Columns-len(l.DroppedColumns) != 5 {
		return fmt.Errorf("layout: %d columns minus %d dropped must leave 5", l.Columns, len(l.DroppedColumns))
	}
	seen := make(map[int]bool, len(l.DroppedColumns))
	for _, c := range l.DroppedColumns {
		if c < 0 || c >= l.Columns {
			return fmt.Errorf("layout: dropped column %d out of range", c)
		}
		if seen[c] {
			return fmt.Errorf("layout: dropped column %d listed twice", c)
		}
		seen[c] = true
	}
	if l.DateLayout == "" {
		return fmt.Errorf("layout: date_layout is required")
	}
	return nil
}

// Load reads a ledgerlens.yaml file from disk. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for the HDFC-style XLS statement export.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			HeaderRows:     21,
			FooterRows:     18,
			Columns:        7,
			DroppedColumns: []int{0, 2},
			SeparatorRow:   1,
			DateLayout:     "02/01/06",
		},
		Format: FormatConfig{
			Locale:       "en-IN",
			AmountPlaces: 2,
			DateLayout:   "02 January 2006",
			Currency:     "Rs",
		},
		Cache: CacheConfig{
			MaxEntries: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
