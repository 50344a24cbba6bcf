// Package pipeline runs a statement file through import, extraction,
// coercion and ledger construction.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerlens-dev/ledgerlens/internal/cache"
	"github.com/ledgerlens-dev/ledgerlens/internal/coerce"
	"github.com/ledgerlens-dev/ledgerlens/internal/config"
	"github.com/ledgerlens-dev/ledgerlens/internal/extract"
	"github.com/ledgerlens-dev/ledgerlens/internal/importer"
	"github.com/ledgerlens-dev/ledgerlens/internal/ledger"
	"github.com/ledgerlens-dev/ledgerlens/internal/model"
	"github.com/ledgerlens-dev/ledgerlens/internal/narration"
)

// Source is one statement file.
type Source struct {
	Name string
	Data []byte
}

// Pipeline turns statement files into ledgers. A Pipeline may be shared
// between goroutines; runs only share the cache.
type Pipeline struct {
	log        zerolog.Logger
	registry   *importer.Registry
	cache      *cache.Cache
	classifier ledger.Classifier
	policy     coerce.Policy
	extractor  *extract.Extractor
	coercer    *coerce.Coercer
	newRunID   func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithRegistry replaces the reader registry.
func WithRegistry(r *importer.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithCache replaces the load cache.
func WithCache(c *cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithClassifier replaces the narration classifier.
func WithClassifier(c ledger.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithPolicy replaces the coercion fallback policy.
func WithPolicy(policy coerce.Policy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		log:        zerolog.Nop(),
		registry:   importer.DefaultRegistry(),
		cache:      cache.New(cfg.Cache.MaxEntries),
		classifier: narration.NewClassifier(),
		policy:     coerce.DefaultPolicy,
		extractor:  extract.New(cfg.Layout),
		coercer:    coerce.New(cfg.Layout.DateLayout),
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cache returns the load cache so callers can evict entries.
func (p *Pipeline) Cache() *cache.Cache {
	return p.cache
}

// RunFile reads path and runs it.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*model.Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return p.Run(ctx, Source{Name: filepath.Base(path), Data: data})
}

// Run builds the ledger for src. Structural problems fail the whole run;
// unparsable cells are replaced per the policy and logged.
func (p *Pipeline) Run(ctx context.Context, src Source) (*model.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := p.newRunID()
	log := p.log.With().Str("run_id", runID).Str("source", src.Name).Logger()

	key := cache.Fingerprint(src.Data)
	entry, hit := p.cache.Get(key)
	if hit {
		log.Debug().Str("fingerprint", key).Msg("load cache hit")
	} else {
		var err error
		entry, err = p.load(log, src)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.Name, err)
		}
		p.cache.Put(key, entry)
	}

	p.reportIssues(log, entry.Rows)

	txns := ledger.Build(entry.Rows, p.policy, p.classifier)
	if verrs := ledger.Validate(txns); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, fmt.Errorf("building ledger: %w", errors.Join(errs...))
	}
	log.Debug().Int("transactions", len(txns)).Msg("ledger built")

	return &model.Ledger{
		Source:       src.Name,
		Fingerprint:  key,
		RunID:        runID,
		Transactions: txns,
	}, nil
}

func (p *Pipeline) load(log zerolog.Logger, src Source) (cache.Entry, error) {
	format := importer.DetectFormat(src.Name, src.Data)
	reader := p.registry.Get(format)
	if reader == nil {
		return cache.Entry{}, fmt.Errorf("no reader for format %q", format)
	}
	log.Debug().Str("format", format).Int("bytes", len(src.Data)).Msg("reading statement")

	table, err := reader.Read(bytes.NewReader(src.Data))
	if err != nil {
		return cache.Entry{}, err
	}

	raws, err := p.extractor.Extract(table)
	if err != nil {
		return cache.Entry{}, err
	}
	log.Debug().Int("grid_rows", len(table)).Int("rows", len(raws)).Msg("extracted window")

	return cache.Entry{Format: format, Rows: p.coercer.Rows(raws)}, nil
}

// reportIssues warns once per row with an unparsable cell. Empty cells are
// routine (a withdrawal row has no deposit) and only show at debug level.
func (p *Pipeline) reportIssues(log zerolog.Logger, rows []coerce.Row) {
	for _, row := range rows {
		var bad, missing []string
		for _, issue := range row.Issues() {
			if issue.Missing() {
				missing = append(missing, issue.Field)
			} else {
				bad = append(bad, issue.Error())
			}
		}
		if len(bad) > 0 {
			log.Warn().Int("line", row.Line).Strs("issues", bad).Msg("substituted unparsable cells")
		}
		if len(missing) > 0 {
			log.Debug().Int("line", row.Line).Strs("fields", missing).Msg("empty cells")
		}
	}
}
