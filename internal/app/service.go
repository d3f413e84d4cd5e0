// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	repository "github.com/okian/blackjack/internal/adapters/repository"
	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
	"github.com/okian/blackjack/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultDataDir             = "processed_data"
	defaultComparisonThreshold = 16
)

// Lookup views reported to metrics.
const (
	viewOne             = "one"
	viewAll             = "all"
	viewComparison      = "comparison"
	viewQuickComparison = "quick_comparison"
)

// Service answers strategy queries from a registry loaded once at Start.
type Service struct {
	mu sync.Mutex

	registry atomic.Pointer[repository.Registry]
	preset   *repository.Registry

	// Configuration
	dataDir             string
	expectedKeys        []string
	comparisonThreshold int
	catalog             *strategy.Catalog

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the directory holding {key}_summary.json files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithStrategies fixes the set and order of strategies to load. Empty means
// discover every summary file in the data dir.
func WithStrategies(keys []string) Option {
	return func(s *Service) {
		s.expectedKeys = append([]string(nil), keys...)
	}
}

// WithComparisonThreshold picks the fixed-threshold strategy shown in
// comparison views.
func WithComparisonThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.comparisonThreshold = threshold
		}
	}
}

// WithCatalog sets the catalog used to fill missing names and descriptions.
func WithCatalog(c *strategy.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithRegistry serves an already built registry instead of loading one.
func WithRegistry(r *repository.Registry) Option {
	return func(s *Service) {
		s.preset = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:             defaultDataDir,
		comparisonThreshold: defaultComparisonThreshold,
		catalog:             strategy.DefaultCatalog(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the registry. It fails if any expected summary is missing or
// invalid; the service must not serve traffic in that case.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	reg := s.preset
	if reg == nil {
		s.logger.Info(ctx, "loading strategy summaries", logger.String("dataDir", s.dataDir))
		loaded, err := repository.LoadRegistry(ctx,
			repository.NewFileStore(s.dataDir),
			repository.WithExpectedKeys(s.expectedKeys),
			repository.WithCatalog(s.catalog),
			repository.WithLogger(s.logger),
		)
		if err != nil {
			return err
		}
		reg = loaded
	}

	s.registry.Store(reg)
	s.started = true
	metrics.UpdateStrategiesLoaded(reg.Len())

	s.logger.Info(ctx, "strategy service started",
		logger.Int("strategies", reg.Len()),
		logger.Int("comparisonThreshold", s.comparisonThreshold),
	)
	return nil
}

// Stop marks the service as stopped. Loaded data stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "strategy service stopped")
}

// Ready reports whether a registry has been loaded.
func (s *Service) Ready() bool { return s.registry.Load() != nil }

// DataDir returns the configured summary directory.
func (s *Service) DataDir() string { return s.dataDir }

// Count returns the number of loaded strategies.
func (s *Service) Count() int {
	reg := s.registry.Load()
	if reg == nil {
		return 0
	}
	return reg.Len()
}

// GetSummary returns one strategy's summary.
func (s *Service) GetSummary(_ context.Context, key string) (strategy.Summary, error) {
	reg := s.registry.Load()
	if reg == nil {
		return strategy.Summary{}, ErrNotReady
	}
	metrics.RecordSummaryLookup(viewOne)
	sum, err := reg.Get(key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordSummaryLookupMiss()
			return strategy.Summary{}, &UnknownStrategyError{Key: key}
		}
		return strategy.Summary{}, err
	}
	return sum, nil
}

// GetAllSummaries returns every summary in registry order.
func (s *Service) GetAllSummaries(_ context.Context) strategy.Ordered {
	reg := s.registry.Load()
	if reg == nil {
		return strategy.Ordered{}
	}
	metrics.RecordSummaryLookup(viewAll)
	return reg.All()
}

// GetComparison returns all summaries plus chart rows for the compared set.
func (s *Service) GetComparison(_ context.Context) Comparison {
	out := Comparison{Strategies: strategy.Ordered{}, ComparisonData: []ComparisonRow{}}
	reg := s.registry.Load()
	if reg == nil {
		return out
	}
	metrics.RecordSummaryLookup(viewComparison)
	out.Strategies = reg.All()
	for _, k := range out.Strategies {
		if s.compared(k.Key) {
			out.ComparisonData = append(out.ComparisonData, comparisonRow(k.Summary))
		}
	}
	return out
}

// GetQuickComparison returns quick rows for the compared set.
func (s *Service) GetQuickComparison(_ context.Context) QuickComparison {
	out := QuickComparison{ComparisonData: []QuickRow{}}
	reg := s.registry.Load()
	if reg == nil {
		return out
	}
	metrics.RecordSummaryLookup(viewQuickComparison)
	for _, k := range reg.All() {
		if s.compared(k.Key) {
			out.ComparisonData = append(out.ComparisonData, quickRow(k.Summary))
		}
	}
	return out
}

// GetStats returns registry statistics for monitoring.
func (s *Service) GetStats() Stats {
	st := Stats{
		Keys:                []string{},
		DataDir:             s.dataDir,
		ComparisonThreshold: s.comparisonThreshold,
	}
	reg := s.registry.Load()
	if reg == nil {
		return st
	}
	st.Strategies = reg.Len()
	st.Keys = reg.Keys()
	st.LoadedAt = reg.LoadedAt().UTC().Format(time.RFC3339)
	st.LoadDurationMs = float64(reg.LoadDuration().Microseconds()) / 1000
	return st
}

// compared reports whether key belongs in comparison views: every strategy
// except fixed-threshold ones other than the configured threshold.
func (s *Service) compared(key string) bool {
	if !strategy.IsFixedThreshold(key) {
		return true
	}
	return key == strategy.FixedThresholdPrefix+strconv.Itoa(s.comparisonThreshold)
}
