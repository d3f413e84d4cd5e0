package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
	"github.com/okian/blackjack/pkg/metrics"
)

// Registry is the ordered, read-only set of summaries served by the API.
// It is fully built before it is returned and never changes afterwards, so
// concurrent readers need no locking.
type Registry struct {
	order    []string
	entries  map[string]strategy.Summary
	loadedAt time.Time
	took     time.Duration
}

// NewRegistry builds a registry from summaries in the given order.
func NewRegistry(summaries ...strategy.Summary) (*Registry, error) {
	r := &Registry{
		order:    make([]string, 0, len(summaries)),
		entries:  make(map[string]strategy.Summary, len(summaries)),
		loadedAt: time.Now(),
	}
	for _, s := range summaries {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.entries[s.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, s.Key)
		}
		r.order = append(r.order, s.Key)
		r.entries[s.Key] = s
	}
	return r, nil
}

// LoadRegistry reads every expected summary from store. Loading is
// all-or-nothing: one missing or invalid summary fails the whole load.
func LoadRegistry(ctx context.Context, store Store, opts ...LoadOption) (*Registry, error) {
	start := time.Now()
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = strategy.DefaultCatalog()
	}

	reg, err := loadRegistry(ctx, store, cfg)
	if err != nil {
		metrics.RecordRegistryLoadError()
		return nil, err
	}

	reg.took = time.Since(start)
	metrics.RecordRegistryLoad(float64(reg.took.Microseconds()) / 1000)
	metrics.UpdateStrategiesLoaded(reg.Len())
	if cfg.logger != nil {
		cfg.logger.Info(ctx, "strategy registry loaded",
			logger.Int("strategies", reg.Len()),
			logger.Duration("took", reg.took),
		)
	}
	return reg, nil
}

func loadRegistry(ctx context.Context, store Store, cfg loadConfig) (*Registry, error) {
	keys := cfg.expected
	if len(keys) == 0 {
		listed, err := store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		keys = listed
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("load registry: %w", ErrEmptyRegistry)
	}

	summaries := make([]strategy.Summary, 0, len(keys))
	for _, key := range keys {
		s, err := store.Load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		info := cfg.catalog.Lookup(key)
		if s.Name == "" {
			s.Name = info.Name
		}
		if s.Description == "" {
			s.Description = info.Description
		}
		if cfg.logger != nil {
			cfg.logger.Debug(ctx, "loaded strategy summary",
				logger.String("key", key),
				logger.Int("simulations", s.Simulations),
			)
		}
		summaries = append(summaries, s)
	}

	reg, err := NewRegistry(summaries...)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return reg, nil
}

// Get returns the summary for key, or ErrNotFound.
func (r *Registry) Get(key string) (strategy.Summary, error) {
	s, ok := r.entries[key]
	if !ok {
		return strategy.Summary{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return s, nil
}

// All returns every summary in load order. The slice is a fresh copy.
func (r *Registry) All() strategy.Ordered {
	out := make(strategy.Ordered, len(r.order))
	for i, key := range r.order {
		out[i] = strategy.Keyed{Key: key, Summary: r.entries[key]}
	}
	return out
}

// Keys returns the strategy keys in load order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of strategies.
func (r *Registry) Len() int { return len(r.order) }

// LoadedAt is when the registry was built.
func (r *Registry) LoadedAt() time.Time { return r.loadedAt }

// LoadDuration is how long LoadRegistry took; zero for NewRegistry.
func (r *Registry) LoadDuration() time.Duration { return r.took }
