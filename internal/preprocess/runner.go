package preprocess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/blackjack/internal/adapters/batch"
	repository "github.com/okian/blackjack/internal/adapters/repository"
	"github.com/okian/blackjack/internal/domain/aggregate"
	"github.com/okian/blackjack/internal/domain/simulation"
	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
	"github.com/okian/blackjack/pkg/metrics"
)

// Run aggregates every discovered result file and writes one summary per
// strategy. A failing strategy does not stop the others; the report lists
// every outcome and the returned error wraps ErrStrategiesFailed when any
// strategy failed.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := logger.Get().Named("preprocess").With(logger.String("run", report.RunID))

	log.Info(ctx, "starting preprocessing",
		logger.String("resultsDir", cfg.ResultsDir),
		logger.String("outDir", cfg.OutDir),
		logger.Float64("unitBet", cfg.UnitBet),
		logger.Int("samples", cfg.Samples),
		logger.Int("workers", cfg.Workers),
	)

	keys, err := discover(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "discovered result files", logger.Int("strategies", len(keys)))

	agg := aggregate.New(
		aggregate.WithUnitBet(cfg.UnitBet),
		aggregate.WithBankrollSamples(cfg.Samples),
	)
	store := repository.NewFileStore(cfg.OutDir)

	report.Outcomes = make([]Outcome, len(keys))
	jobs := make([]batch.Job, len(keys))
	for i, key := range keys {
		i, key := i, key
		report.Outcomes[i].Key = key
		jobs[i] = batch.Job{
			Name: key,
			Run: func(ctx context.Context) error {
				hands, err := processStrategy(ctx, cfg.ResultsDir, key, agg, store)
				report.Outcomes[i].Hands = hands
				return err
			},
		}
	}

	pool := batch.NewPool(
		batch.WithWorkers(cfg.Workers),
		batch.WithName("preprocess"),
		batch.WithLogger(log),
	)
	results := pool.Run(ctx, jobs)
	for i, res := range results {
		report.Outcomes[i].Took = res.Took
		report.Outcomes[i].Err = res.Err
		if res.Err != nil {
			metrics.RecordAggregationFailure(failureReason(res.Err))
		}
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	displayFinalStats(ctx, log, report)

	if err := batch.Join(results); err != nil {
		return report, fmt.Errorf("%w: %w", ErrStrategiesFailed, err)
	}
	return report, nil
}

// processStrategy reads, aggregates and saves one strategy. It returns the
// number of hands read.
func processStrategy(ctx context.Context, dir, key string, agg *aggregate.Aggregator, store repository.Store) (int, error) {
	start := time.Now()

	path := filepath.Join(dir, strategy.ResultFileName(key))
	file, err := os.Open(path) //nolint:gosec // path is built from a validated key
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrMissingResultFile, path)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	hands, err := simulation.Decode(ctx, file)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	summary, err := agg.Aggregate(ctx, key, hands)
	if err != nil {
		return len(hands), err
	}

	if err := store.Save(ctx, summary); err != nil {
		return len(hands), err
	}

	metrics.RecordAggregation(len(hands), float64(time.Since(start).Microseconds())/1000)
	return len(hands), nil
}

// discover lists strategy keys to process in lexical order. An explicit key
// list in cfg is used as is.
func discover(ctx context.Context, cfg Config) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cfg.Strategies) > 0 {
		return append([]string(nil), cfg.Strategies...), nil
	}

	entries, err := os.ReadDir(cfg.ResultsDir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key, err := strategy.KeyFromResultFile(e.Name())
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoResults, cfg.ResultsDir)
	}
	sort.Strings(keys)
	return keys, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, aggregate.ErrEmptyInput):
		return reasonEmptyInput
	case errors.Is(err, simulation.ErrMalformedRecord):
		return reasonMalformedRecord
	default:
		return reasonIO
	}
}

// displayFinalStats logs the run summary and each failure.
func displayFinalStats(ctx context.Context, log logger.Logger, report *Report) {
	for _, o := range report.Failed() {
		log.Error(ctx, "strategy failed", logger.String("strategy", o.Key), logger.Error(o.Err))
	}

	hands := 0
	for _, o := range report.Outcomes {
		hands += o.Hands
	}
	log.Info(ctx, "preprocessing finished",
		logger.Int("strategies", len(report.Outcomes)),
		logger.Int("written", report.Written()),
		logger.Int("failed", len(report.Failed())),
		logger.Int("hands", hands),
		logger.Duration("duration", report.Duration),
	)
}
