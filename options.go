package geogo

import (
	"log/slog"

	"github.com/hupe1980/geogo/index/rtree"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	treeOptions      []func(o *rtree.Options)
}

// Option configures constructor behavior.
type Option func(*options)

// WithNodeSize configures the R-tree node fill degree. Larger maxEntries
// gives flatter trees and faster bulk loads, smaller values give faster
// queries on point-heavy data. minEntries must be at most maxEntries/2.
func WithNodeSize(minEntries, maxEntries int) Option {
	return func(o *options) {
		o.treeOptions = append(o.treeOptions, func(to *rtree.Options) {
			to.MinEntries = minEntries
			to.MaxEntries = maxEntries
		})
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geogo.BasicMetricsCollector{}
//	db := geogo.New[string](geogo.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
