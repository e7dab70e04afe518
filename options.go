package subspace

import (
	"math/bits"
	"runtime"
)

// DefaultEpsilon is the truncation constant used when no WithEpsilon option
// is given. It serves two roles:
//
//   - relative energy threshold: an eigenpair is kept iff its value is at
//     least DefaultEpsilon times the largest value of the same decomposition
//   - absolute residual tolerance: a direction is added to the null-space
//     basis iff its residual norm exceeds DefaultEpsilon
const DefaultEpsilon = 0.1

type options struct {
	epsilon          float64
	logger           *Logger
	metricsCollector MetricsCollector
	parallelDepth    int
}

// Option configures leaf construction, merging and tree builds.
type Option func(*options)

// WithEpsilon overrides DefaultEpsilon. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection.
//
// Example:
//
//	collector := &subspace.BasicMetricsCollector{}
//	err := subspace.Build(ctx, points, root, subspace.WithMetricsCollector(collector))
//	stats := collector.GetStats()
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithParallelDepth sets the tree depth down to which Build constructs
// sibling subtrees concurrently. Zero builds the whole tree on the calling
// goroutine. Negative values are ignored.
func WithParallelDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.parallelDepth = depth
		}
	}
}

func defaultParallelDepth() int {
	// 2^depth concurrent subtrees roughly saturate GOMAXPROCS.
	return bits.Len(uint(runtime.GOMAXPROCS(0)))
}

func applyOptions(optFns []Option) options {
	o := options{
		epsilon:          DefaultEpsilon,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		parallelDepth:    defaultParallelDepth(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
