// Package ckk - public types, sentinel errors and functional options.
//
// The search is configured through Option values applied on top of
// DefaultOptions(). Validation happens once, synchronously, before any
// search state is allocated (see validate.go).
package ckk

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
)

// Method selects the search strategy. Only MethodDefault is implemented.
type Method string

const (
	// MethodDefault is the multiway Complete Karmarkar-Karp search.
	MethodDefault Method = "default"
)

// Defaults used by DefaultOptions.
const (
	// DefaultEps is the tolerance for "strictly better" badness comparisons.
	DefaultEps = 1e-12

	// DefaultWorkers keeps Best on the sequential driver.
	DefaultWorkers = 1

	// cancelCheckMask controls how often the driver polls its context
	// (every 1024 node events).
	cancelCheckMask = 1023
)

// Sentinel errors. Callers match them with errors.Is; the package wraps them
// with details via fmt.Errorf("%w: ...").
var (
	// ErrEmptyInput is returned when no numbers are given.
	ErrEmptyInput = errors.New("ckk: empty input")

	// ErrInvalidParts is returned when the part count is < 1 or exceeds len(numbers).
	ErrInvalidParts = errors.New("ckk: invalid number of parts")

	// ErrInvalidNumber is returned for NaN or ±Inf inputs.
	ErrInvalidNumber = errors.New("ckk: number is not finite")

	// ErrNegativeNumber is returned for inputs below zero.
	ErrNegativeNumber = errors.New("ckk: negative number")

	// ErrUnsupportedMethod is returned for an unknown Method.
	ErrUnsupportedMethod = errors.New("ckk: unsupported method")

	// ErrInvalidOption is returned when Options fail validation (eps, workers, limits).
	ErrInvalidOption = errors.New("ckk: invalid option")

	// ErrCanceled is reported by Search.Err and Best when the context ends the search.
	ErrCanceled = errors.New("ckk: search canceled")
)

// Result is one complete partition produced by the search.
//
// Groups are canonical: each group is sorted ascending by value (ties by
// original index) and groups are ordered by ascending sum, then by their
// first element. Partition and Indices share that layout position for position.
type Result struct {
	// Partition holds the grouped values. Nil when indices were requested.
	Partition [][]float64

	// Indices holds the grouped 0-based input positions. Nil unless
	// WithReturnIndices(true) was given.
	Indices [][]int

	// Sizes holds the K group sums in the same order as the groups.
	Sizes []float64

	// Badness is max(Sizes) - min(Sizes).
	Badness float64
}

// Stats reports counters gathered by one search.
type Stats struct {
	Nodes     int64 // nodes visited (terminal and internal)
	Pruned    int64 // internal nodes cut by the lower bound
	Skipped   int64 // sibling merges skipped as symmetric duplicates
	Terminals int64 // complete partitions reached
	Emitted   int64 // results handed to the caller
	MaxDepth  int   // deepest stack observed
}

// Observer receives search events. Implementations must be cheap; the calls
// sit on the hot path. Parallel searches call an Observer from several
// goroutines, so implementations used with WithWorkers must be safe for
// concurrent use.
type Observer interface {
	NodeVisited(depth int)
	NodePruned(depth int)
	MergeSkipped(depth, count int)
	ResultEmitted(badness float64)
	SearchFinished(stats Stats)
}

// Option configures a search. Use with CompleteKarmarkarKarp or Best.
type Option func(*Options)

// Options holds the search configuration.
type Options struct {
	// Method selects the search strategy; only MethodDefault is accepted.
	Method Method

	// ReturnIndices switches Result from grouped values to grouped positions.
	ReturnIndices bool

	// Ties also emits partitions whose badness equals the best found so far,
	// pruning only strictly worse branches. Default false: every emitted
	// result strictly improves on the previous one.
	Ties bool

	// Eps is the tolerance used by badness comparisons. Must be >= 0.
	Eps float64

	// MaxResults stops the sequence after this many results (0 = unlimited).
	MaxResults int

	// Workers is the number of goroutines Best may use (>= 1).
	Workers int

	// Ctx cancels the search; defaults to context.Background().
	Ctx context.Context

	// Observer receives search events; nil disables observation.
	Observer Observer

	// Logger traces the search at high verbosity; defaults to logr.Discard().
	Logger logr.Logger
}

// DefaultOptions returns Options with:
//   - MethodDefault
//   - value results (ReturnIndices = false)
//   - strictly improving emission (Ties = false)
//   - Eps = DefaultEps, unlimited results, one worker
//   - Background context, no observer, discarding logger
func DefaultOptions() Options {
	return Options{
		Method:        MethodDefault,
		ReturnIndices: false,
		Ties:          false,
		Eps:           DefaultEps,
		MaxResults:    0,
		Workers:       DefaultWorkers,
		Ctx:           context.Background(),
		Observer:      nil,
		Logger:        logr.Discard(),
	}
}

// WithMethod selects the search method. Unknown methods are rejected by
// CompleteKarmarkarKarp with ErrUnsupportedMethod.
func WithMethod(m Method) Option {
	return func(o *Options) {
		o.Method = m
	}
}

// WithReturnIndices reports original positions instead of values.
func WithReturnIndices(on bool) Option {
	return func(o *Options) {
		o.ReturnIndices = on
	}
}

// WithTies enables emission of partitions tied with the best badness.
func WithTies(on bool) Option {
	return func(o *Options) {
		o.Ties = on
	}
}

// WithEps sets the comparison tolerance. Panics if eps < 0.
func WithEps(eps float64) Option {
	if eps < 0 {
		panic("ckk: WithEps(eps<0)")
	}

	return func(o *Options) {
		o.Eps = eps
	}
}

// WithMaxResults caps the number of emitted results (0 = unlimited).
// Panics if n < 0.
func WithMaxResults(n int) Option {
	if n < 0 {
		panic("ckk: WithMaxResults(n<0)")
	}

	return func(o *Options) {
		o.MaxResults = n
	}
}

// WithWorkers sets the worker count used by Best. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("ckk: WithWorkers(n<1)")
	}

	return func(o *Options) {
		o.Workers = n
	}
}

// WithContext sets the cancellation context. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithObserver installs an event observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithLogger installs a logr.Logger for search tracing (V(4) and V(5)).
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Badness returns max(sizes) - min(sizes), or 0 for an empty slice.
func Badness(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	lo, hi := sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	return hi - lo
}
