// Package ckk - lazy search driver.
//
// Search exposes the engine as a pull-based, single-pass sequence:
//
//	ROOT      - build the root node on the first pull
//	EXPANDING - run DFS units until a result is accepted
//	DONE      - exhausted, capped, or canceled; further pulls return false
//
// A Search is not restartable and not safe for concurrent use. Stopping
// early needs no cleanup: dropping the Search releases its stack.
package ckk

import (
	"fmt"
	"iter"
)

type driverState int

const (
	stateRoot driverState = iota
	stateExpanding
	stateDone
)

// Search is the lazy sequence of partitions returned by CompleteKarmarkarKarp.
type Search struct {
	numbers []float64
	k       int
	opts    Options

	state driverState
	eng   *engine
	pack  *packer

	emitted int
	err     error
	stats   Stats
}

// CompleteKarmarkarKarp validates the input and returns a lazy Search over
// the K-way partitions of numbers.
//
// In the default mode every result strictly improves on the previous one:
// the first result is the Karmarkar-Karp heuristic partition and the last
// one is optimal. With WithTies(true) partitions tied with the best badness
// so far are reported as well.
//
// All argument errors are returned here, before any search work:
// ErrUnsupportedMethod, ErrInvalidOption, ErrEmptyInput, ErrInvalidParts,
// ErrInvalidNumber and ErrNegativeNumber.
func CompleteKarmarkarKarp(numbers []float64, parts int, opts ...Option) (*Search, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := validateAll(numbers, parts, o); err != nil {
		return nil, err
	}

	return newSearch(numbers, parts, o), nil
}

// newSearch copies numbers so later caller writes cannot affect the sequence.
// Negative zero is folded into zero.
func newSearch(numbers []float64, parts int, opts Options) *Search {
	cp := make([]float64, len(numbers))
	for i, x := range numbers {
		if x == 0 {
			x = 0
		}
		cp[i] = x
	}

	return &Search{
		numbers: cp,
		k:       parts,
		opts:    opts,
		state:   stateRoot,
		pack:    newPacker(cp, opts.ReturnIndices, opts.Ties),
	}
}

// Next returns the next result, or false once the sequence is over.
// After false, Err distinguishes exhaustion (nil) from cancellation.
func (s *Search) Next() (Result, bool) {
	for {
		switch s.state {
		case stateRoot:
			s.eng = newEngine(newRootNode(s.numbers, s.k), len(s.numbers), s.opts)
			s.state = stateExpanding
			s.opts.Logger.V(4).Info("ckk: search started", "numbers", len(s.numbers), "parts", s.k, "ties", s.opts.Ties)

		case stateExpanding:
			t, canceled := s.eng.run()
			if canceled {
				s.err = fmt.Errorf("%w: %w", ErrCanceled, s.opts.Ctx.Err())
				s.finish()

				return Result{}, false
			}
			if t == nil {
				s.finish()

				return Result{}, false
			}
			res, fresh := s.pack.pack(t)
			if !fresh {
				continue
			}
			s.emitted++
			s.eng.stats.Emitted++
			if s.opts.Observer != nil {
				s.opts.Observer.ResultEmitted(res.Badness)
			}
			s.opts.Logger.V(5).Info("ckk: result", "badness", res.Badness, "sizes", res.Sizes)
			if s.opts.MaxResults > 0 && s.emitted >= s.opts.MaxResults {
				s.finish()
			}

			return res, true

		default:
			return Result{}, false
		}
	}
}

// finish moves to DONE, releases the stack and reports the final stats.
func (s *Search) finish() {
	s.state = stateDone
	if s.eng == nil {
		return
	}
	s.stats = s.eng.stats
	s.eng = nil
	if s.opts.Observer != nil {
		s.opts.Observer.SearchFinished(s.stats)
	}
	s.opts.Logger.V(4).Info("ckk: search finished",
		"nodes", s.stats.Nodes, "pruned", s.stats.Pruned, "emitted", s.stats.Emitted, "err", s.err)
}

// All returns the remaining results as an iterator. Breaking out of the
// loop leaves the Search where it stopped; a later Next continues from there.
func (s *Search) All() iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			res, ok := s.Next()
			if !ok || !yield(res) {
				return
			}
		}
	}
}

// Err returns the cancellation error (wrapping ErrCanceled and the context
// error) once Next has returned false, or nil.
func (s *Search) Err() error { return s.err }

// Stats returns the counters gathered so far.
func (s *Search) Stats() Stats {
	if s.eng != nil {
		return s.eng.stats
	}

	return s.stats
}
