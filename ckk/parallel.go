// Package ckk - optimal partition search, sequential or parallel.
//
// Best returns only the optimal partition. With one worker it drains a
// Search and keeps the last result. With more workers:
//
//  1. The tree is expanded level by level until it has at least
//     splitFactor·workers open subproblems. Level order of same-depth nodes
//     is DFS order, so subproblem i precedes subproblem i+1 in the
//     sequential traversal.
//  2. Workers pull subproblems from a channel. Each subproblem is searched
//     with its own incumbent (reset per subproblem) and the shared
//     incumbent of all workers, which only ever tightens. A branch is cut
//     against the shared value only when strictly worse.
//  3. Every subproblem reports the first terminal of its best badness. The
//     merge walks subproblems in order and keeps a candidate only when it
//     strictly improves, exactly like the sequential driver.
//
// Hence the parallel answer equals the last result of the sequential
// sequence, independent of scheduling.
package ckk

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// splitFactor is the number of subproblems generated per worker.
const splitFactor = 8

// sharedBound is the incumbent badness shared by all workers.
type sharedBound struct {
	bits atomic.Uint64
}

func newSharedBound() *sharedBound {
	b := &sharedBound{}
	b.bits.Store(math.Float64bits(math.Inf(1)))

	return b
}

func (b *sharedBound) load() float64 {
	return math.Float64frombits(b.bits.Load())
}

// tighten lowers the bound to v if v is smaller; it never loosens.
func (b *sharedBound) tighten(v float64) {
	var old uint64
	for {
		old = b.bits.Load()
		if v >= math.Float64frombits(old) {
			return
		}
		if b.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// parallelStats aggregates worker counters without a lock.
type parallelStats struct {
	nodes, pruned, skipped, terminals *xsync.Counter
	maxDepth                          atomic.Int64
}

func newParallelStats() *parallelStats {
	return &parallelStats{
		nodes:     xsync.NewCounter(),
		pruned:    xsync.NewCounter(),
		skipped:   xsync.NewCounter(),
		terminals: xsync.NewCounter(),
	}
}

func (ps *parallelStats) add(s Stats, depthOffset int) {
	ps.nodes.Add(s.Nodes)
	ps.pruned.Add(s.Pruned)
	ps.skipped.Add(s.Skipped)
	ps.terminals.Add(s.Terminals)
	d := int64(s.MaxDepth + depthOffset)
	for {
		cur := ps.maxDepth.Load()
		if d <= cur || ps.maxDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

func (ps *parallelStats) snapshot() Stats {
	return Stats{
		Nodes:     ps.nodes.Value(),
		Pruned:    ps.pruned.Value(),
		Skipped:   ps.skipped.Value(),
		Terminals: ps.terminals.Value(),
		MaxDepth:  int(ps.maxDepth.Load()),
	}
}

// Best returns an optimal partition of numbers into parts groups.
//
// WithWorkers(n) with n > 1 searches disjoint subtrees concurrently; the
// result is identical to the sequential one. WithTies and WithMaxResults are
// ignored. On cancellation Best returns the best partition found so far
// (zero Result if none) together with an error wrapping ErrCanceled.
func Best(numbers []float64, parts int, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := validateAll(numbers, parts, o); err != nil {
		return Result{}, err
	}
	o.Ties = false
	o.MaxResults = 0
	if o.Workers == 1 {
		return bestSequential(numbers, parts, o)
	}

	return bestParallel(numbers, parts, o)
}

// bestSequential drains a Search and keeps its last result.
func bestSequential(numbers []float64, parts int, o Options) (Result, error) {
	var (
		s    = newSearch(numbers, parts, o)
		best Result
	)
	for res := range s.All() {
		best = res
	}

	return best, s.Err()
}

// bestParallel runs the split-and-merge search described in the file header.
func bestParallel(numbers []float64, parts int, o Options) (Result, error) {
	var (
		s        = newSearch(numbers, parts, o)
		root     = newRootNode(s.numbers, parts)
		n        = len(s.numbers)
		bound    = newSharedBound()
		stats    = newParallelStats()
		tasks    []node
		found    []*tuple
		splitSt  Stats
		canceled atomic.Bool
	)
	tasks, splitSt = splitFrontier(root, o.Workers*splitFactor)
	stats.add(splitSt, 0)
	found = make([]*tuple, len(tasks))
	o.Logger.V(4).Info("ckk: parallel search started",
		"numbers", n, "parts", parts, "workers", o.Workers, "subproblems", len(tasks))

	ch := make(chan int)
	var wg sync.WaitGroup
	wg.Add(o.Workers)
	for w := 0; w < o.Workers; w++ {
		go func() {
			defer wg.Done()
			e := newEngine(root, n, o)
			e.shared = bound
			for i := range ch {
				e.reset(tasks[i])
				e.stats = Stats{}
				found[i] = searchSubproblem(e, &canceled)
				stats.add(e.stats, n-len(tasks[i]))
			}
		}()
	}
	for i := range tasks {
		if canceled.Load() {
			break
		}
		ch <- i
	}
	close(ch)
	wg.Wait()

	var best *tuple
	for _, t := range found {
		if t == nil {
			continue
		}
		if best == nil || t.spread < best.spread-o.Eps {
			best = t
		}
	}

	final := stats.snapshot()
	var err error
	if canceled.Load() {
		err = fmt.Errorf("%w: %w", ErrCanceled, o.Ctx.Err())
	}
	var res Result
	if best != nil {
		res, _ = s.pack.pack(best)
		final.Emitted = 1
		if o.Observer != nil {
			o.Observer.ResultEmitted(res.Badness)
		}
	}
	if o.Observer != nil {
		o.Observer.SearchFinished(final)
	}
	o.Logger.V(4).Info("ckk: parallel search finished",
		"nodes", final.Nodes, "pruned", final.Pruned, "badness", res.Badness, "err", err)

	return res, err
}

// searchSubproblem returns the best terminal of the engine's subtree, the
// first one in DFS order among equals. It stops early on cancellation.
func searchSubproblem(e *engine, canceled *atomic.Bool) *tuple {
	var best *tuple
	for {
		if canceled.Load() {
			return best
		}
		t, stop := e.run()
		if stop {
			canceled.Store(true)

			return best
		}
		if t == nil {
			return best
		}
		best = t
	}
}

// splitFrontier expands root level by level until at least target open
// nodes exist or every node is terminal. The returned nodes are in DFS order.
func splitFrontier(root node, target int) ([]node, Stats) {
	var (
		frontier = []node{root}
		next     []node
		st       Stats
		grew     bool
	)
	for len(frontier) < target {
		next = make([]node, 0, len(frontier)*2)
		grew = false
		for _, nd := range frontier {
			if nd.terminal() {
				next = append(next, nd)
				continue
			}
			st.Nodes++
			grew = true
			cur := newPairing(nd[1], nd[0])
			for {
				ok, skipped := cur.next()
				st.Skipped += int64(skipped)
				if !ok {
					break
				}
				next = append(next, nd.child(cur.perm))
			}
		}
		frontier = next
		if !grew {
			break
		}
	}

	return frontier, st
}
