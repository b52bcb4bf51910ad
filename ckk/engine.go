// Package ckk - depth-first branch-and-bound engine.
//
// The engine owns an explicit DFS stack of frames. Each frame holds a node
// and, once expanded, the cursor over its remaining siblings. One call to
// step performs exactly one unit of work:
//
//	descend   - build the next child of the top frame and push it
//	emit      - a terminal passed the acceptance test (popped)
//	prune     - a node's lower bound cannot beat the incumbent (popped)
//	backtrack - the top frame has no siblings left (popped)
//
// Acceptance and pruning depend on the mode:
//
//	improving (default): accept d < best-eps, prune lb >= best-eps
//	ties:                accept d <= best+eps, prune lb > best+eps
//
// A parallel worker additionally prunes nodes whose bound is strictly worse
// than the shared incumbent of all workers (see parallel.go).
package ckk

import (
	"context"
	"math"
)

type stepKind int

const (
	stepDescend stepKind = iota
	stepEmit
	stepPrune
	stepBacktrack
	stepExhausted
)

// frame is one level of the DFS path.
type frame struct {
	nd       node
	cur      pairing
	expanded bool
}

// engine is the search core shared by Search and the parallel workers.
type engine struct {
	// Configuration / policy
	n    int // input size; depth of a node is n - len(node)
	eps  float64
	ties bool

	// Search state
	stack []frame
	best  float64
	steps int

	// Optional shared incumbent (parallel workers only)
	shared *sharedBound

	ctx   context.Context
	obs   Observer
	stats Stats
}

// newEngine returns an engine positioned at root with no incumbent.
func newEngine(root node, n int, opts Options) *engine {
	e := &engine{
		n:    n,
		eps:  opts.Eps,
		ties: opts.Ties,
		best: math.Inf(1),
		ctx:  opts.Ctx,
		obs:  opts.Observer,
	}
	e.reset(root)

	return e
}

// reset discards the stack and incumbent and restarts at root.
func (e *engine) reset(root node) {
	e.stack = append(e.stack[:0], frame{nd: root})
	e.best = math.Inf(1)
}

// canceled polls the context on the first step and then every
// cancelCheckMask+1 steps.
func (e *engine) canceled() bool {
	check := e.steps&cancelCheckMask == 0
	e.steps++
	if !check || e.ctx == nil {
		return false
	}
	select {
	case <-e.ctx.Done():
		return true
	default:
		return false
	}
}

// accepts reports whether a terminal of badness d is emitted.
func (e *engine) accepts(d float64) bool {
	if e.ties {
		return d <= e.best+e.eps
	}

	return d < e.best-e.eps
}

// prunes reports whether a subtree with lower bound lb can be skipped.
func (e *engine) prunes(lb float64) bool {
	if e.ties {
		if lb > e.best+e.eps {
			return true
		}
	} else if lb >= e.best-e.eps {
		return true
	}
	if e.shared != nil && lb > e.shared.load()+e.eps {
		return true
	}

	return false
}

// pop drops the top frame.
func (e *engine) pop() {
	e.stack[len(e.stack)-1] = frame{}
	e.stack = e.stack[:len(e.stack)-1]
}

// step performs one unit of DFS work. On stepEmit the accepted terminal
// tuple is returned and the incumbent has already been tightened.
func (e *engine) step() (stepKind, *tuple) {
	if len(e.stack) == 0 {
		return stepExhausted, nil
	}
	var (
		top   = &e.stack[len(e.stack)-1]
		depth = e.n - len(top.nd)
	)
	if !top.expanded {
		e.stats.Nodes++
		if e.obs != nil {
			e.obs.NodeVisited(depth)
		}
		if top.nd.terminal() {
			t := top.nd[0]
			e.pop()
			e.stats.Terminals++
			if !e.accepts(t.spread) {
				return stepBacktrack, nil
			}
			if t.spread < e.best {
				e.best = t.spread
			}
			if e.shared != nil {
				e.shared.tighten(t.spread)
			}

			return stepEmit, t
		}
		if e.prunes(top.nd.lowerBound()) {
			e.pop()
			e.stats.Pruned++
			if e.obs != nil {
				e.obs.NodePruned(depth)
			}

			return stepPrune, nil
		}
		top.expanded = true
		top.cur = newPairing(top.nd[1], top.nd[0])
	}

	ok, skipped := top.cur.next()
	if skipped > 0 {
		e.stats.Skipped += int64(skipped)
		if e.obs != nil {
			e.obs.MergeSkipped(depth, skipped)
		}
	}
	if !ok {
		e.pop()

		return stepBacktrack, nil
	}
	ch := top.nd.child(top.cur.perm)
	e.stack = append(e.stack, frame{nd: ch})
	if len(e.stack) > e.stats.MaxDepth {
		e.stats.MaxDepth = len(e.stack)
	}

	return stepDescend, nil
}

// run steps until an accepted terminal, exhaustion, or cancellation.
// It returns the terminal (nil when none) and whether the context ended the run.
func (e *engine) run() (*tuple, bool) {
	for {
		if e.canceled() {
			return nil, true
		}
		switch kind, t := e.step(); kind {
		case stepEmit:
			return t, false
		case stepExhausted:
			return nil, false
		}
	}
}
