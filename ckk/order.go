// Package ckk - node ordering.
//
// A node keeps its tuples sorted by spread (max sum - min sum), largest
// first. Equal spreads keep their age order: older tuples stay ahead of a
// freshly merged one. The two largest-spread tuples are always the next
// pair to merge, which is the Karmarkar-Karp differencing order. The second
// of the pair keeps its group order and the leading one is paired against
// it in reverse.
//
// At the root every input number becomes one tuple; numbers are ordered by
// value descending with the original index as tiebreak, so the whole search
// is independent of the caller's input order up to equal values.
package ckk

import (
	"cmp"
	"slices"
	"sort"
)

// node is one search state: tuples sorted by spread descending.
// A node with a single tuple is terminal.
type node []*tuple

// terminal reports whether the node holds one complete partition.
func (n node) terminal() bool { return len(n) == 1 }

// newRootNode builds the root for numbers split into k groups.
//
// Complexity: O(n log n + n·k).
func newRootNode(numbers []float64, k int) node {
	var (
		order = make([]int, len(numbers))
		root  = make(node, len(numbers))
		i     int
	)
	for i = range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		// Larger values first; equal values by original position.
		if c := cmp.Compare(numbers[y], numbers[x]); c != 0 {
			return c
		}

		return cmp.Compare(x, y)
	})
	for i = range order {
		root[i] = newLeafTuple(k, order[i], numbers[order[i]])
	}
	// For k >= 2 a leaf's spread is its value, so this is already sorted;
	// the stable sort keeps k == 1 (all spreads zero) in value order too.
	slices.SortStableFunc(root, bySpreadDesc)

	return root
}

// bySpreadDesc orders tuples by descending spread.
func bySpreadDesc(a, b *tuple) int {
	return cmp.Compare(b.spread, a.spread)
}

// child merges the two leading tuples under perm, n[1] as the operand that
// keeps its order, and returns the new node.
// The parent is not modified; the remaining tuples are shared.
//
// Complexity: O(len(n)) for the copy + O(K²) for the merge.
func (n node) child(perm []int) node {
	var (
		merged = mergeTuples(n[1], n[0], perm)
		rest   = n[2:]
		out    = make(node, 0, len(rest)+1)
		pos    int
	)
	// First position whose spread is strictly smaller: equal spreads stay ahead.
	pos = sort.Search(len(rest), func(i int) bool { return rest[i].spread < merged.spread })
	out = append(out, rest[:pos]...)
	out = append(out, merged)
	out = append(out, rest[pos:]...)

	return out
}

// lowerBound returns an admissible bound on the badness of every terminal
// below n: the leading spread minus the sum of all other spreads, clamped
// at zero. Merging tuples with spreads p >= q never yields less than p - q.
//
// Complexity: O(len(n)).
func (n node) lowerBound() float64 {
	var (
		lb = n[0].spread
		i  int
	)
	for i = 1; i < len(n); i++ {
		lb -= n[i].spread
		if lb <= 0 {
			return 0
		}
	}

	return lb
}
