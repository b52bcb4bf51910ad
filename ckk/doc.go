// Package ckk partitions a multiset of non-negative numbers into K groups
// with the Complete Karmarkar-Karp (CKK) branch-and-bound search.
//
// The objective is the badness of a partition: max(group sum) - min(group sum).
//
// What it provides:
//
//   - CompleteKarmarkarKarp: a lazy, single-pass Search over improving
//     partitions. The first result is the Karmarkar-Karp differencing
//     partition; every following result is strictly better; the last one is
//     optimal. WithTies(true) also reports partitions tied with the best.
//   - Best: the optimal partition only, optionally searched by several
//     workers (WithWorkers) with a deterministic, scheduling-independent answer.
//
// Search tree:
//
//	root      one K-tuple per number: K-1 empty groups and the number alone
//	child     merge the two tuples of largest spread under one of the K!
//	          group pairings; the Karmarkar-Karp pairing (smallest sums with
//	          largest sums) first, symmetric pairings of equal sums skipped
//	terminal  a single tuple left; it is a complete K-way partition
//
// Groups of equal sum inside a tuple are ordered by their ascending member
// values, then positions, so the exploration order is fully determined.
//
// Pruning: the badness of any terminal below a node is at least the largest
// spread minus the sum of all other spreads (clamped at 0). A node whose
// bound cannot beat the incumbent is cut; a perfect partition cuts everything.
//
// Results:
//
//	Partition [][]float64 grouped values (default)
//	Indices   [][]int     grouped 0-based positions (WithReturnIndices)
//	Sizes     []float64   group sums, same order
//
// Groups are sorted ascending and ordered by ascending sum, then first
// element, so the same partition always prints the same way.
//
// Errors (all returned before any search work):
//
//	ErrUnsupportedMethod  method other than MethodDefault
//	ErrInvalidOption      negative eps, workers < 1, negative result cap
//	ErrEmptyInput         no numbers
//	ErrInvalidParts       K < 1 or K > len(numbers)
//	ErrInvalidNumber      NaN or ±Inf
//	ErrNegativeNumber     value below zero
//
// Complexity:
//   - Worst case exponential in n; per node O(n) for the child copy and
//     bound plus O(K!·K) pairing enumeration.
//   - Memory: O(n·depth) for the DFS path; groups are shared between nodes.
//
// Concurrency:
//   - A Search is not safe for concurrent use.
//   - Best with WithWorkers(n>1) spawns n goroutines and joins them before returning.
package ckk
