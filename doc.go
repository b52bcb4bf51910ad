// Package numpart is an exact multiway number-partitioning toolkit: split a
// multiset of non-negative numbers into K groups whose sums are as equal as
// possible, and prove it.
//
// 🚀 What is inside?
//
//	ckk/       - Complete Karmarkar-Karp branch-and-bound: a lazy sequence of
//	             ever better partitions ending in an optimal one, plus a
//	             parallel optimal search (Best)
//	instance/  - problem instances as YAML documents and seeded random generation
//	metrics/   - search observers (no-op, Prometheus)
//	cmd/ckk/   - the command-line front end
//
// ✨ Guarantees
//
//   - Exact: the last result of a complete run has minimal max-sum minus min-sum.
//   - Deterministic: same input, same options ⇒ same sequence, also in parallel mode.
//   - Lazy: stop pulling whenever the current partition is good enough.
//
// Quick example:
//
//	s, _ := ckk.CompleteKarmarkarKarp([]float64{4, 5, 6, 7, 8}, 3)
//	for res := range s.All() {
//		fmt.Println(res.Partition, res.Sizes) // [[8] [4 7] [5 6]] [8 11 11]
//	}
//
//	go get github.com/katalvlaran/numpart/ckk
package numpart
