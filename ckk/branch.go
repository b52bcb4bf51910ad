// Package ckk - branch generation with symmetry pruning.
//
// The children of a node are the K! ways to pair the groups of its two
// leading tuples, where a is the second tuple and b the leading one. A pairing is a permutation perm: the i-th smallest
// group of a joins the perm[i]-th largest group of b. Permutations are
// enumerated in lexicographic order, so the identity (smallest with largest,
// the Karmarkar-Karp merge) is always explored first.
//
// Symmetry: if two groups of a have equal sums they are interchangeable, and
// so are two equal-sum groups of b. Of every class of pairings related by
// such swaps only the lexicographically smallest one is kept. It is the
// unique permutation that is increasing on each run of equal sums of a and
// whose inverse is increasing on each run of equal sums of b.
//
// Complexity: enumeration is O(K!·K) per node in the worst case; K is the
// part count and is small in practice.
package ckk

// pairing is the per-frame sibling cursor.
type pairing struct {
	a, b    []float64 // a ascending, b descending
	perm    []int
	inv     []int
	started bool
}

// newPairing prepares the cursor for mergeTuples(x, y, perm).
func newPairing(x, y *tuple) pairing {
	var (
		k = len(x.sums)
		p = pairing{
			a:    x.sums,
			b:    make([]float64, k),
			perm: make([]int, k),
			inv:  make([]int, k),
		}
		i int
	)
	for i = 0; i < k; i++ {
		p.b[i] = y.sums[k-1-i]
		p.perm[i] = i
	}

	return p
}

// next advances to the next non-redundant pairing. It returns false once the
// permutations are exhausted, along with the number of pairings skipped as
// symmetric duplicates during this call.
func (p *pairing) next() (ok bool, skipped int) {
	for {
		if !p.started {
			p.started = true
		} else if !nextPermutation(p.perm) {
			return false, skipped
		}
		if p.canonical() {
			return true, skipped
		}
		skipped++
	}
}

// canonical reports whether perm is the representative of its symmetry class.
// Equal sums are contiguous in both sorted sequences, so adjacent checks suffice.
func (p *pairing) canonical() bool {
	var (
		k = len(p.perm)
		i int
	)
	for i = 0; i < k; i++ {
		p.inv[p.perm[i]] = i
	}
	for i = 0; i+1 < k; i++ {
		if p.a[i] == p.a[i+1] && p.perm[i] > p.perm[i+1] {
			return false
		}
		if p.b[i] == p.b[i+1] && p.inv[i] > p.inv[i+1] {
			return false
		}
	}

	return true
}

// nextPermutation rearranges a into its lexicographic successor and reports
// false (leaving a unchanged) when a is already the last permutation.
func nextPermutation(a []int) bool {
	var i, j int
	i = len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j = len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for j, i = len(a)-1, i+1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}

	return true
}
