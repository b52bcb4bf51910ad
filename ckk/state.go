// Package ckk - persistent partition state.
//
// A search node is a list of K-tuples. Each tuple is a partial partition of
// a subset of the input into K groups, stored with its K group sums kept in
// ascending order. Merging two tuples combines their groups pairwise and
// yields a new tuple; neither operand is modified, so a child node shares
// every untouched tuple (and every untouched group) with its parent.
//
// Groups are bags: a leaf holds one input position and an inner bag is the
// concatenation of two bags. Concatenation is O(1); the positions are
// materialized when a terminal node is packaged, and when two groups of a
// merged tuple have equal sums and must be ordered by content.
package ckk

import "slices"

// bag is an immutable multiset of input positions. The nil bag is empty.
// A leaf has left == right == nil and carries its input value; an inner bag
// has both children set.
type bag struct {
	left, right *bag
	idx         int
	val         float64
	size        int
}

// leafBag returns a bag holding the single input position i with value v.
func leafBag(i int, v float64) *bag {
	return &bag{idx: i, val: v, size: 1}
}

// concatBags returns a ∪ b sharing both operands.
func concatBags(a, b *bag) *bag {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	return &bag{left: a, right: b, size: a.size + b.size}
}

// Len reports the number of positions in the bag.
func (b *bag) Len() int {
	if b == nil {
		return 0
	}

	return b.size
}

// walk calls fn on every leaf of b, left subtree first, using an explicit
// stack so deep concatenation chains do not grow the call stack.
//
// Complexity: O(size) time, O(depth) extra space.
func (b *bag) walk(fn func(leaf *bag)) {
	if b == nil {
		return
	}
	var (
		stack = []*bag{b}
		cur   *bag
	)
	for len(stack) > 0 {
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.left == nil {
			fn(cur)
			continue
		}
		stack = append(stack, cur.right, cur.left)
	}
}

// appendTo appends all positions of b to dst, left subtree first.
func (b *bag) appendTo(dst []int) []int {
	b.walk(func(leaf *bag) { dst = append(dst, leaf.idx) })

	return dst
}

// sortedMembers returns the values and the positions of b, each ascending.
func (b *bag) sortedMembers() ([]float64, []int) {
	var (
		vals = make([]float64, 0, b.Len())
		pos  = make([]int, 0, b.Len())
	)
	b.walk(func(leaf *bag) {
		vals = append(vals, leaf.val)
		pos = append(pos, leaf.idx)
	})
	slices.Sort(vals)
	slices.Sort(pos)

	return vals, pos
}

// compareBags orders two groups of equal sum: by their ascending member
// values compared lexicographically (a proper prefix sorts first, so the
// empty bag is smallest), then by their ascending positions.
//
// Complexity: O(m log m) for m = a.Len() + b.Len().
func compareBags(a, b *bag) int {
	if a == b {
		return 0
	}
	av, ap := a.sortedMembers()
	bv, bp := b.sortedMembers()
	if c := slices.Compare(av, bv); c != 0 {
		return c
	}

	return slices.Compare(ap, bp)
}

// tuple is a K-way partial partition. sums is ascending and groups[i] sums
// to sums[i]. A tuple is never mutated after construction.
type tuple struct {
	sums   []float64
	groups []*bag
	spread float64 // sums[K-1] - sums[0], cached
}

// newLeafTuple places input position idx with value v alone in the last
// (largest) group of a K-tuple; the other K-1 groups are empty.
func newLeafTuple(k, idx int, v float64) *tuple {
	t := &tuple{
		sums:   make([]float64, k),
		groups: make([]*bag, k),
	}
	t.sums[k-1] = v
	t.groups[k-1] = leafBag(idx, v)
	t.spread = t.sums[k-1] - t.sums[0]

	return t
}

// mergeTuples combines a and b under the pairing perm: the i-th smallest
// group of a is joined with the perm[i]-th largest group of b. The identity
// pairing is the Karmarkar-Karp merge (smallest with largest). The result is
// re-sorted ascending by sum; groups with equal sums are ordered by
// compareBags, so the layout depends only on group contents.
//
// Complexity: O(K²) comparisons worst case, plus the member walks of
// equal-sum groups.
func mergeTuples(a, b *tuple, perm []int) *tuple {
	var (
		k = len(a.sums)
		t = &tuple{
			sums:   make([]float64, k),
			groups: make([]*bag, k),
		}
		i, j, src int
		s         float64
		g         *bag
	)
	for i = 0; i < k; i++ {
		src = k - 1 - perm[i]
		t.sums[i] = a.sums[i] + b.sums[src]
		t.groups[i] = concatBags(a.groups[i], b.groups[src])
	}
	for i = 1; i < k; i++ {
		s, g = t.sums[i], t.groups[i]
		for j = i - 1; j >= 0 && sortsAfter(t.sums[j], t.groups[j], s, g); j-- {
			t.sums[j+1], t.groups[j+1] = t.sums[j], t.groups[j]
		}
		t.sums[j+1], t.groups[j+1] = s, g
	}
	t.spread = t.sums[k-1] - t.sums[0]

	return t
}

// sortsAfter reports whether group x with sum sx belongs after group y with sum sy.
func sortsAfter(sx float64, x *bag, sy float64, y *bag) bool {
	if sx != sy {
		return sx > sy
	}

	return compareBags(x, y) > 0
}
