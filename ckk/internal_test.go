package ckk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPermutation_Lexicographic(t *testing.T) {
	a := []int{0, 1, 2}
	var seen [][]int
	for {
		seen = append(seen, append([]int(nil), a...))
		if !nextPermutation(a) {
			break
		}
	}
	assert.Equal(t, [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}, seen)
	assert.Equal(t, []int{2, 1, 0}, a, "last permutation is left unchanged")
}

// countPairings drains a cursor and returns (children, skipped).
func countPairings(p pairing) (int, int) {
	var children, skipped int
	for {
		ok, s := p.next()
		skipped += s
		if !ok {
			return children, skipped
		}
		children++
	}
}

func TestPairing_Symmetry(t *testing.T) {
	tup := func(sums ...float64) *tuple {
		return &tuple{sums: sums, groups: make([]*bag, len(sums)), spread: sums[len(sums)-1] - sums[0]}
	}

	cases := []struct {
		name     string
		x, y     *tuple
		children int
		skipped  int
	}{
		{"all distinct", tup(1, 2, 3), tup(4, 6, 9), 6, 0},
		{"two leaves", tup(0, 0, 5), tup(0, 0, 3), 2, 4},
		{"equal pair in b", tup(1, 2, 3), tup(0, 0, 5), 3, 3},
		{"equal pair in a and b", tup(0, 0, 5), tup(1, 1, 4), 2, 4},
		{"two parts", tup(0, 4), tup(0, 3), 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			children, skipped := countPairings(newPairing(tc.x, tc.y))
			assert.Equal(t, tc.children, children)
			assert.Equal(t, tc.skipped, skipped)
		})
	}
}

func TestPairing_IdentityFirst(t *testing.T) {
	x := newLeafTuple(3, 0, 8)
	y := newLeafTuple(3, 1, 7)
	p := newPairing(x, y)
	ok, _ := p.next()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, p.perm)

	m := mergeTuples(x, y, p.perm)
	assert.Equal(t, []float64{0, 7, 8}, m.sums, "Karmarkar-Karp merge puts 8 and 7 apart")
	assert.Equal(t, 8.0, m.spread)
}

func TestBag_AppendTo(t *testing.T) {
	var empty *bag
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, []int{9}, empty.appendTo([]int{9}))

	b := concatBags(concatBags(leafBag(0, 4), leafBag(1, 1)), concatBags(nil, leafBag(2, 3)))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{0, 1, 2}, b.appendTo(nil))
	assert.Same(t, b, concatBags(b, nil))

	vals, pos := b.sortedMembers()
	assert.Equal(t, []float64{1, 3, 4}, vals)
	assert.Equal(t, []int{0, 1, 2}, pos)
}

func TestCompareBags(t *testing.T) {
	one := leafBag(0, 1)
	oneTwo := concatBags(leafBag(1, 2), leafBag(2, 1))

	assert.Equal(t, 0, compareBags(nil, nil))
	assert.Equal(t, -1, compareBags(nil, one), "the empty group sorts first")
	assert.Equal(t, -1, compareBags(one, oneTwo), "a proper prefix sorts first")
	assert.Equal(t, 1, compareBags(leafBag(3, 2), oneTwo))
	assert.Equal(t, 0, compareBags(oneTwo, oneTwo))

	// Equal values fall back to positions.
	assert.Equal(t, -1, compareBags(leafBag(4, 7), leafBag(5, 7)))
}

func TestMergeTuples_SortsAndShares(t *testing.T) {
	a := &tuple{sums: []float64{1, 5}, groups: []*bag{leafBag(0, 1), leafBag(1, 5)}, spread: 4}
	b := &tuple{sums: []float64{2, 3}, groups: []*bag{leafBag(2, 2), leafBag(3, 3)}, spread: 1}

	// identity: 1+3, 5+2
	m := mergeTuples(a, b, []int{0, 1})
	assert.Equal(t, []float64{4, 7}, m.sums)
	assert.Equal(t, []int{0, 3}, m.groups[0].appendTo(nil))
	assert.Equal(t, []int{1, 2}, m.groups[1].appendTo(nil))
	assert.Equal(t, 3.0, m.spread)

	// swapped: 1+2, 5+3
	m = mergeTuples(a, b, []int{1, 0})
	assert.Equal(t, []float64{3, 8}, m.sums)
	assert.Equal(t, []float64{1, 5}, a.sums, "operands are never modified")
}

func TestMergeTuples_EqualSumsByContent(t *testing.T) {
	a := &tuple{sums: []float64{2, 3}, groups: []*bag{leafBag(0, 2), leafBag(1, 3)}, spread: 1}
	b := &tuple{sums: []float64{1, 2}, groups: []*bag{leafBag(2, 1), leafBag(3, 2)}, spread: 1}

	// identity: {2,2} then {3,1}; both sum to 4, and [1 3] < [2 2].
	m := mergeTuples(a, b, []int{0, 1})
	assert.Equal(t, []float64{4, 4}, m.sums)
	assert.Equal(t, []int{1, 2}, m.groups[0].appendTo(nil))
	assert.Equal(t, []int{0, 3}, m.groups[1].appendTo(nil))
	assert.Equal(t, 0.0, m.spread)
}

func TestNode_ChildAndBound(t *testing.T) {
	root := newRootNode([]float64{2, 5, 2, 3}, 2)
	require.Len(t, root, 4)
	spreads := make([]float64, len(root))
	for i, tp := range root {
		spreads[i] = tp.spread
	}
	assert.Equal(t, []float64{5, 3, 2, 2}, spreads)
	assert.Equal(t, []int{0, 2}, []int{root[2].groups[1].idx, root[3].groups[1].idx},
		"equal values keep input order")
	assert.Equal(t, 0.0, root.lowerBound())
	assert.False(t, root.terminal())

	ch := root.child([]int{0, 1})
	require.Len(t, ch, 3)
	assert.Equal(t, []float64{3, 5}, ch[2].sums, "a merged tuple goes after equal spreads")
	assert.Same(t, root[2], ch[0], "untouched tuples are shared")
	assert.Len(t, root, 4, "the parent is not modified")

	assert.Equal(t, 5.0, newRootNode([]float64{10, 3, 2}, 2).lowerBound())
}

func TestEngine_AcceptAndPrune(t *testing.T) {
	opts := DefaultOptions()
	e := newEngine(newRootNode([]float64{1, 2}, 2), 2, opts)
	assert.True(t, e.accepts(5), "anything beats +Inf")
	e.best = 3
	assert.False(t, e.accepts(3))
	assert.True(t, e.accepts(2))
	assert.True(t, e.prunes(3))
	assert.False(t, e.prunes(2))

	opts.Ties = true
	e = newEngine(newRootNode([]float64{1, 2}, 2), 2, opts)
	e.best = 3
	assert.True(t, e.accepts(3))
	assert.False(t, e.prunes(3))
	assert.True(t, e.prunes(3.5))

	e.shared = newSharedBound()
	e.shared.tighten(1)
	e.shared.tighten(2)
	assert.Equal(t, 1.0, e.shared.load(), "the shared bound never loosens")
	assert.True(t, e.prunes(1.5))
}

func TestSplitFrontier_DFSOrder(t *testing.T) {
	root := newRootNode([]float64{4, 5, 6, 7, 8}, 2)
	frontier, st := splitFrontier(root, 4)
	assert.GreaterOrEqual(t, len(frontier), 4)
	assert.Positive(t, st.Nodes)

	// Searching the frontier nodes in order finds the same terminals as the
	// plain sequential engine.
	opts := DefaultOptions()
	opts.Ties = true
	opts.Eps = math.Inf(1)
	var viaFrontier []float64
	for _, nd := range frontier {
		e := newEngine(nd, 5, opts)
		for {
			tp, _ := e.run()
			if tp == nil {
				break
			}
			viaFrontier = append(viaFrontier, tp.sums...)
		}
	}
	e := newEngine(root, 5, opts)
	var direct []float64
	for {
		tp, _ := e.run()
		if tp == nil {
			break
		}
		direct = append(direct, tp.sums...)
	}
	assert.Equal(t, direct, viaFrontier)
}

func TestPacker_DedupSurvivesHashCollisions(t *testing.T) {
	nums := []float64{1, 2, 3, 4}
	pair := func(a, b, c, d int) *tuple {
		return &tuple{
			sums: []float64{5, 5},
			groups: []*bag{
				concatBags(leafBag(a, nums[a]), leafBag(b, nums[b])),
				concatBags(leafBag(c, nums[c]), leafBag(d, nums[d])),
			},
		}
	}
	p := newPacker(nums, false, true)
	p.hash = func([]byte) uint64 { return 7 }

	res, ok := p.pack(pair(0, 3, 1, 2))
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 4}, {2, 3}}, res.Partition)

	_, ok = p.pack(pair(1, 2, 3, 0))
	assert.False(t, ok, "the same partition in another layout is a duplicate")

	res, ok = p.pack(pair(0, 1, 2, 3))
	require.True(t, ok, "a distinct partition in the same bucket is kept")
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, res.Partition)
	assert.Len(t, p.seen[7], 2)
}
