// Package ckk_test provides lightweight testing helpers shared across
// *_test.go files in this package: result collection, partition validity
// checks and a brute-force optimum for small inputs.
package ckk_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numpart/ckk"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsTiny matches ckk.DefaultEps.
	epsTiny = 1e-12

	// seedDet is the base seed for random instances.
	seedDet = int64(42)

	// bruteMaxN bounds the brute-force reference (K^N assignments).
	bruteMaxN = 8

	// randomTrials is the number of random instances per property test.
	randomTrials = 60
)

// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

// Repeat runs fn n times. Useful for determinism checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// collect drains s.
func collect(s *ckk.Search) []ckk.Result {
	var out []ckk.Result
	for res := range s.All() {
		out = append(out, res)
	}

	return out
}

// mustCollect builds a search and drains it, failing the test on error.
func mustCollect(t *testing.T, nums []float64, k int, opts ...ckk.Option) []ckk.Result {
	t.Helper()
	s, err := ckk.CompleteKarmarkarKarp(nums, k, opts...)
	require.NoError(t, err)
	out := collect(s)
	require.NoError(t, s.Err())

	return out
}

// sizesOf extracts the Sizes of every result.
func sizesOf(rs []ckk.Result) [][]float64 {
	out := make([][]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Sizes
	}

	return out
}

// mustValidIndexPartition checks an index-mode result: K groups, every
// position exactly once, sizes matching the group sums, groups sorted.
func mustValidIndexPartition(t *testing.T, nums []float64, k int, r ckk.Result) {
	t.Helper()
	require.Len(t, r.Indices, k, "group count")
	require.Len(t, r.Sizes, k, "sizes count")
	seen := make([]bool, len(nums))
	for gi, g := range r.Indices {
		var sum float64
		for j, idx := range g {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, len(nums))
			require.False(t, seen[idx], "position %d used twice", idx)
			seen[idx] = true
			sum += nums[idx]
			if j > 0 {
				require.LessOrEqual(t, nums[g[j-1]], nums[idx], "group %d not ascending", gi)
			}
		}
		require.InDelta(t, sum, r.Sizes[gi], 1e-9, "size of group %d", gi)
		if gi > 0 {
			require.LessOrEqual(t, r.Sizes[gi-1], r.Sizes[gi], "groups not ordered by sum")
		}
	}
	for idx, ok := range seen {
		require.True(t, ok, "position %d missing", idx)
	}
	require.InDelta(t, ckk.Badness(r.Sizes), r.Badness, 1e-9)
}

// bruteBadness enumerates all K^N assignments and returns the best badness.
func bruteBadness(nums []float64, k int) float64 {
	var (
		n      = len(nums)
		assign = make([]int, n)
		sums   = make([]float64, k)
		best   = math.Inf(1)
		i      int
	)
	for {
		for i = range sums {
			sums[i] = 0
		}
		for i = 0; i < n; i++ {
			sums[assign[i]] += nums[i]
		}
		if d := ckk.Badness(sums); d < best {
			best = d
		}
		// odometer increment
		for i = 0; i < n; i++ {
			assign[i]++
			if assign[i] < k {
				break
			}
			assign[i] = 0
		}
		if i == n {
			return best
		}
	}
}

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

// rangeFloats returns lo, lo+1, ..., hi-1.
func rangeFloats(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo)
	for v := lo; v < hi; v++ {
		out = append(out, float64(v))
	}

	return out
}
