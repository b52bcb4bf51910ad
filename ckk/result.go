// Package ckk - result packaging.
//
// packer turns a terminal tuple into the public Result:
//  1. Materialize each group's input positions.
//  2. Sort within a group by value ascending (original index as tiebreak).
//  3. Order groups by sum ascending, then first value, then first index;
//     empty groups (possible only with zero-valued inputs) come first.
//  4. Emit values or indices, with Sizes in the same order.
//
// In ties mode the packer also remembers every canonical form it produced,
// so a partition reached through two different merge orders is reported
// once. Forms are bucketed by their xxh3 hash and compared byte for byte
// inside a bucket, so a hash collision never drops a distinct partition.
package ckk

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"math"
	"slices"

	"github.com/zeebo/xxh3"
)

// packer holds the input and scratch buffers reused across results.
type packer struct {
	numbers []float64
	indices bool
	buf     []byte
	hash    func([]byte) uint64
	seen    map[uint64][][]byte
}

// newPacker returns a packer over numbers. dedup enables remembering forms.
func newPacker(numbers []float64, indices, dedup bool) *packer {
	p := &packer{numbers: numbers, indices: indices, hash: xxh3.Hash}
	if dedup {
		p.seen = make(map[uint64][][]byte)
	}

	return p
}

// canonicalGroups returns the canonical group layout of t as input positions.
//
// Complexity: O(n log n).
func (p *packer) canonicalGroups(t *tuple) ([][]int, []float64) {
	var (
		k      = len(t.groups)
		groups = make([][]int, k)
		sums   = make([]float64, k)
		order  = make([]int, k)
		i      int
	)
	byValue := func(x, y int) int {
		if c := cmp.Compare(p.numbers[x], p.numbers[y]); c != 0 {
			return c
		}

		return cmp.Compare(x, y)
	}
	for i = 0; i < k; i++ {
		groups[i] = t.groups[i].appendTo(make([]int, 0, t.groups[i].Len()))
		slices.SortFunc(groups[i], byValue)
		for _, idx := range groups[i] {
			sums[i] += p.numbers[idx]
		}
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		if c := cmp.Compare(sums[x], sums[y]); c != 0 {
			return c
		}
		gx, gy := groups[x], groups[y]
		switch {
		case len(gx) == 0 && len(gy) == 0:
			return 0
		case len(gx) == 0:
			return -1
		case len(gy) == 0:
			return 1
		}

		return byValue(gx[0], gy[0])
	})

	outGroups := make([][]int, k)
	outSums := make([]float64, k)
	for i = 0; i < k; i++ {
		outGroups[i] = groups[order[i]]
		outSums[i] = sums[order[i]]
	}

	return outGroups, outSums
}

// pack builds the Result for t. The second return value is false when the
// packer deduplicates and this canonical form was already produced.
func (p *packer) pack(t *tuple) (Result, bool) {
	groups, sizes := p.canonicalGroups(t)
	if p.seen != nil && !p.remember(groups) {
		return Result{}, false
	}

	res := Result{Sizes: sizes, Badness: Badness(sizes)}
	if p.indices {
		res.Indices = groups

		return res, true
	}
	res.Partition = make([][]float64, len(groups))
	for i, g := range groups {
		vals := make([]float64, len(g))
		for j, idx := range g {
			vals[j] = p.numbers[idx]
		}
		res.Partition[i] = vals
	}

	return res, true
}

// remember records the canonical form of groups and reports whether it was new.
func (p *packer) remember(groups [][]int) bool {
	p.encode(groups)
	h := p.hash(p.buf)
	for _, form := range p.seen[h] {
		if bytes.Equal(form, p.buf) {
			return false
		}
	}
	p.seen[h] = append(p.seen[h], slices.Clone(p.buf))

	return true
}

// encode writes the canonical form as seen by the caller into p.buf: values
// in value mode (equal values are indistinguishable), positions in index mode.
func (p *packer) encode(groups [][]int) {
	p.buf = p.buf[:0]
	for _, g := range groups {
		p.buf = binary.LittleEndian.AppendUint64(p.buf, uint64(len(g)))
		for _, idx := range g {
			if p.indices {
				p.buf = binary.LittleEndian.AppendUint64(p.buf, uint64(idx))
			} else {
				p.buf = binary.LittleEndian.AppendUint64(p.buf, math.Float64bits(p.numbers[idx]))
			}
		}
	}
}
