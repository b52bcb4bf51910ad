package ckk_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/numpart/ckk"
	"github.com/katalvlaran/numpart/instance"
)

// benchInstance returns a deterministic random instance for benchmarks.
func benchInstance(b *testing.B, n int) []float64 {
	b.Helper()
	nums, err := instance.Random(n, 1, 1<<20, instance.DeriveSeed(seedDet, uint64(n)))
	if err != nil {
		b.Fatal(err)
	}

	return nums
}

func BenchmarkFirstResult(b *testing.B) {
	for _, n := range []int{20, 100, 1000} {
		nums := benchInstance(b, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s, err := ckk.CompleteKarmarkarKarp(nums, 4, ckk.WithMaxResults(1))
				if err != nil {
					b.Fatal(err)
				}
				if _, ok := s.Next(); !ok {
					b.Fatal("no result")
				}
			}
		})
	}
}

func BenchmarkBest(b *testing.B) {
	nums := benchInstance(b, 16)
	for _, workers := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ckk.Best(nums, 3, ckk.WithWorkers(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
