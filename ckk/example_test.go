package ckk_test

import (
	"fmt"

	"github.com/katalvlaran/numpart/ckk"
)

func ExampleCompleteKarmarkarKarp() {
	s, err := ckk.CompleteKarmarkarKarp([]float64{4, 5, 6, 7, 8}, 2)
	if err != nil {
		panic(err)
	}
	for res := range s.All() {
		fmt.Println(res.Partition, res.Sizes)
	}
	// Output:
	// [[6 8] [4 5 7]] [14 16]
	// [[4 5 6] [7 8]] [15 15]
}

func ExampleWithReturnIndices() {
	s, err := ckk.CompleteKarmarkarKarp([]float64{4, 5, 6, 7, 8}, 3, ckk.WithReturnIndices(true))
	if err != nil {
		panic(err)
	}
	res, _ := s.Next()
	fmt.Println(res.Indices, res.Sizes)
	// Output:
	// [[4] [0 3] [1 2]] [8 11 11]
}

func ExampleBest() {
	res, err := ckk.Best([]float64{4, 5, 6, 7, 8}, 3, ckk.WithWorkers(2))
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Partition, res.Sizes, res.Badness)
	// Output:
	// [[8] [4 7] [5 6]] [8 11 11] 3
}
