// Package metrics provides ckk.Observer implementations: a no-op observer
// and a Prometheus-backed one.
package metrics

import "github.com/katalvlaran/numpart/ckk"

// NopObserver implements a no-op search observer.
//
// All events are discarded. Useful for testing or as an embedded base for
// partial observers.
type NopObserver struct{}

// Compile-time assertion that NopObserver implements ckk.Observer.
var _ ckk.Observer = (*NopObserver)(nil)

// NewNop creates a new no-op observer.
//
// Example:
//
//	s, err := ckk.CompleteKarmarkarKarp(nums, 3, ckk.WithObserver(metrics.NewNop()))
func NewNop() *NopObserver {
	return &NopObserver{}
}

// NodeVisited discards the event.
func (n *NopObserver) NodeVisited(_ /* depth */ int) {}

// NodePruned discards the event.
func (n *NopObserver) NodePruned(_ /* depth */ int) {}

// MergeSkipped discards the event.
func (n *NopObserver) MergeSkipped(_ /* depth */, _ /* count */ int) {}

// ResultEmitted discards the event.
func (n *NopObserver) ResultEmitted(_ /* badness */ float64) {}

// SearchFinished discards the final stats.
func (n *NopObserver) SearchFinished(_ /* stats */ ckk.Stats) {}
