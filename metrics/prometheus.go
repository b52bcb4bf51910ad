package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/numpart/ckk"
)

// PrometheusObserver implements ckk.Observer backed by Prometheus.
//
// Collectors are created and registered lazily on the first event, so an
// observer that is never used leaves the registry untouched. All methods
// are safe for concurrent use and may be shared by parallel searches.
type PrometheusObserver struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	nodesVisited  prometheus.Counter
	nodesPruned   prometheus.Counter
	pruneDepth    prometheus.Histogram
	mergesSkipped prometheus.Counter
	results       prometheus.Counter
	bestBadness   prometheus.Gauge
	searches      prometheus.Counter
	maxDepth      prometheus.Gauge
}

// Compile-time assertion that PrometheusObserver implements ckk.Observer.
var _ ckk.Observer = (*PrometheusObserver)(nil)

// NewPrometheus creates a new Prometheus-backed observer.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "numpart" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "numpart"
	}

	return &PrometheusObserver{reg: reg, namespace: namespace}
}

func (p *PrometheusObserver) ensureRegistered() {
	p.once.Do(func() {
		p.nodesVisited = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "nodes_visited_total",
			Help:      "Total search nodes visited (terminal and internal).",
		})
		p.nodesPruned = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "nodes_pruned_total",
			Help:      "Total internal nodes cut by the lower bound.",
		})
		p.pruneDepth = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "prune_depth",
			Help:      "Number of merges already performed at pruned nodes.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 .. 512
		})
		p.mergesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "merges_skipped_total",
			Help:      "Total sibling merges skipped as symmetric duplicates.",
		})
		p.results = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "results_emitted_total",
			Help:      "Total partitions handed to callers.",
		})
		p.bestBadness = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "last_result_badness",
			Help:      "Badness (max sum - min sum) of the most recent result.",
		})
		p.searches = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "searches_finished_total",
			Help:      "Total searches that reached their end (exhausted, capped or canceled).",
		})
		p.maxDepth = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "ckk",
			Name:      "max_stack_depth",
			Help:      "Deepest DFS stack of the last finished search.",
		})

		p.reg.MustRegister(p.nodesVisited)
		p.reg.MustRegister(p.nodesPruned)
		p.reg.MustRegister(p.pruneDepth)
		p.reg.MustRegister(p.mergesSkipped)
		p.reg.MustRegister(p.results)
		p.reg.MustRegister(p.bestBadness)
		p.reg.MustRegister(p.searches)
		p.reg.MustRegister(p.maxDepth)
	})
}

// NodeVisited counts a visited node.
func (p *PrometheusObserver) NodeVisited(_ int) {
	p.ensureRegistered()
	p.nodesVisited.Inc()
}

// NodePruned counts a pruned node and records its depth.
func (p *PrometheusObserver) NodePruned(depth int) {
	p.ensureRegistered()
	p.nodesPruned.Inc()
	p.pruneDepth.Observe(float64(depth))
}

// MergeSkipped counts skipped symmetric merges.
func (p *PrometheusObserver) MergeSkipped(_ int, count int) {
	p.ensureRegistered()
	p.mergesSkipped.Add(float64(count))
}

// ResultEmitted counts a result and records its badness.
func (p *PrometheusObserver) ResultEmitted(badness float64) {
	p.ensureRegistered()
	p.results.Inc()
	p.bestBadness.Set(badness)
}

// SearchFinished counts a finished search and records its stack depth.
func (p *PrometheusObserver) SearchFinished(stats ckk.Stats) {
	p.ensureRegistered()
	p.searches.Inc()
	p.maxDepth.Set(float64(stats.MaxDepth))
}
