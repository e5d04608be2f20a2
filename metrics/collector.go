// Package metrics exposes the block allocator's counters to
// prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"muninn/alloc"
)

// Collector reads the allocator counters at scrape time. It holds no
// state of its own; register it once with any registry.
type Collector struct {
	allocs *prometheus.Desc
	frees  *prometheus.Desc
	live   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector() *Collector {
	return &Collector{
		allocs: prometheus.NewDesc(
			"muninn_block_allocs_total",
			"Control block records handed out, by block kind.",
			[]string{"kind"}, nil,
		),
		frees: prometheus.NewDesc(
			"muninn_block_frees_total",
			"Control block records returned, by block kind.",
			[]string{"kind"}, nil,
		),
		live: prometheus.NewDesc(
			"muninn_blocks_live",
			"Control block records currently held.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocs
	ch <- c.frees
	ch <- c.live
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := alloc.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue,
		float64(st.DirectAllocs), alloc.KindDirect.String())
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue,
		float64(st.CombinedAllocs), alloc.KindCombined.String())
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue,
		float64(st.DirectFrees), alloc.KindDirect.String())
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue,
		float64(st.CombinedFrees), alloc.KindCombined.String())
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue,
		float64(st.Live()))
}
