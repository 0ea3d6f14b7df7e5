// Package prometheus exports scan metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, _ := hamprom.New(reg)
//	s, _ := hamscan.New(8, hamscan.WithMetricsCollector(c))
package prometheus

import (
	"strconv"
	"time"

	"github.com/hupe1980/hamscan"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "hamscan"

var _ hamscan.MetricsCollector = (*Collector)(nil)

// Collector implements hamscan.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency  *prom.HistogramVec
	loads      *prom.CounterVec
	elements   prom.Gauge
	warnings   prom.Counter
	processed  *prom.GaugeVec
	planned    *prom.GaugeVec
	pairs      prom.Counter
	matches    prom.Counter
	lastPairs  prom.Gauge
	lastMatches prom.Gauge
}

// New creates a Collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prom.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of load and scan operations",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 12),
		}, []string{"op", "status"}),
		loads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total data set loads",
		}, []string{"status"}),
		elements: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_elements",
			Help:      "Number of fingerprints in the last loaded data set",
		}),
		warnings: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "roundtrip_warnings_total",
			Help:      "Total hex round-trip mismatches seen while loading",
		}),
		processed: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_processed_pairs",
			Help:      "Pairs processed by a worker at its last progress snapshot",
		}, []string{"worker"}),
		planned: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_planned_pairs",
			Help:      "Pairs assigned to a worker",
		}, []string{"worker"}),
		pairs: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_compared_total",
			Help:      "Total pairs compared",
		}),
		matches: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_matched_total",
			Help:      "Total pairs within the distance threshold",
		}),
		lastPairs: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_scan_pairs",
			Help:      "Pairs compared by the last scan",
		}),
		lastMatches: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_scan_matches",
			Help:      "Pairs matched by the last scan",
		}),
	}

	for _, m := range []prom.Collector{
		c.opLatency, c.loads, c.elements, c.warnings, c.processed,
		c.planned, c.pairs, c.matches, c.lastPairs, c.lastMatches,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordLoad implements hamscan.MetricsCollector.
func (c *Collector) RecordLoad(elements, warnings int, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues("load", s).Observe(d.Seconds())
	c.loads.WithLabelValues(s).Inc()
	if err == nil {
		c.elements.Set(float64(elements))
	}
	c.warnings.Add(float64(warnings))
}

// RecordProgress implements hamscan.MetricsCollector.
func (c *Collector) RecordProgress(worker int, processed, total uint64) {
	w := strconv.Itoa(worker)
	c.processed.WithLabelValues(w).Set(float64(processed))
	c.planned.WithLabelValues(w).Set(float64(total))
}

// RecordScan implements hamscan.MetricsCollector.
func (c *Collector) RecordScan(pairs, matches uint64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("scan", status(err)).Observe(d.Seconds())
	c.pairs.Add(float64(pairs))
	c.matches.Add(float64(matches))
	if err == nil {
		c.lastPairs.Set(float64(pairs))
		c.lastMatches.Set(float64(matches))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
