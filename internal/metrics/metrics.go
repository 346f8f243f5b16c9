// Package metrics exposes pipeline counters and stage latencies to Prometheus.
package metrics

import (
	"time"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pcrcalc"

// Metrics implements core.Observer on top of Prometheus collectors.
type Metrics struct {
	catalogLoads  *prometheus.CounterVec
	purchaseLoads *prometheus.CounterVec
	rowsDropped   *prometheus.CounterVec
	matchedParts  prometheus.Counter
	unmatched     prometheus.Counter
	calculations  prometheus.Counter
	avoidedTons   prometheus.Counter
	stageDuration *prometheus.HistogramVec
}

var _ core.Observer = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog loads by outcome (loaded, cached, error).",
		}, []string{"outcome"}),
		purchaseLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_loads_total",
			Help:      "Purchase ledger loads by outcome.",
		}, []string{"outcome"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Source rows excluded during loading, by source and reason.",
		}, []string{"source", "reason"}),
		matchedParts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_matched_parts_total",
			Help:      "Catalog rows that received a purchase quantity.",
		}),
		unmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_unmatched_parts_total",
			Help:      "Purchased part numbers absent from the catalog.",
		}),
		calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed calculations.",
		}),
		avoidedTons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "avoided_co2_metric_tons_total",
			Help:      "Sum of avoided CO2e reported by completed calculations.",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
	}

	for _, c := range []prometheus.Collector{
		m.catalogLoads, m.purchaseLoads, m.rowsDropped, m.matchedParts,
		m.unmatched, m.calculations, m.avoidedTons, m.stageDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) CatalogLoaded(outcome string, r core.LoadReport) {
	m.catalogLoads.WithLabelValues(outcome).Inc()
	if outcome == core.OutcomeLoaded {
		m.addDropped("catalog", r)
	}
}

func (m *Metrics) PurchasesLoaded(outcome string, r core.LoadReport) {
	m.purchaseLoads.WithLabelValues(outcome).Inc()
	if outcome == core.OutcomeLoaded {
		m.addDropped("purchases", r)
	}
}

func (m *Metrics) Merged(matched, unmatched int) {
	m.matchedParts.Add(float64(matched))
	m.unmatched.Add(float64(unmatched))
}

func (m *Metrics) Calculated(_ int, avoided float64) {
	m.calculations.Inc()
	if avoided > 0 {
		m.avoidedTons.Add(avoided)
	}
}

func (m *Metrics) StageDuration(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) addDropped(source string, r core.LoadReport) {
	for reason, n := range map[string]int{
		"missing_part_number": r.MissingPartNumber,
		"invalid_weight":      r.InvalidWeight,
		"invalid_pcr":         r.InvalidPCR,
	} {
		if n > 0 {
			m.rowsDropped.WithLabelValues(source, reason).Add(float64(n))
		}
	}
}
