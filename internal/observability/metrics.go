// Package observability holds the Prometheus metrics describing fetch and
// parse outcomes.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ceb_outages"

// Skip reasons for RowsSkipped.
const (
	ReasonEmptyRow    = "empty_row"
	ReasonMissingDate = "missing_date"
)

// Metrics holds the counters and histograms for one process. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	RegionsParsed  prometheus.Counter
	RegionsFailed  prometheus.Counter
	RecordsParsed  prometheus.Counter
	RowsSkipped    *prometheus.CounterVec // labels: reason={empty_row,missing_date}
	InvertedRanges prometheus.Counter

	FetchDuration prometheus.Histogram
	FetchErrors   prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegionsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regions_parsed_total",
			Help:      "Regions whose outage table was parsed successfully.",
		}),
		RegionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regions_failed_total",
			Help:      "Regions whose outage table could not be parsed.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Outage records built from table rows.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Table rows dropped because they carried no date.",
		}, []string{"reason"}),
		InvertedRanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inverted_ranges_total",
			Help:      "Outage windows whose end time is earlier than the start time.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the outage page download.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed outage page downloads or extractions.",
		}),
	}

	reg.MustRegister(
		m.RegionsParsed,
		m.RegionsFailed,
		m.RecordsParsed,
		m.RowsSkipped,
		m.InvertedRanges,
		m.FetchDuration,
		m.FetchErrors,
	)

	return m
}

func (m *Metrics) RegionParsed(records int) {
	if m == nil {
		return
	}
	m.RegionsParsed.Inc()
	m.RecordsParsed.Add(float64(records))
}

func (m *Metrics) RegionFailed() {
	if m == nil {
		return
	}
	m.RegionsFailed.Inc()
}

func (m *Metrics) RowSkipped(reason string) {
	if m == nil {
		return
	}
	m.RowsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) RangeInverted() {
	if m == nil {
		return
	}
	m.InvertedRanges.Inc()
}

// ObserveFetch records the duration of a download and whether it failed.
func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
	if err != nil {
		m.FetchErrors.Inc()
	}
}
