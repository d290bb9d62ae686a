package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the Prometheus counters and histograms for one report run.
// The report is a one-shot process with no scrape endpoint, so metrics live
// on a private registry and are read back via Snapshot for the report footer.
type Metrics struct {
	registry *prometheus.Registry

	RecordsLoaded prometheus.Counter
	CellsZeroed   prometheus.Counter
	StageDuration *prometheus.HistogramVec // label: stage={load,normalize,aggregate,render}
}

// NewMetrics creates all run metrics on a fresh private registry. Each call
// is independent, so tests need no special constructor.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "records_loaded_total",
			Help:      "Total rows parsed from the input file.",
		}),
		CellsZeroed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "cells_zeroed_total",
			Help:      "Numeric cells treated as zero under the zero missing-value policy.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.RecordsLoaded,
		m.CellsZeroed,
		m.StageDuration,
	)

	return m
}

// Snapshot is a point-in-time read of the run metrics, consumed by the
// report footer.
type Snapshot struct {
	RecordsLoaded int64
	CellsZeroed   int64
	StageSeconds  map[string]float64
}

// Snapshot gathers the private registry and flattens the values.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{StageSeconds: make(map[string]float64)}

	families, err := m.registry.Gather()
	if err != nil {
		return snap
	}

	for _, fam := range families {
		switch fam.GetName() {
		case "storm_report_records_loaded_total":
			snap.RecordsLoaded = int64(firstCounter(fam))
		case "storm_report_cells_zeroed_total":
			snap.CellsZeroed = int64(firstCounter(fam))
		case "storm_report_stage_duration_seconds":
			for _, met := range fam.GetMetric() {
				snap.StageSeconds[labelValue(met, "stage")] = met.GetHistogram().GetSampleSum()
			}
		}
	}

	return snap
}

func firstCounter(fam *dto.MetricFamily) float64 {
	metrics := fam.GetMetric()
	if len(metrics) == 0 {
		return 0
	}
	return metrics[0].GetCounter().GetValue()
}

func labelValue(met *dto.Metric, name string) string {
	for _, lp := range met.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
