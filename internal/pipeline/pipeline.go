// Package pipeline orchestrates the report run: load, normalize, aggregate,
// render. One sequential pass, no retries; any stage failure aborts the run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/aggregate"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// Extractor reads all records from an input path.
type Extractor interface {
	Load(ctx context.Context, path string) ([]domain.Record, error)
}

// ReportWriter renders the text report.
type ReportWriter interface {
	Handle(d report.Data) error
}

// ChartWriter renders the chart page.
type ChartWriter interface {
	Handle(d report.Data) error
}

// Pipeline wires the stages of one report run.
type Pipeline struct {
	extractor Extractor
	reporter  ReportWriter
	charts    ChartWriter // nil disables chart rendering
	logger    *slog.Logger
	metrics   *observability.Metrics
	top       int
}

// New creates a Pipeline. Pass a nil ChartWriter to skip charts.
func New(e Extractor, r ReportWriter, c ChartWriter, logger *slog.Logger, metrics *observability.Metrics, top int) *Pipeline {
	return &Pipeline{
		extractor: e,
		reporter:  r,
		charts:    c,
		logger:    logger,
		metrics:   metrics,
		top:       top,
	}
}

// Run executes the full pass over the input at path.
func (p *Pipeline) Run(ctx context.Context, path string) error {
	p.logger.Info("report run started", "input", path)

	records, err := p.timedLoad(ctx, path)
	if err != nil {
		return err
	}
	p.logger.Info("input loaded", "records", len(records))

	summary := p.timedAggregate(records)
	p.logger.Info("aggregation complete",
		"event_types", len(summary.Counts),
		"casualty_types", len(summary.Casualties),
		"damage_types", len(summary.Damage),
	)

	if err := p.timedRender(path, summary); err != nil {
		return err
	}

	p.logger.Info("report run complete")
	return nil
}

func (p *Pipeline) timedLoad(ctx context.Context, path string) ([]domain.Record, error) {
	start := time.Now()
	records, err := p.extractor.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	return records, nil
}

func (p *Pipeline) timedAggregate(records []domain.Record) aggregate.Summary {
	start := time.Now()
	for i := range records {
		records[i] = domain.NormalizeRecord(records[i])
	}
	summary := aggregate.Summarize(records)
	p.metrics.StageDuration.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())
	return summary
}

func (p *Pipeline) timedRender(source string, summary aggregate.Summary) error {
	start := time.Now()

	// The snapshot is taken before the render stage duration is observed, so
	// the footer reports load and aggregate timings only.
	data := report.Build(summary, source, p.top, p.metrics.Snapshot())

	if err := p.reporter.Handle(data); err != nil {
		return err
	}
	if p.charts != nil {
		if err := p.charts.Handle(data); err != nil {
			return err
		}
	}

	p.metrics.StageDuration.WithLabelValues("render").Observe(time.Since(start).Seconds())
	return nil
}
