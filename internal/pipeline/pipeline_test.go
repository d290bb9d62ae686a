package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// --- mocks ---

type mockExtractor struct {
	records []domain.Record
	err     error
}

func (m *mockExtractor) Load(_ context.Context, _ string) ([]domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

type captureWriter struct {
	data   *report.Data
	err    error
	called int
}

func (c *captureWriter) Handle(d report.Data) error {
	c.called++
	if c.err != nil {
		return c.err
	}
	c.data = &d
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestPipeline_Run(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	ext := &mockExtractor{records: []domain.Record{
		{EventType: " hail ", Injuries: 2},
		{EventType: "HAIL", Fatalities: 1},
		{EventType: "WIND"},
	}}
	rep := &captureWriter{}
	charts := &captureWriter{}
	metrics := observability.NewMetrics()

	p := pipeline.New(ext, rep, charts, discardLogger(), metrics, 0)
	require.NoError(t, p.Run(context.Background(), "storm.csv"))

	require.NotNil(t, rep.data)
	assert.Equal(t, 1, charts.called)
	assert.Equal(t, fixed, rep.data.GeneratedAt)
	assert.Equal(t, "storm.csv", rep.data.Source)
	assert.Equal(t, 3, rep.data.TotalRecords)

	// The two HAIL spellings merged during normalization.
	require.Len(t, rep.data.Casualties, 1)
	assert.Equal(t, "HAIL", rep.data.Casualties[0].EventType)
	assert.Equal(t, 3.0, rep.data.Casualties[0].Total)

	// Chart writer sees the same ranked tables.
	assert.Equal(t, rep.data.Casualties, charts.data.Casualties)

	snap := metrics.Snapshot()
	assert.Contains(t, snap.StageSeconds, "load")
	assert.Contains(t, snap.StageSeconds, "aggregate")
	assert.Contains(t, snap.StageSeconds, "render")
}

func TestPipeline_Run_NilChartWriter(t *testing.T) {
	ext := &mockExtractor{records: []domain.Record{{EventType: "HAIL"}}}
	rep := &captureWriter{}

	p := pipeline.New(ext, rep, nil, discardLogger(), observability.NewMetrics(), 0)
	require.NoError(t, p.Run(context.Background(), "storm.csv"))
	assert.Equal(t, 1, rep.called)
}

func TestPipeline_Run_LoadError(t *testing.T) {
	ext := &mockExtractor{err: errors.New("missing required columns")}
	rep := &captureWriter{}

	p := pipeline.New(ext, rep, nil, discardLogger(), observability.NewMetrics(), 0)

	err := p.Run(context.Background(), "storm.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Equal(t, 0, rep.called)
}

func TestPipeline_Run_RenderError(t *testing.T) {
	ext := &mockExtractor{records: []domain.Record{{EventType: "HAIL"}}}
	rep := &captureWriter{err: errors.New("broken pipe")}

	p := pipeline.New(ext, rep, nil, discardLogger(), observability.NewMetrics(), 0)

	err := p.Run(context.Background(), "storm.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

// TestPipeline_EndToEnd runs the real loader and reporter against a CSV
// fixture on disk.
func TestPipeline_EndToEnd(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	csv := "EVTYPE,FATALITIES,INJURIES,PROPDMG,PROPDMGEXP,CROPDMG,CROPDMGEXP\n" +
		"TORNADO,3,20,25,K,0,\n" +
		"tornado ,0,4,0,,0,\n" +
		"FLOOD,0,0,1.5,B,50,M\n" +
		"HAIL,0,0,0,,10,K\n"
	path := filepath.Join(t.TempDir(), "storm.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	metrics := observability.NewMetrics()
	var buf bytes.Buffer

	p := pipeline.New(
		loader.New(loader.PolicyFail, discardLogger(), metrics),
		report.NewReporter(&buf),
		nil,
		discardLogger(),
		metrics,
		0,
	)
	require.NoError(t, p.Run(context.Background(), path))

	out := buf.String()
	assert.Contains(t, out, "TORNADO was the most frequently recorded event type, with 2 of 4 records.")
	assert.Contains(t, out, "TORNADO caused the most casualties: 3 fatalities and 24 injuries.")
	assert.Contains(t, out, "FLOOD caused the most monetary damage, at $1.6B")
	assert.Contains(t, out, "Records loaded: 4")
}
