// Package chart renders the ranked aggregate tables as horizontal bar charts
// on a single self-contained HTML page.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// PageFileName is the chart page written under the output directory.
const PageFileName = "storm_impact_charts.html"

// Renderer writes the chart page for a report.
type Renderer struct {
	outDir string
	theme  string
}

// NewRenderer creates a Renderer writing into outDir. An empty theme falls
// back to the default.
func NewRenderer(outDir, theme string) *Renderer {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	return &Renderer{outDir: outDir, theme: theme}
}

// Handle writes the chart page to <outDir>/storm_impact_charts.html, creating
// the directory if needed.
func (r *Renderer) Handle(d report.Data) error {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(r.outDir, PageFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart page: %w", err)
	}
	defer f.Close() //nolint:errcheck // close error surfaced by Render flush below

	if err := r.WritePage(f, d); err != nil {
		return err
	}
	return f.Close()
}

// WritePage renders all three charts into w.
func (r *Renderer) WritePage(w io.Writer, d report.Data) error {
	countNames := make([]string, len(d.Counts))
	countValues := make([]float64, len(d.Counts))
	for i, row := range d.Counts {
		countNames[i] = row.EventType
		countValues[i] = float64(row.Count)
	}

	casualtyNames := make([]string, len(d.Casualties))
	casualtyValues := make([]float64, len(d.Casualties))
	for i, row := range d.Casualties {
		casualtyNames[i] = row.EventType
		casualtyValues[i] = row.Total
	}

	damageNames := make([]string, len(d.Damage))
	damageValues := make([]float64, len(d.Damage))
	for i, row := range d.Damage {
		damageNames[i] = row.EventType
		damageValues[i] = row.Total
	}

	page := components.NewPage()
	page.PageTitle = "Storm Impact Report"
	page.AddCharts(
		r.barChart("Event Counts", "records", countNames, countValues),
		r.barChart("Casualties (fatalities + injuries)", "casualties", casualtyNames, casualtyValues),
		r.barChart("Monetary Damage (USD)", "damage", damageNames, damageValues),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}
	return nil
}

// barChart builds one horizontal bar chart. Categories arrive ranked
// descending; they are reversed so the largest bar renders at the top after
// the axis flip.
func (r *Renderer) barChart(title, seriesName string, names []string, values []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: r.theme}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[len(values)-1-i] = opts.BarData{Value: v}
	}

	bar.SetXAxis(reversed(names)).AddSeries(seriesName, data)
	bar.XYReversal()
	return bar
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
