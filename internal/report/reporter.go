package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
)

// TableConfig fixes the column widths of the rendered tables.
type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

// DefaultTableConfig fits the longest EVTYPE labels in the reference dataset.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		ValueWidth: 14,
	}
}

// Reporter renders a Data value as the plain-text report.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

// NewReporter creates a Reporter writing to w (stdout when nil).
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		writer: w,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `Storm Impact Report
Generated: {{.GeneratedAt.UTC.Format "2006-01-02 15:04:05 UTC"}}
Source: {{.Source}} ({{.TotalRecords}} records)
{{range .Narrative}}
{{.}}{{end}}

=== Event Counts === (showing types at or above the mean of {{printf "%.1f" .CountMean}} records)

{{sep 1}}
{{row1 "EVENT TYPE" "COUNT"}}
{{sep 1}}
{{range .Counts}}{{row1 .EventType (count .Count)}}
{{end}}{{sep 1}}

=== Casualties === (showing types at or above the mean of {{printf "%.1f" .CasualtyMean}} casualties)

{{sep 3}}
{{row3 "EVENT TYPE" "FATALITIES" "INJURIES" "TOTAL"}}
{{sep 3}}
{{range .Casualties}}{{row3 .EventType (num .Fatalities) (num .Injuries) (num .Total)}}
{{end}}{{sep 3}}

=== Monetary Damage === (showing types at or above the mean of {{money .DamageMean}})

{{sep 3}}
{{row3 "EVENT TYPE" "PROPERTY" "CROP" "TOTAL"}}
{{sep 3}}
{{range .Damage}}{{row3 .EventType (money .Property) (money .Crop) (money .Total)}}
{{end}}{{sep 3}}

--- Run stats ---
Records loaded: {{.Stats.RecordsLoaded}}
Cells zeroed:   {{.Stats.CellsZeroed}}
{{range stages .Stats.StageSeconds}}{{printf "%-10s %.3fs" .Name .Seconds}}
{{end}}`

// stageEntry is a template-friendly view of one stage duration.
type stageEntry struct {
	Name    string
	Seconds float64
}

// Handle renders the report. Uses the same text/template + funcMap mechanism
// for row formatting as the tables elsewhere in this codebase family.
func (r *Reporter) Handle(d Data) error {
	funcMap := template.FuncMap{
		"count": func(n int) string { return fmt.Sprintf("%d", n) },
		"num":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"money": FormatMoney,
		"row1": func(name, value string) string {
			return fmt.Sprintf("| %-*s | %*s |", r.config.NameWidth, name, r.config.ValueWidth, value)
		},
		"row3": func(name, v1, v2, v3 string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s |",
				r.config.NameWidth, name,
				r.config.ValueWidth, v1,
				r.config.ValueWidth, v2,
				r.config.ValueWidth, v3)
		},
		"sep": func(values int) string {
			parts := make([]string, 0, values+1)
			parts = append(parts, strings.Repeat("-", r.config.NameWidth+2))
			for i := 0; i < values; i++ {
				parts = append(parts, strings.Repeat("-", r.config.ValueWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"stages": func(m map[string]float64) []stageEntry {
			entries := make([]stageEntry, 0, len(m))
			for name, secs := range m {
				entries = append(entries, stageEntry{Name: name, Seconds: secs})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
			return entries
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	if err := t.Execute(r.writer, d); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
