// Package report ranks aggregate tables and renders the text report: a
// narrative summary, one fixed-width table per measure, and a run-stats
// footer.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/aggregate"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// Mean returns the arithmetic mean of measure over rows, 0 for an empty table.
func Mean[T any](rows []T, measure func(T) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += measure(r)
	}
	return sum / float64(len(rows))
}

// RankAboveMean keeps rows whose measure is at least the table mean, ordered
// descending by measure. Ties break ascending by key so output is stable
// across runs.
func RankAboveMean[T any](rows []T, measure func(T) float64, key func(T) string) []T {
	mean := Mean(rows, measure)

	kept := make([]T, 0, len(rows))
	for _, r := range rows {
		if measure(r) >= mean {
			kept = append(kept, r)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		mi, mj := measure(kept[i]), measure(kept[j])
		if mi != mj {
			return mi > mj
		}
		return key(kept[i]) < key(kept[j])
	})
	return kept
}

// Top caps rows at n. n <= 0 means no cap.
func Top[T any](rows []T, n int) []T {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// Data is everything the text reporter and chart renderer consume: the three
// ranked tables, their filter means, narrative lines, and run metadata.
type Data struct {
	GeneratedAt  time.Time
	Source       string
	TotalRecords int

	CountMean    float64
	CasualtyMean float64
	DamageMean   float64

	Counts     []aggregate.CountRow
	Casualties []aggregate.CasualtyRow
	Damage     []aggregate.DamageRow

	Narrative []string
	Stats     observability.Snapshot
}

// Build ranks each summary table (above-mean filter, descending order, top-N
// cap) and derives the narrative. The timestamp comes from the domain clock.
func Build(summary aggregate.Summary, source string, top int, stats observability.Snapshot) Data {
	total := 0
	for _, row := range summary.Counts {
		total += row.Count
	}

	d := Data{
		GeneratedAt:  domain.Now(),
		Source:       source,
		TotalRecords: total,
		CountMean:    Mean(summary.Counts, countMeasure),
		CasualtyMean: Mean(summary.Casualties, casualtyMeasure),
		DamageMean:   Mean(summary.Damage, damageMeasure),
		Stats:        stats,
	}

	d.Counts = Top(RankAboveMean(summary.Counts, countMeasure, countKey), top)
	d.Casualties = Top(RankAboveMean(summary.Casualties, casualtyMeasure, casualtyKey), top)
	d.Damage = Top(RankAboveMean(summary.Damage, damageMeasure, damageKey), top)
	d.Narrative = narrative(d)
	return d
}

func countMeasure(r aggregate.CountRow) float64       { return float64(r.Count) }
func countKey(r aggregate.CountRow) string            { return r.EventType }
func casualtyMeasure(r aggregate.CasualtyRow) float64 { return r.Total }
func casualtyKey(r aggregate.CasualtyRow) string      { return r.EventType }
func damageMeasure(r aggregate.DamageRow) float64     { return r.Total }
func damageKey(r aggregate.DamageRow) string          { return r.EventType }

// narrative produces one sentence per table naming its top category. Tables
// are already ranked, so the head row is the leader.
func narrative(d Data) []string {
	var lines []string

	if len(d.Counts) > 0 {
		top := d.Counts[0]
		lines = append(lines, fmt.Sprintf(
			"%s was the most frequently recorded event type, with %d of %d records.",
			top.EventType, top.Count, d.TotalRecords))
	}
	if len(d.Casualties) > 0 {
		top := d.Casualties[0]
		lines = append(lines, fmt.Sprintf(
			"%s caused the most casualties: %.0f fatalities and %.0f injuries.",
			top.EventType, top.Fatalities, top.Injuries))
	}
	if len(d.Damage) > 0 {
		top := d.Damage[0]
		lines = append(lines, fmt.Sprintf(
			"%s caused the most monetary damage, at %s (%s property, %s crop).",
			top.EventType, FormatMoney(top.Total), FormatMoney(top.Property), FormatMoney(top.Crop)))
	}
	return lines
}

// FormatMoney renders a dollar value with a scale suffix, e.g. 56_900_000_000
// -> "$56.9B".
func FormatMoney(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
