// Package aggregate computes the grouped reductions behind the report: event
// counts, casualty sums, and exponent-adjusted damage sums, each keyed by
// normalized event type. Every reduction is a single deterministic fold over
// a map of accumulators; commutative sums make the result order-independent.
package aggregate

import (
	"sort"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// CountRow is the number of records observed for one event type.
type CountRow struct {
	EventType string
	Count     int
}

// CasualtyRow is the summed human impact for one event type, restricted to
// records with at least one fatality or injury.
type CasualtyRow struct {
	EventType  string
	Fatalities float64
	Injuries   float64
	Total      float64
}

// DamageRow is the summed dollar damage for one event type, restricted to
// records with a positive magnitude on either measure. Property and crop
// components are kept alongside the total.
type DamageRow struct {
	EventType string
	Property  float64
	Crop      float64
	Total     float64
}

// Summary bundles the three aggregate tables for one dataset.
type Summary struct {
	Counts     []CountRow
	Casualties []CasualtyRow
	Damage     []DamageRow
}

// Summarize runs all three reductions. Records are expected to be normalized;
// unnormalized labels group as distinct keys.
func Summarize(records []domain.Record) Summary {
	return Summary{
		Counts:     CountByType(records),
		Casualties: CasualtiesByType(records),
		Damage:     DamageByType(records),
	}
}

// CountByType counts records per event type over the full dataset, no
// filtering.
func CountByType(records []domain.Record) []CountRow {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.EventType]++
	}

	rows := make([]CountRow, 0, len(counts))
	for evtype, n := range counts {
		rows = append(rows, CountRow{EventType: evtype, Count: n})
	}
	sortByType(rows, func(r CountRow) string { return r.EventType })
	return rows
}

// CasualtiesByType sums fatalities and injuries per event type over records
// where either is positive.
func CasualtiesByType(records []domain.Record) []CasualtyRow {
	acc := make(map[string]*CasualtyRow)
	for _, r := range records {
		if !r.HasCasualties() {
			continue
		}
		row, ok := acc[r.EventType]
		if !ok {
			row = &CasualtyRow{EventType: r.EventType}
			acc[r.EventType] = row
		}
		row.Fatalities += r.Fatalities
		row.Injuries += r.Injuries
		row.Total += r.Fatalities + r.Injuries
	}

	rows := make([]CasualtyRow, 0, len(acc))
	for _, row := range acc {
		rows = append(rows, *row)
	}
	sortByType(rows, func(r CasualtyRow) string { return r.EventType })
	return rows
}

// DamageByType sums exponent-adjusted dollar damage per event type over
// records with a positive property or crop magnitude.
func DamageByType(records []domain.Record) []DamageRow {
	acc := make(map[string]*DamageRow)
	for _, r := range records {
		if !r.HasDamage() {
			continue
		}
		row, ok := acc[r.EventType]
		if !ok {
			row = &DamageRow{EventType: r.EventType}
			acc[r.EventType] = row
		}
		prop := r.PropDamage * domain.UnitMultiplier(r.PropDamageExp)
		crop := r.CropDamage * domain.UnitMultiplier(r.CropDamageExp)
		row.Property += prop
		row.Crop += crop
		row.Total += prop + crop
	}

	rows := make([]DamageRow, 0, len(acc))
	for _, row := range acc {
		rows = append(rows, *row)
	}
	sortByType(rows, func(r DamageRow) string { return r.EventType })
	return rows
}

// sortByType orders rows ascending by event type so map iteration order never
// leaks into output.
func sortByType[T any](rows []T, key func(T) string) {
	sort.Slice(rows, func(i, j int) bool { return key(rows[i]) < key(rows[j]) })
}
