package domain

import "strings"

// unitMultipliers is the fixed unit-exponent lookup table. Codes are matched
// after normalization, so only upper-case entries appear here.
var unitMultipliers = map[string]float64{
	"H": 100,
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// NormalizeLabel trims leading/trailing whitespace and upper-cases a raw
// categorical value. Empty input stays empty. Idempotent: applying it twice
// yields the same result as applying it once.
func NormalizeLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// UnitMultiplier resolves a normalized unit-exponent code to its scale
// multiplier. Unknown codes, digits, symbols, and the empty string resolve
// to 1: an unrecognized code means "unscaled", never "no damage".
func UnitMultiplier(code string) float64 {
	if m, ok := unitMultipliers[code]; ok {
		return m
	}
	return 1
}

// NormalizeRecord returns a copy of the record with the event type and both
// unit-exponent codes normalized. Numeric fields pass through untouched.
func NormalizeRecord(r Record) Record {
	r.EventType = NormalizeLabel(r.EventType)
	r.PropDamageExp = NormalizeLabel(r.PropDamageExp)
	r.CropDamageExp = NormalizeLabel(r.CropDamageExp)
	return r
}

// DamageValue computes the total dollar damage of a record: each magnitude
// scaled by its resolved unit multiplier, property and crop summed. Expects a
// normalized record; raw lower-case codes would resolve to multiplier 1.
func DamageValue(r Record) float64 {
	return r.PropDamage*UnitMultiplier(r.PropDamageExp) +
		r.CropDamage*UnitMultiplier(r.CropDamageExp)
}
