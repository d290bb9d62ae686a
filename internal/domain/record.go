package domain

// Record is one observed weather event from the Storm Events CSV, reduced to
// the columns the report aggregates.
type Record struct {
	EventType     string  // EVTYPE, free text
	Fatalities    float64 // FATALITIES
	Injuries      float64 // INJURIES
	PropDamage    float64 // PROPDMG, magnitude only
	PropDamageExp string  // PROPDMGEXP, unit-exponent code
	CropDamage    float64 // CROPDMG, magnitude only
	CropDamageExp string  // CROPDMGEXP, unit-exponent code
}

// HasCasualties reports whether the record contributes to the casualty
// aggregate (at least one fatality or injury).
func (r Record) HasCasualties() bool {
	return r.Fatalities > 0 || r.Injuries > 0
}

// HasDamage reports whether the record contributes to the damage aggregate
// (a positive magnitude on either measure, before exponent scaling).
func (r Record) HasDamage() bool {
	return r.PropDamage > 0 || r.CropDamage > 0
}
