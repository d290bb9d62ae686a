package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "HAIL", "HAIL"},
		{"lowercase", "hail", "HAIL"},
		{"mixed case", "Thunderstorm Wind", "THUNDERSTORM WIND"},
		{"leading and trailing whitespace", "  hail  ", "HAIL"},
		{"tab and newline", "\ttornado\n", "TORNADO"},
		{"interior whitespace preserved", " flash  flood ", "FLASH  FLOOD"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLabel(tt.input))
		})
	}
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	inputs := []string{" hail ", "Tstm Wind", "RIP CURRENT", "", "  ", "5"}
	for _, s := range inputs {
		once := NormalizeLabel(s)
		assert.Equal(t, once, NormalizeLabel(once), "input %q", s)
	}
}

func TestUnitMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected float64
	}{
		{"hundreds", "H", 100},
		{"thousands", "K", 1000},
		{"millions", "M", 1e6},
		{"billions", "B", 1e9},
		{"empty", "", 1},
		{"digit", "5", 1},
		{"zero digit", "0", 1},
		{"plus sign", "+", 1},
		{"question mark", "?", 1},
		{"minus sign", "-", 1},
		{"unrecognized letter", "X", 1},
		{"lowercase not matched before normalization", "k", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnitMultiplier(tt.code))
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	rec := Record{
		EventType:     " hail ",
		Fatalities:    1,
		Injuries:      2,
		PropDamage:    25,
		PropDamageExp: "k",
		CropDamage:    3,
		CropDamageExp: " m ",
	}

	got := NormalizeRecord(rec)

	assert.Equal(t, "HAIL", got.EventType)
	assert.Equal(t, "K", got.PropDamageExp)
	assert.Equal(t, "M", got.CropDamageExp)
	// Numeric fields untouched.
	assert.Equal(t, 1.0, got.Fatalities)
	assert.Equal(t, 2.0, got.Injuries)
	assert.Equal(t, 25.0, got.PropDamage)
	assert.Equal(t, 3.0, got.CropDamage)
}

func TestDamageValue(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected float64
	}{
		{
			"property in thousands, no crop",
			Record{PropDamage: 25, PropDamageExp: "K", CropDamage: 0, CropDamageExp: ""},
			25_000,
		},
		{
			"property and crop combined",
			Record{PropDamage: 2.5, PropDamageExp: "M", CropDamage: 10, CropDamageExp: "K"},
			2_510_000,
		},
		{
			"unknown exponent passes magnitude through",
			Record{PropDamage: 40, PropDamageExp: "5", CropDamage: 0, CropDamageExp: ""},
			40,
		},
		{
			"billions",
			Record{PropDamage: 1.5, PropDamageExp: "B"},
			1.5e9,
		},
		{
			"zero everywhere",
			Record{},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DamageValue(tt.record))
		})
	}
}

func TestHasCasualties(t *testing.T) {
	assert.True(t, Record{Fatalities: 1}.HasCasualties())
	assert.True(t, Record{Injuries: 2}.HasCasualties())
	assert.False(t, Record{}.HasCasualties())
}

func TestHasDamage(t *testing.T) {
	assert.True(t, Record{PropDamage: 0.5}.HasDamage())
	assert.True(t, Record{CropDamage: 3}.HasDamage())
	assert.False(t, Record{PropDamageExp: "K"}.HasDamage())
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		defer SetClock(nil)

		assert.Equal(t, fixedTime, Now())
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)

		assert.True(t, time.Since(Now()) < time.Second)
	})
}
