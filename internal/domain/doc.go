// Package domain models records from the NOAA Storm Events database and the
// normalization rules the report applies to them.
//
// # Data Source
//
// Records come from the NWS Storm Data publication (1950-2011), distributed as
// a single large CSV. Each row is one observed weather event with a free-text
// event type, casualty counts, and damage estimates. The file carries 37
// columns; the report reads seven: EVTYPE, FATALITIES, INJURIES, PROPDMG,
// PROPDMGEXP, CROPDMG, CROPDMGEXP.
//
// # EVTYPE Conventions
//
// EVTYPE is free text entered by hand over six decades. Casing and whitespace
// are inconsistent ("Hail", "HAIL", " hail "), so labels are trimmed and
// upper-cased before grouping. Semantically duplicate spellings remain
// distinct after normalization ("TSTM WIND" vs "THUNDERSTORM WIND"); collapsing
// those would require a curated synonym table and is a documented limitation,
// not a bug.
//
// # Damage Encoding
//
// Property and crop damage are each split across two columns: a magnitude
// (PROPDMG, CROPDMG) and a single-character unit-exponent code (PROPDMGEXP,
// CROPDMGEXP) denoting the scale:
//
//	H -> hundreds (100)
//	K -> thousands (1,000)
//	M -> millions (1,000,000)
//	B -> billions (1,000,000,000)
//
// The dollar value of a measure is magnitude x multiplier. Codes appear in
// both cases in raw data ("k", "m") and are upper-cased with the event type.
// The columns also contain stray codes with no documented meaning: digits,
// "+", "-", "?", and empty strings. All of these resolve to multiplier 1, so
// the magnitude passes through unscaled. Resolving to 1 rather than 0 is
// deliberate: an unknown code says nothing about whether damage occurred, and
// dropping the magnitude would understate totals.
//
// # Casualties
//
// FATALITIES and INJURIES are non-negative counts stored as decimals in the
// source file. A casualty total is their sum.
package domain
