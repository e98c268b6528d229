package core

import (
	"time"

	"github.com/google/uuid"
)

// DimensionKey identifies a measurement dimension (e.g. "stature", "weight").
type DimensionKey string

// ClassLabel names a classification class (e.g. "Male", "Female").
type ClassLabel string

// UnitSystem selects the measurement unit system for display and input.
type UnitSystem string

const (
	UnitMetric   UnitSystem = "metric"
	UnitImperial UnitSystem = "imperial"
)

// UnitKind categorizes what a measurement physically measures.
type UnitKind string

const (
	UnitLength UnitKind = "length" // stored in cm
	UnitMass   UnitKind = "mass"   // stored in kg
)

// Sex identifies a survey subgroup.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ID is a unique identifier for records (ledger entries, requests).
type ID string

// NewID generates a new unique identifier.
func NewID() ID {
	return ID(uuid.New().String())
}

// Timestamp is the canonical time type for artifacts.
type Timestamp time.Time

// Now returns the current timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time converts a Timestamp back to time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
