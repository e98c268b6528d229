package dataset

import (
	"strings"

	"anthrostat/domain/core"
)

// Conversion factors from the stored metric units (cm, kg).
const (
	cmPerInch = 2.54
	lbPerKg   = 2.2046226218
)

// Measurement describes one survey column: its dimension key, display label
// and physical unit kind. Values are stored metric (cm for lengths, kg for
// masses) and converted on the way out.
type Measurement struct {
	Key   core.DimensionKey `json:"key"`
	Label string            `json:"label"`
	Unit  core.UnitKind     `json:"unit"`
}

// NewMeasurement builds measurement metadata from a column name. The unit
// kind is inferred from the name (mass-sounding columns are mass, everything
// else is a length) and the label is the title-cased name.
func NewMeasurement(column string) Measurement {
	key := core.DimensionKey(strings.ToLower(strings.TrimSpace(column)))
	unit := core.UnitLength
	if isMassColumn(string(key)) {
		unit = core.UnitMass
	}
	return Measurement{
		Key:   key,
		Label: labelFor(string(key)),
		Unit:  unit,
	}
}

// ConvertTo converts a stored metric value into the target unit system.
func (m Measurement) ConvertTo(value float64, target core.UnitSystem) float64 {
	if target != core.UnitImperial {
		return value
	}
	switch m.Unit {
	case core.UnitMass:
		return value * lbPerKg
	default:
		return value / cmPerInch
	}
}

// ConvertFrom converts a user-entered value in the given unit system back
// into the stored metric unit.
func (m Measurement) ConvertFrom(value float64, source core.UnitSystem) float64 {
	if source != core.UnitImperial {
		return value
	}
	switch m.Unit {
	case core.UnitMass:
		return value / lbPerKg
	default:
		return value * cmPerInch
	}
}

// UnitLabel returns the display unit for the given system.
func (m Measurement) UnitLabel(target core.UnitSystem) string {
	if m.Unit == core.UnitMass {
		if target == core.UnitImperial {
			return "lb"
		}
		return "kg"
	}
	if target == core.UnitImperial {
		return "in"
	}
	return "cm"
}

func isMassColumn(name string) bool {
	return strings.Contains(name, "weight") || strings.Contains(name, "mass")
}

func labelFor(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
