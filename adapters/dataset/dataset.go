package dataset

import (
	"anthrostat/domain/core"
)

// Dataset holds a loaded anthropometric survey split by sex. It is built
// once at startup and read-only afterwards; per-request Series are
// constructed from converted copies of its columns.
type Dataset struct {
	source       string
	measurements []Measurement
	bySex        map[core.Sex]map[core.DimensionKey][]float64
	counts       map[core.Sex]int
}

// Source reports where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Measurements lists the available measurements in column order.
func (d *Dataset) Measurements() []Measurement {
	return d.measurements
}

// Measurement looks a measurement up by key.
func (d *Dataset) Measurement(key core.DimensionKey) (Measurement, bool) {
	for _, m := range d.measurements {
		if m.Key == key {
			return m, true
		}
	}
	return Measurement{}, false
}

// SampleSize returns the subject count for a sex.
func (d *Dataset) SampleSize(sex core.Sex) int {
	return d.counts[sex]
}

// Values returns a sex's values for one measurement converted into the
// target unit system. The returned slice is a fresh copy.
func (d *Dataset) Values(key core.DimensionKey, sex core.Sex, unit core.UnitSystem) []float64 {
	m, ok := d.Measurement(key)
	if !ok {
		return nil
	}
	raw := d.bySex[sex][key]
	converted := make([]float64, len(raw))
	for i, v := range raw {
		converted[i] = m.ConvertTo(v, unit)
	}
	return converted
}

// Columns assembles the converted per-dimension arrays for one sex,
// restricted to the requested keys (all measurements when keys is empty).
// This is the input shape Series construction expects.
func (d *Dataset) Columns(sex core.Sex, unit core.UnitSystem, keys ...core.DimensionKey) map[core.DimensionKey][]float64 {
	if len(keys) == 0 {
		for _, m := range d.measurements {
			keys = append(keys, m.Key)
		}
	}
	columns := make(map[core.DimensionKey][]float64, len(keys))
	for _, key := range keys {
		if values := d.Values(key, sex, unit); values != nil {
			columns[key] = values
		}
	}
	return columns
}
