package dataset

import (
	"bytes"
	_ "embed"
)

// sampleCSV is a small synthetic anthropometric survey bundled with the
// binary so the explorer runs without any external dataset configured.
//
//go:embed sample.csv
var sampleCSV []byte

// LoadSample parses the embedded sample survey.
func LoadSample() (*Dataset, error) {
	rows, err := readCSV(bytes.NewReader(sampleCSV))
	if err != nil {
		return nil, err
	}
	return processRows(rows, "sex", "embedded sample survey")
}
