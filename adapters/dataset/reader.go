package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"anthrostat/domain/core"
	"anthrostat/internal"
	"anthrostat/internal/errors"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Reader loads an anthropometric survey table from an Excel or CSV export.
// The table must carry a header row with a sex column plus one column per
// numeric measurement.
type Reader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sexColumn string
	log       *internal.Logger
}

// NewReader creates a reader for the given file; the type is inferred from
// the extension.
func NewReader(filePath, sexColumn string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{
		filePath:  filePath,
		fileType:  fileType,
		sexColumn: sexColumn,
		log:       internal.DefaultLogger,
	}
}

// Read loads and splits the survey into a Dataset.
func (r *Reader) Read() (*Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetError("dataset file not found: " + r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.DatasetError("unsupported dataset file type: " + r.fileType)
	}
	if err != nil {
		return nil, err
	}

	dataset, err := processRows(rows, r.sexColumn, r.filePath)
	if err != nil {
		return nil, err
	}
	r.log.Info("dataset loaded from %s: %d measurements, %d male / %d female subjects",
		r.filePath, len(dataset.measurements),
		dataset.SampleSize(core.SexMale), dataset.SampleSize(core.SexFemale))
	return dataset, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV")
	}
	return rows, nil
}

// processRows turns a raw header+rows table into a per-sex Dataset.
// Measurement columns are extracted concurrently, one goroutine per column.
func processRows(rows [][]string, sexColumn, source string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.DatasetError("dataset must have a header row and at least one data row")
	}

	header := rows[0]
	sexIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), sexColumn) {
			sexIdx = i
			break
		}
	}
	if sexIdx < 0 {
		return nil, errors.DatasetError(fmt.Sprintf("sex column %q not found in header", sexColumn))
	}

	// Resolve each row's sex once.
	sexes := make([]core.Sex, len(rows)-1)
	counts := map[core.Sex]int{}
	for i, row := range rows[1:] {
		if sexIdx < len(row) {
			sexes[i] = parseSex(row[sexIdx])
		}
		if sexes[i] != "" {
			counts[sexes[i]]++
		}
	}

	dataset := &Dataset{
		source: source,
		bySex: map[core.Sex]map[core.DimensionKey][]float64{
			core.SexMale:   {},
			core.SexFemale: {},
		},
		counts: counts,
	}

	var mu sync.Mutex
	var g errgroup.Group
	measurements := make([]Measurement, 0, len(header)-1)
	for i, name := range header {
		if i == sexIdx || strings.TrimSpace(name) == "" {
			continue
		}
		m := NewMeasurement(name)
		measurements = append(measurements, m)

		colIdx := i
		g.Go(func() error {
			male := make([]float64, 0, counts[core.SexMale])
			female := make([]float64, 0, counts[core.SexFemale])
			for rowIdx, row := range rows[1:] {
				if colIdx >= len(row) || sexes[rowIdx] == "" {
					continue
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(row[colIdx]), 64)
				if err != nil {
					continue // non-numeric cell, skip the observation
				}
				if sexes[rowIdx] == core.SexMale {
					male = append(male, value)
				} else {
					female = append(female, value)
				}
			}
			mu.Lock()
			dataset.bySex[core.SexMale][m.Key] = male
			dataset.bySex[core.SexFemale][m.Key] = female
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dataset.measurements = measurements
	if len(measurements) == 0 {
		return nil, errors.DatasetError("dataset has no measurement columns")
	}
	return dataset, nil
}

// parseSex normalizes the sex cell; unknown values are dropped.
func parseSex(cell string) core.Sex {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "male", "m", "1":
		return core.SexMale
	case "female", "f", "2":
		return core.SexFemale
	default:
		return ""
	}
}
