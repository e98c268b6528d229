package app

import (
	"math"

	"anthrostat/adapters/dataset"
	"anthrostat/domain/core"
	"anthrostat/domain/series"
	"anthrostat/internal/analysis"
	"anthrostat/internal/errors"

	"golang.org/x/sync/errgroup"
)

// Defaults for plot resolution; handlers may override within reason.
const (
	DefaultBins        = 24
	DefaultCurvePoints = 120
	DefaultGridSize    = 60
	maxPlotResolution  = 400
)

// MeasurementInfo is the /api/measurements view of one survey column.
type MeasurementInfo struct {
	Key        core.DimensionKey `json:"key"`
	Label      string            `json:"label"`
	UnitLabel  string            `json:"unit_label"`
	MaleN      int               `json:"male_n"`
	FemaleN    int               `json:"female_n"`
	MaleMean   float64           `json:"male_mean"`
	FemaleMean float64           `json:"female_mean"`
	MaleSD     float64           `json:"male_sd"`
	FemaleSD   float64           `json:"female_sd"`
}

// SexSeries is one sex's slice of a plot payload.
type SexSeries struct {
	Sex      core.Sex               `json:"sex"`
	Bins     []analysis.Bin         `json:"bins,omitempty"`
	KDE      []analysis.CurvePoint  `json:"kde,omitempty"`
	Gaussian []analysis.CurvePoint  `json:"gaussian,omitempty"`
	X        []float64              `json:"x,omitempty"`
	Y        []float64              `json:"y,omitempty"`
	Grid     *analysis.Grid         `json:"grid,omitempty"`
	Mean     float64                `json:"mean,omitempty"`
	SD       float64                `json:"sd,omitempty"`
	Corr     float64                `json:"corr,omitempty"`
}

// Plot is a generic per-sex plot payload.
type Plot struct {
	Dimension  core.DimensionKey `json:"dimension,omitempty"`
	DimensionY core.DimensionKey `json:"dimension_y,omitempty"`
	UnitLabel  string            `json:"unit_label,omitempty"`
	UnitLabelY string            `json:"unit_label_y,omitempty"`
	Series     []SexSeries       `json:"series"`
}

// PlotService derives plot payloads from the loaded survey. Everything is
// recomputed per request from fresh Series; computations are cheap and
// idempotent at UI data sizes.
type PlotService struct {
	data *dataset.Dataset
}

// NewPlotService wires the plot service.
func NewPlotService(data *dataset.Dataset) *PlotService {
	return &PlotService{data: data}
}

// Measurements summarizes every survey column for both sexes. Per-column
// summaries are computed concurrently.
func (s *PlotService) Measurements(unit core.UnitSystem) []MeasurementInfo {
	measurements := s.data.Measurements()
	infos := make([]MeasurementInfo, len(measurements))

	var g errgroup.Group
	for i, m := range measurements {
		i, m := i, m
		g.Go(func() error {
			male := series.New(s.data.Columns(core.SexMale, unit, m.Key))
			female := series.New(s.data.Columns(core.SexFemale, unit, m.Key))
			infos[i] = MeasurementInfo{
				Key:        m.Key,
				Label:      m.Label,
				UnitLabel:  m.UnitLabel(unit),
				MaleN:      male.Len(m.Key),
				FemaleN:    female.Len(m.Key),
				MaleMean:   male.Mean(m.Key),
				FemaleMean: female.Mean(m.Key),
				MaleSD:     male.StdDev(m.Key),
				FemaleSD:   female.StdDev(m.Key),
			}
			return nil
		})
	}
	g.Wait() // goroutines never return errors; Wait just joins them
	return infos
}

// Histogram bins one measurement per sex.
func (s *PlotService) Histogram(dim core.DimensionKey, unit core.UnitSystem, bins int) (*Plot, error) {
	m, ok := s.data.Measurement(dim)
	if !ok {
		return nil, errors.NotFound("measurement " + string(dim))
	}
	bins = clampResolution(bins, DefaultBins)

	plot := &Plot{Dimension: dim, UnitLabel: m.UnitLabel(unit)}
	for _, sex := range []core.Sex{core.SexMale, core.SexFemale} {
		values := s.data.Values(dim, sex, unit)
		plot.Series = append(plot.Series, SexSeries{
			Sex:  sex,
			Bins: analysis.Histogram(values, bins),
		})
	}
	return plot, nil
}

// Density returns per-sex KDE curves with the fitted Gaussian overlaid.
func (s *PlotService) Density(dim core.DimensionKey, unit core.UnitSystem, points int) (*Plot, error) {
	m, ok := s.data.Measurement(dim)
	if !ok {
		return nil, errors.NotFound("measurement " + string(dim))
	}
	points = clampResolution(points, DefaultCurvePoints)

	plot := &Plot{Dimension: dim, UnitLabel: m.UnitLabel(unit)}
	for _, sex := range []core.Sex{core.SexMale, core.SexFemale} {
		ser := series.New(s.data.Columns(sex, unit, dim))
		values := ser.ValuesOf(dim)
		kde := analysis.DensityCurve(values, points)

		var gaussian []analysis.CurvePoint
		if len(kde) > 0 {
			gaussian = analysis.GaussianCurve(ser.Mean(dim), ser.StdDev(dim),
				kde[0].X, kde[len(kde)-1].X, points)
		}

		plot.Series = append(plot.Series, SexSeries{
			Sex:      sex,
			KDE:      kde,
			Gaussian: gaussian,
			Mean:     ser.Mean(dim),
			SD:       ser.StdDev(dim),
		})
	}
	return plot, nil
}

// Scatter returns per-sex paired point clouds plus the correlation.
func (s *PlotService) Scatter(dimX, dimY core.DimensionKey, unit core.UnitSystem) (*Plot, error) {
	mx, okX := s.data.Measurement(dimX)
	my, okY := s.data.Measurement(dimY)
	if !okX || !okY {
		return nil, errors.NotFound("measurement pair")
	}

	plot := &Plot{
		Dimension:  dimX,
		DimensionY: dimY,
		UnitLabel:  mx.UnitLabel(unit),
		UnitLabelY: my.UnitLabel(unit),
	}
	for _, sex := range []core.Sex{core.SexMale, core.SexFemale} {
		ser := series.New(s.data.Columns(sex, unit, dimX, dimY))
		plot.Series = append(plot.Series, SexSeries{
			Sex:  sex,
			X:    ser.ValuesOf(dimX),
			Y:    ser.ValuesOf(dimY),
			Corr: ser.Correlation(dimX, dimY),
		})
	}
	return plot, nil
}

// Contour returns per-sex bivariate Gaussian joint-density grids. The
// lattice spans both sexes' mean ± 3σ so the two surfaces share axes.
func (s *PlotService) Contour(dimX, dimY core.DimensionKey, unit core.UnitSystem, size int) (*Plot, error) {
	mx, okX := s.data.Measurement(dimX)
	my, okY := s.data.Measurement(dimY)
	if !okX || !okY {
		return nil, errors.NotFound("measurement pair")
	}
	size = clampResolution(size, DefaultGridSize)

	male := series.New(s.data.Columns(core.SexMale, unit, dimX, dimY))
	female := series.New(s.data.Columns(core.SexFemale, unit, dimX, dimY))

	spec := analysis.GridSpec{
		MinX: math.Min(spread(male, dimX, -3), spread(female, dimX, -3)),
		MaxX: math.Max(spread(male, dimX, 3), spread(female, dimX, 3)),
		MinY: math.Min(spread(male, dimY, -3), spread(female, dimY, -3)),
		MaxY: math.Max(spread(male, dimY, 3), spread(female, dimY, 3)),
		Size: size,
	}

	plot := &Plot{
		Dimension:  dimX,
		DimensionY: dimY,
		UnitLabel:  mx.UnitLabel(unit),
		UnitLabelY: my.UnitLabel(unit),
	}
	for _, entry := range []struct {
		sex core.Sex
		ser *series.Series
	}{{core.SexMale, male}, {core.SexFemale, female}} {
		grid := analysis.BivariateGrid(
			entry.ser.Mean(dimX), entry.ser.Mean(dimY),
			entry.ser.Variance(dimX), entry.ser.Variance(dimY),
			entry.ser.Covariance(dimX, dimY), spec)
		plot.Series = append(plot.Series, SexSeries{Sex: entry.sex, Grid: grid})
	}
	return plot, nil
}

// spread returns mean + k standard deviations for one dimension.
func spread(s *series.Series, dim core.DimensionKey, k float64) float64 {
	return s.Mean(dim) + k*s.StdDev(dim)
}

func clampResolution(requested, fallback int) int {
	if requested <= 0 {
		return fallback
	}
	if requested > maxPlotResolution {
		return maxPlotResolution
	}
	return requested
}
