package analysis

import (
	"math"
)

// detEpsilon mirrors the classifier's singularity cutoff: a bivariate
// covariance with determinant below it is treated as degenerate and the
// density falls back to the independent product of the marginals.
const detEpsilon = 1e-12

// BivariateDensity returns the joint Gaussian density parameterized by two
// means, two variances and their covariance. A (near-)singular covariance
// degrades to the product of the two marginal densities; a zero variance
// yields the zero function.
func BivariateDensity(meanX, meanY, varX, varY, cov float64) func(x, y float64) float64 {
	if varX <= 0 || varY <= 0 {
		return func(x, y float64) float64 { return 0 }
	}

	det := varX*varY - cov*cov
	if det < detEpsilon {
		sdX, sdY := math.Sqrt(varX), math.Sqrt(varY)
		norm := 1 / (2 * math.Pi * sdX * sdY)
		return func(x, y float64) float64 {
			zx := (x - meanX) / sdX
			zy := (y - meanY) / sdY
			return norm * math.Exp(-0.5*(zx*zx+zy*zy))
		}
	}

	// Closed-form 2x2 inverse of [[varX cov][cov varY]].
	invXX := varY / det
	invYY := varX / det
	invXY := -cov / det
	norm := 1 / (2 * math.Pi * math.Sqrt(det))
	return func(x, y float64) float64 {
		dx := x - meanX
		dy := y - meanY
		q := invXX*dx*dx + 2*invXY*dx*dy + invYY*dy*dy
		return norm * math.Exp(-0.5*q)
	}
}

// Grid holds a joint-density evaluation over a rectangular lattice.
// Z is indexed [yIndex][xIndex] to match row-major canvas rendering.
type Grid struct {
	X []float64   `json:"x"`
	Y []float64   `json:"y"`
	Z [][]float64 `json:"z"`
}

// GridSpec describes the evaluation lattice for a contour plot.
type GridSpec struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Size       int
}

// BivariateGrid evaluates a bivariate Gaussian over the lattice.
func BivariateGrid(meanX, meanY, varX, varY, cov float64, spec GridSpec) *Grid {
	if spec.Size < 2 || spec.MaxX <= spec.MinX || spec.MaxY <= spec.MinY {
		return nil
	}
	density := BivariateDensity(meanX, meanY, varX, varY, cov)

	stepX := (spec.MaxX - spec.MinX) / float64(spec.Size-1)
	stepY := (spec.MaxY - spec.MinY) / float64(spec.Size-1)

	grid := &Grid{
		X: make([]float64, spec.Size),
		Y: make([]float64, spec.Size),
		Z: make([][]float64, spec.Size),
	}
	for i := 0; i < spec.Size; i++ {
		grid.X[i] = spec.MinX + float64(i)*stepX
		grid.Y[i] = spec.MinY + float64(i)*stepY
	}
	for yi := 0; yi < spec.Size; yi++ {
		row := make([]float64, spec.Size)
		for xi := 0; xi < spec.Size; xi++ {
			row[xi] = density(grid.X[xi], grid.Y[yi])
		}
		grid.Z[yi] = row
	}
	return grid
}
