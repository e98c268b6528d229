package ui

import (
	"net/http"
	"sort"
	"strconv"

	"anthrostat/app"
	"anthrostat/domain/classify"
	"anthrostat/domain/core"
	"anthrostat/internal/errors"

	"github.com/gin-gonic/gin"
)

// classScoreView is the JSON-safe projection of a ClassScore.
type classScoreView struct {
	Index        int      `json:"index"`
	Label        string   `json:"label"`
	LogPosterior *float64 `json:"log_posterior"`
	Posterior    float64  `json:"posterior"`
	PosteriorPct string   `json:"posterior_pct"`
}

// dimensionView is the JSON-safe projection of a DimensionEvidence.
type dimensionView struct {
	Dimension          string            `json:"dimension"`
	Z0                 float64           `json:"z_0"`
	Z1                 float64           `json:"z_1"`
	LogLikelihoodRatio *float64          `json:"log_likelihood_ratio"`
	BayesFactor        *float64          `json:"bayes_factor"`
	BayesFactorDisplay string            `json:"bayes_factor_display"`
	Evidence           classify.Evidence `json:"evidence"`
	Weight             float64           `json:"weight"`
	Contribution       float64           `json:"contribution"`
	FavorsClass        string            `json:"favors_class,omitempty"`
}

// classificationView is the JSON-safe projection of a Classification.
type classificationView struct {
	Method             string            `json:"method"`
	Winner             classScoreView    `json:"winner"`
	Results            []classScoreView  `json:"results"`
	BayesFactor        *float64          `json:"bayes_factor"`
	BayesFactorDisplay string            `json:"bayes_factor_display"`
	Evidence           classify.Evidence `json:"evidence"`
	PerDimension       []dimensionView   `json:"per_dimension,omitempty"`
	Mahalanobis        []float64         `json:"mahalanobis,omitempty"`
	Degraded           bool              `json:"degraded"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Measurements": s.plots.Measurements(core.UnitMetric),
		"Source":       s.data.Source(),
		"Methodology":  s.methodologyHTML(),
	})
}

func (s *Server) handleMeasurements(c *gin.Context) {
	unit := unitParam(c)
	c.JSON(http.StatusOK, gin.H{"measurements": s.plots.Measurements(unit)})
}

func (s *Server) handleClassify(c *gin.Context) {
	var req app.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// No entered measurements means a neutral "no result" state, not a
	// classifier invocation.
	if len(req.Values) == 0 {
		c.JSON(http.StatusOK, gin.H{"result": nil})
		return
	}

	result, err := s.classify.Classify(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": viewOf(result)})
}

func (s *Server) handleHistogram(c *gin.Context) {
	plot, err := s.plots.Histogram(
		core.DimensionKey(c.Query("dim")), unitParam(c), intParam(c, "bins"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (s *Server) handleDensity(c *gin.Context) {
	plot, err := s.plots.Density(
		core.DimensionKey(c.Query("dim")), unitParam(c), intParam(c, "points"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (s *Server) handleScatter(c *gin.Context) {
	plot, err := s.plots.Scatter(
		core.DimensionKey(c.Query("x")), core.DimensionKey(c.Query("y")), unitParam(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (s *Server) handleContour(c *gin.Context) {
	plot, err := s.plots.Contour(
		core.DimensionKey(c.Query("x")), core.DimensionKey(c.Query("y")),
		unitParam(c), intParam(c, "grid"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

// renderError maps AppError codes onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument, errors.CodeInvalidState:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

// viewOf converts a Classification into its JSON-safe display projection.
func viewOf(result *classify.Classification) classificationView {
	view := classificationView{
		Method:             result.Method,
		Winner:             scoreView(result.Winner),
		BayesFactor:        finitePtr(result.BayesFactor),
		BayesFactorDisplay: FormatBayesFactor(result.BayesFactor),
		Evidence:           result.Evidence,
		Mahalanobis:        result.Mahalanobis,
		Degraded:           result.Degraded,
	}
	for _, score := range result.Results {
		view.Results = append(view.Results, scoreView(score))
	}
	for _, ev := range result.PerDimension {
		view.PerDimension = append(view.PerDimension, dimensionView{
			Dimension:          string(ev.Dimension),
			Z0:                 ev.Z0,
			Z1:                 ev.Z1,
			LogLikelihoodRatio: finitePtr(ev.LogLikelihoodRatio),
			BayesFactor:        finitePtr(ev.BayesFactor),
			BayesFactorDisplay: FormatBayesFactor(ev.BayesFactor),
			Evidence:           ev.Evidence,
			Weight:             ev.Weight,
			Contribution:       ev.Contribution,
			FavorsClass:        string(ev.FavorsClass),
		})
	}
	// Strongest contributors first so the table reads top-down.
	sort.Slice(view.PerDimension, func(i, j int) bool {
		return view.PerDimension[i].Weight > view.PerDimension[j].Weight
	})
	return view
}

func scoreView(score classify.ClassScore) classScoreView {
	return classScoreView{
		Index:        score.Index,
		Label:        string(score.Label),
		LogPosterior: finitePtr(score.LogPosterior),
		Posterior:    score.Posterior,
		PosteriorPct: FormatPercent(score.Posterior),
	}
}

func unitParam(c *gin.Context) core.UnitSystem {
	if c.Query("unit") == string(core.UnitImperial) {
		return core.UnitImperial
	}
	return core.UnitMetric
}

func intParam(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
