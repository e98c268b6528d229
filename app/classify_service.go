package app

import (
	"context"

	"anthrostat/adapters/dataset"
	"anthrostat/domain/classify"
	"anthrostat/domain/core"
	"anthrostat/domain/series"
	"anthrostat/internal"
	"anthrostat/internal/errors"
	"anthrostat/ports"
)

// ClassifyRequest carries one classification query. Values are expressed in
// the request's unit system; unknown dimensions are ignored.
type ClassifyRequest struct {
	Values map[core.DimensionKey]float64 `json:"values"`
	Method string                        `json:"method"` // "lda" (default) or "bayes"
	Unit   core.UnitSystem               `json:"unit"`
	Priors []float64                     `json:"priors,omitempty"`
}

// ClassificationService assembles per-sex Series from the loaded survey and
// dispatches to the requested classifier. Series and classifiers are built
// fresh per call from the current snapshot; nothing is shared across calls.
type ClassificationService struct {
	data   *dataset.Dataset
	ledger ports.ClassificationLedger
	log    *internal.Logger
}

// NewClassificationService wires the service; ledger may be nil (no audit log).
func NewClassificationService(data *dataset.Dataset, ledger ports.ClassificationLedger) *ClassificationService {
	return &ClassificationService{
		data:   data,
		ledger: ledger,
		log:    internal.DefaultLogger,
	}
}

// Classify scores the request point against the male and female
// distributions. At least one known measurement must carry a value; callers
// should render a neutral "no result" state instead of calling with none.
func (s *ClassificationService) Classify(ctx context.Context, req ClassifyRequest) (*classify.Classification, error) {
	unit := req.Unit
	if unit == "" {
		unit = core.UnitMetric
	}

	point := classify.Point{}
	dims := make([]core.DimensionKey, 0, len(req.Values))
	for key, value := range req.Values {
		if _, known := s.data.Measurement(key); known {
			point[key] = value
			dims = append(dims, key)
		}
	}
	if len(point) == 0 {
		return nil, errors.InvalidArgument("no scorable measurement values provided")
	}

	male := series.New(s.data.Columns(core.SexMale, unit, dims...))
	female := series.New(s.data.Columns(core.SexFemale, unit, dims...))

	classifier, err := s.buildClassifier(req.Method, male, female)
	if err != nil {
		return nil, err
	}
	if len(req.Priors) > 0 {
		if err := setPriors(classifier, req.Priors); err != nil {
			return nil, err
		}
	}

	result, err := classifier.ClassifyWithDetails(point)
	if err != nil {
		return nil, err
	}

	s.record(ctx, req, point, result)
	return result, nil
}

func (s *ClassificationService) buildClassifier(method string, male, female *series.Series) (classify.Classifier, error) {
	seriesList := []*series.Series{male, female}
	switch method {
	case "", "lda":
		return classify.NewLDA(seriesList)
	case "bayes":
		return classify.NewNaiveBayes(seriesList)
	default:
		return nil, errors.InvalidArgument("unknown classification method: " + method)
	}
}

// setPriors forwards prior overrides to whichever classifier was built.
func setPriors(classifier classify.Classifier, priors []float64) error {
	switch c := classifier.(type) {
	case *classify.LDA:
		return c.SetPriors(priors)
	case *classify.NaiveBayes:
		return c.SetPriors(priors)
	default:
		return errors.InvalidState("classifier does not accept priors")
	}
}

// record writes the result to the audit ledger, best effort.
func (s *ClassificationService) record(ctx context.Context, req ClassifyRequest, point classify.Point, result *classify.Classification) {
	if s.ledger == nil {
		return
	}
	entry := ports.ClassificationRecord{
		ID:          core.NewID(),
		Method:      result.Method,
		Point:       point,
		Winner:      result.Winner.Label,
		Posterior:   result.Winner.Posterior,
		BayesFactor: result.BayesFactor,
		Evidence:    string(result.Evidence.Category),
		Degraded:    result.Degraded,
		CreatedAt:   core.Now(),
	}
	if err := s.ledger.Record(ctx, entry); err != nil {
		s.log.Warn("failed to record classification: %v", err)
	}
}
