package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anthrostat/adapters/dataset"
	"anthrostat/domain/core"
	"anthrostat/internal/errors"
	"anthrostat/ports"
)

// memoryLedger records entries in memory for assertions.
type memoryLedger struct {
	mu      sync.Mutex
	entries []ports.ClassificationRecord
}

func (l *memoryLedger) Record(_ context.Context, record ports.ClassificationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, record)
	return nil
}

func (l *memoryLedger) Recent(_ context.Context, limit int) ([]ports.ClassificationRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	return l.entries[len(l.entries)-limit:], nil
}

func sampleData(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.LoadSample()
	require.NoError(t, err)
	return ds
}

func TestClassify_DefaultMethodIsLDA(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	result, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 178, "weight": 82},
	})
	require.NoError(t, err)

	assert.Equal(t, "lda", result.Method)
	assert.Equal(t, core.ClassLabel("Male"), result.Winner.Label)
	assert.Len(t, result.Results, 2)
	assert.InDelta(t, 1.0, result.Results[0].Posterior+result.Results[1].Posterior, 1e-9)
}

func TestClassify_BayesMethod(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	result, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 158},
		Method: "bayes",
	})
	require.NoError(t, err)
	assert.Equal(t, "bayes", result.Method)
	assert.Equal(t, core.ClassLabel("Female"), result.Winner.Label)
}

func TestClassify_UnknownMethod(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	_, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 170},
		Method: "forest",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestClassify_UnknownDimensionsIgnored(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	result, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 178, "wingspan": 190},
	})
	require.NoError(t, err)
	assert.Len(t, result.PerDimension, 1)
	assert.Contains(t, result.PerDimension, core.DimensionKey("stature"))
}

func TestClassify_NoScorableValues(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	_, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"wingspan": 190},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestClassify_ImperialUnits(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)

	// 178 cm is roughly 70.1 in; both queries should land on the same side.
	metric, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 178},
	})
	require.NoError(t, err)
	imperial, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 178 / 2.54},
		Unit:   core.UnitImperial,
	})
	require.NoError(t, err)

	assert.Equal(t, metric.Winner.Label, imperial.Winner.Label)
	assert.InDelta(t, metric.Winner.Posterior, imperial.Winner.Posterior, 1e-6)
}

func TestClassify_PriorsForwarded(t *testing.T) {
	svc := NewClassificationService(sampleData(t), nil)
	values := map[core.DimensionKey]float64{"stature": 169}

	balanced, err := svc.Classify(context.Background(), ClassifyRequest{Values: values})
	require.NoError(t, err)
	skewed, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: values,
		Priors: []float64{0.05, 0.95},
	})
	require.NoError(t, err)

	assert.Greater(t, skewed.Results[1].Posterior, balanced.Results[1].Posterior)

	_, err = svc.Classify(context.Background(), ClassifyRequest{
		Values: values,
		Priors: []float64{1},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestClassify_RecordsToLedger(t *testing.T) {
	ledger := &memoryLedger{}
	svc := NewClassificationService(sampleData(t), ledger)

	result, err := svc.Classify(context.Background(), ClassifyRequest{
		Values: map[core.DimensionKey]float64{"stature": 178, "weight": 82},
	})
	require.NoError(t, err)

	require.Len(t, ledger.entries, 1)
	entry := ledger.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, result.Method, entry.Method)
	assert.Equal(t, result.Winner.Label, entry.Winner)
	assert.Equal(t, result.Winner.Posterior, entry.Posterior)
	assert.Contains(t, entry.Point, core.DimensionKey("stature"))
}
