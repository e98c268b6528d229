package ports

import (
	"context"

	"anthrostat/domain/core"
)

// ClassificationRecord is one audit-log entry for a classification call.
type ClassificationRecord struct {
	ID          core.ID                       `db:"id"`
	Method      string                        `db:"method"`
	Point       map[core.DimensionKey]float64 `db:"-"`
	Winner      core.ClassLabel               `db:"winner"`
	Posterior   float64                       `db:"posterior"`
	BayesFactor float64                       `db:"bayes_factor"`
	Evidence    string                        `db:"evidence"`
	Degraded    bool                          `db:"degraded"`
	CreatedAt   core.Timestamp                `db:"-"`
}

// ClassificationLedger persists classification results for later review.
// Implementations must be safe for concurrent use.
type ClassificationLedger interface {
	Record(ctx context.Context, record ClassificationRecord) error
	Recent(ctx context.Context, limit int) ([]ClassificationRecord, error)
}
