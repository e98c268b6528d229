package ledger

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"anthrostat/domain/core"
	"anthrostat/internal/errors"
	"anthrostat/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS classifications (
	id            TEXT PRIMARY KEY,
	method        TEXT NOT NULL,
	point         JSONB NOT NULL,
	winner        TEXT NOT NULL,
	posterior     DOUBLE PRECISION NOT NULL,
	bayes_factor  DOUBLE PRECISION NOT NULL,
	evidence      TEXT NOT NULL,
	degraded      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresLedger is the sqlx-backed classification audit log, enabled when
// DATABASE_URL is configured.
type PostgresLedger struct {
	db *sqlx.DB
}

// Connect opens the database, verifies the connection and ensures the schema.
func Connect(ctx context.Context, url string) (*PostgresLedger, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to ledger database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ensure ledger schema")
	}
	return &PostgresLedger{db: db}, nil
}

// Close releases the underlying connection pool.
func (l *PostgresLedger) Close() error {
	return l.db.Close()
}

// Record inserts one classification entry. Non-finite Bayes factors are
// stored as the largest representable magnitude so the column stays finite.
func (l *PostgresLedger) Record(ctx context.Context, record ports.ClassificationRecord) error {
	point, err := json.Marshal(record.Point)
	if err != nil {
		return errors.Wrap(err, "failed to encode classification point")
	}

	bf := record.BayesFactor
	if math.IsInf(bf, 1) || math.IsNaN(bf) {
		bf = math.MaxFloat64
	} else if math.IsInf(bf, -1) {
		bf = -math.MaxFloat64
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO classifications (id, method, point, winner, posterior, bayes_factor, evidence, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(record.ID), record.Method, point, string(record.Winner),
		record.Posterior, bf, record.Evidence, record.Degraded,
		record.CreatedAt.Time(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to record classification")
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (l *PostgresLedger) Recent(ctx context.Context, limit int) ([]ports.ClassificationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryxContext(ctx, `
		SELECT id, method, point, winner, posterior, bayes_factor, evidence, degraded, created_at
		FROM classifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query classifications")
	}
	defer rows.Close()

	var records []ports.ClassificationRecord
	for rows.Next() {
		var (
			record    ports.ClassificationRecord
			point     []byte
			createdAt time.Time
		)
		if err := rows.Scan(&record.ID, &record.Method, &point, &record.Winner,
			&record.Posterior, &record.BayesFactor, &record.Evidence,
			&record.Degraded, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan classification row")
		}
		if err := json.Unmarshal(point, &record.Point); err != nil {
			record.Point = map[core.DimensionKey]float64{}
		}
		record.CreatedAt = core.Timestamp(createdAt)
		records = append(records, record)
	}
	return records, rows.Err()
}
