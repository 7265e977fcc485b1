package reportrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// PostgresRepository persists report records in Postgres. The questionnaire is
// stored as JSONB so schema changes in the intake form never need a migration.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new report row.
func (r *PostgresRepository) Create(ctx context.Context, rec report.Record) error {
	questionnaire, err := json.Marshal(rec.Questionnaire)
	if err != nil {
		return fmt.Errorf("encode questionnaire: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO reports (id, email, storage_key, token_digest, expires_at, created_at, questionnaire)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.Email, rec.StorageKey, rec.TokenDigest, rec.ExpiresAt, rec.CreatedAt, questionnaire)
	return err
}

// FindByTokenDigest fetches the report row matching the token digest.
func (r *PostgresRepository) FindByTokenDigest(ctx context.Context, digest string) (report.Record, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, storage_key, token_digest, expires_at, created_at, questionnaire
		FROM reports
		WHERE token_digest = $1
		LIMIT 1
	`, digest)
	if err != nil {
		return report.Record{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return report.Record{}, false, rows.Err()
	}

	var rec report.Record
	var expires, created time.Time
	var questionnaire []byte
	if err := rows.Scan(&rec.ID, &rec.Email, &rec.StorageKey, &rec.TokenDigest, &expires, &created, &questionnaire); err != nil {
		return report.Record{}, false, err
	}
	rec.ExpiresAt = expires.UTC()
	rec.CreatedAt = created.UTC()
	if err := json.Unmarshal(questionnaire, &rec.Questionnaire); err != nil {
		return report.Record{}, false, fmt.Errorf("decode questionnaire: %w", err)
	}
	return rec, true, rows.Err()
}

var _ report.Repository = (*PostgresRepository)(nil)
