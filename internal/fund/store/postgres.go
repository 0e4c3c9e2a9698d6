package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fundsight/internal/fund/models"
	"fundsight/pkg/apperrors"
)

// PostgresStore resolves observations through the warehouse's point-in-time
// functions. Each function applies the same validity-first algorithm inside
// the database, so one round trip covers the whole fund batch.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a warehouse-backed resolver over the shared pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ResolveAt implements Resolver with a single batched call to the domain's
// resolution function.
func (s *PostgresStore) ResolveAt(ctx context.Context, domain models.Domain, fundIDs []string, asof models.Date) (map[string]models.Observation, error) {
	fn, ok := pointInTimeFunctions[domain]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeInternal, "no resolver registered for domain %q", domain)
	}
	if len(fundIDs) == 0 || len(fundIDs) > models.MaxFundBatch {
		return nil, apperrors.Newf(apperrors.CodeInternal, "resolver batch must hold 1..%d fund IDs", models.MaxFundBatch)
	}

	query := fmt.Sprintf(
		"SELECT fund_id, effective_date, system_valid_from, payload FROM %s($1, $2)", fn)
	rows, err := s.pool.Query(ctx, query, fundIDs, asof.Time())
	if err != nil {
		return nil, fmt.Errorf("resolve %s at %s: %w", domain, asof, err)
	}
	defer rows.Close()

	result := make(map[string]models.Observation, len(fundIDs))
	for rows.Next() {
		var (
			fundID    string
			effective time.Time
			validFrom time.Time
			payload   []byte
		)
		if err := rows.Scan(&fundID, &effective, &validFrom, &payload); err != nil {
			return nil, fmt.Errorf("scan %s observation: %w", domain, err)
		}
		result[fundID] = models.Observation{
			FundID:          fundID,
			EffectiveDate:   models.DateOf(effective),
			SystemValidFrom: validFrom,
			Payload:         payload,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve %s at %s: %w", domain, asof, err)
	}
	return result, nil
}
