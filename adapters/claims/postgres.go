package claims

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

const (
	holderExistsQuery = `SELECT EXISTS(SELECT 1 FROM policyholders WHERE id = $1)`
	claimsQuery       = `SELECT claim_type, amount FROM claims WHERE holder_id = $1 ORDER BY occurred_at, id`
)

// PGSource reads claim histories from PostgreSQL
type PGSource struct {
	db *sql.DB
}

// NewPGSource wraps an open database handle
func NewPGSource(db *sql.DB) *PGSource {
	return &PGSource{db: db}
}

// OpenPostgres connects with the lib/pq driver and verifies the connection
func OpenPostgres(ctx context.Context, dsn string) (*PGSource, error) {
	if dsn == "" {
		return nil, apperrors.Config("postgres claims backend requires a DSN", nil)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperrors.Config("failed to open claims database", err)
	}
	return connect(ctx, db)
}

// connect wraps db and fails fast when the server is unreachable
func connect(ctx context.Context, db *sql.DB) (*PGSource, error) {
	src := NewPGSource(db)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := src.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, apperrors.Config("failed to reach claims database", err)
	}
	return src, nil
}

func (s *PGSource) ClaimsByHolder(ctx context.Context, holderID string) ([]types.Claim, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, holderExistsQuery, holderID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("policyholder", holderID)
	}

	rows, err := s.db.QueryContext(ctx, claimsQuery, holderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []types.Claim{}
	for rows.Next() {
		var c types.Claim
		var claimType string
		if err := rows.Scan(&claimType, &c.Amount); err != nil {
			return nil, err
		}
		c.Type = types.ClaimType(claimType)
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// Ping checks the database connection
func (s *PGSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PGSource) Close() error {
	return s.db.Close()
}

var _ Source = (*PGSource)(nil)
