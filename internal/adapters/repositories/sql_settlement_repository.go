package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/platform/obs"
)

// SQLSettlementRepository is a Postgres-backed SettlementSource (pgx stdlib driver).
type SQLSettlementRepository struct {
	DB *sql.DB
}

func NewSQLSettlementRepository(db *sql.DB) *SQLSettlementRepository {
	return &SQLSettlementRepository{DB: db}
}

// Initialize the Postgres schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS settlements (
		position INTEGER NOT NULL,
		ancient_name TEXT NOT NULL CHECK (btrim(ancient_name) <> ''),
		modern_name TEXT NOT NULL CHECK (btrim(modern_name) <> ''),
		latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		type TEXT NOT NULL,
		PRIMARY KEY (ancient_name, latitude, longitude)
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init schema: create settlements: %w", err)
	}

	return nil
}

// SeedPostgres replaces the stored catalog with the given settlements, keeping their order.
// The batch is validated first; an invalid batch writes nothing.
func SeedPostgres(ctx context.Context, db *sql.DB, settlements []domain.Settlement) error {
	if db == nil {
		return errors.New("seed settlements: DB is nil")
	}

	rows, err := domain.ValidateStrict(domain.Candidates(settlements))
	if err != nil {
		return fmt.Errorf("seed settlements: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed settlements: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settlements;`); err != nil {
		return fmt.Errorf("seed settlements: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO settlements (position, ancient_name, modern_name, latitude, longitude, type)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (ancient_name, latitude, longitude) DO UPDATE
	SET position = EXCLUDED.position,
		modern_name = EXCLUDED.modern_name,
		type = EXCLUDED.type;
	`)
	if err != nil {
		return fmt.Errorf("seed settlements: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, s := range rows {
		if _, err := stmt.ExecContext(ctx, i+1, s.AncientName, s.ModernName, s.Latitude, s.Longitude, s.Type); err != nil {
			return fmt.Errorf("seed settlements: insert %s: %w", s.ID(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed settlements: commit: %w", err)
	}

	return nil
}

// Return all stored settlements as candidates, in seeded order.
func (s *SQLSettlementRepository) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "postgres.ListCandidates")(&err)

	if s.DB == nil {
		return nil, errors.New("settlement repository: db is nil")
	}

	q := `
	SELECT ancient_name, modern_name, latitude, longitude, type
	FROM settlements
	ORDER BY position;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list settlements: query settlements table: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}
