package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"gazetteer-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// position preserves load order; the composite identity is the natural key.
	createSettlementsQuery := `
	CREATE TABLE IF NOT EXISTS settlements (
		position INTEGER NOT NULL,
		ancient_name TEXT NOT NULL,
		modern_name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		type TEXT NOT NULL,
		PRIMARY KEY (ancient_name, latitude, longitude)
	);
	`

	createPositionIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_settlements_position
	ON settlements(position);
	`

	statements := []string{
		createSettlementsQuery,
		createPositionIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Seed replaces the stored catalog with the given settlements, keeping their order.
// The batch is validated first; an invalid batch writes nothing.
func Seed(db *sql.DB, settlements []domain.Settlement) error {
	if db == nil {
		return errors.New("seed settlements: DB is nil")
	}

	rows, err := domain.ValidateStrict(domain.Candidates(settlements))
	if err != nil {
		return fmt.Errorf("seed settlements: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed settlements: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM settlements;`); err != nil {
		return fmt.Errorf("seed settlements: clear table: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO settlements (
		position,
		ancient_name,
		modern_name,
		latitude,
		longitude,
		type
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed settlements: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range rows {
		if _, err := stmt.Exec(i+1, s.AncientName, s.ModernName, s.Latitude, s.Longitude, s.Type); err != nil {
			return fmt.Errorf("seed settlements: insert %s: %w", s.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed settlements: commit tx: %w", err)
	}

	return nil
}
