package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/platform/obs"
)

// SQLite-backed implementation of the SettlementSource port.
type SqliteSettlementRepository struct{ DB *sql.DB }

func NewSqliteSettlementRepository(db *sql.DB) *SqliteSettlementRepository {
	return &SqliteSettlementRepository{DB: db}
}

// Return all stored settlements as candidates, in seeded order.
func (s *SqliteSettlementRepository) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "sqlite.ListCandidates")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite settlement repository: DB is nil")
	}

	query := `
	SELECT
		ancient_name,
		modern_name,
		latitude,
		longitude,
		type
	FROM settlements
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list settlements: query settlements table: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows *sql.Rows) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, 256)
	for rows.Next() {
		var ancient, modern, tag string
		var lat, lng float64
		if err := rows.Scan(&ancient, &modern, &lat, &lng, &tag); err != nil {
			return nil, fmt.Errorf("list settlements: scan row: %w", err)
		}
		candidates = append(candidates, domain.Candidate{
			AncientName: ancient,
			ModernName:  modern,
			Latitude:    lat,
			Longitude:   lng,
			Type:        tag,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settlements: row iteration: %w", err)
	}

	return candidates, nil
}
