package ports

import (
	"context"
	"gazetteer-service/internal/domain"
)

// Port: a boundary for retrieving unvalidated settlement candidates from a data source.
// Sources preserve the order of the underlying data; that order becomes load order.
type SettlementSource interface {
	// Retrieve every candidate record, in source order.
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
}
