package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/obs"
	"gazetteer-service/internal/ports"
)

// LoadGazetteer reads every candidate from source and builds a gazetteer from them.
// Any invalid record fails the whole load; the returned error wraps *domain.ValidationError.
func LoadGazetteer(ctx context.Context, source ports.SettlementSource) (_ *gazetteer.Gazetteer, err error) {
	defer obs.Time(ctx, "services.LoadGazetteer")(&err)

	if source == nil {
		return nil, errors.New("load gazetteer: source is nil")
	}

	candidates, err := source.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: list candidates: %w", err)
	}

	g, err := gazetteer.New(candidates)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}

	obs.SettlementsLoaded.Set(float64(g.Len()))
	slog.InfoContext(ctx, "gazetteer loaded", "settlements", g.Len(), "types", len(g.Types()))

	return g, nil
}
