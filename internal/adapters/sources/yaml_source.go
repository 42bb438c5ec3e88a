package sources

import (
	"context"
	"fmt"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/platform/obs"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFileSource reads candidates from a YAML sequence of Records.
type YAMLFileSource struct {
	Path string
}

func NewYAMLFileSource(path string) *YAMLFileSource {
	return &YAMLFileSource{Path: path}
}

func (s *YAMLFileSource) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "source.yaml.ListCandidates")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("yaml source: read %q: %w", s.Path, err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("yaml source: parse %q: %w", s.Path, err)
	}

	out := make([]domain.Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, r.candidate())
	}
	return out, nil
}
