package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gazetteer-service/internal/dataset"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/platform/obs"
	"os"
)

// Record is the on-disk shape shared by the JSON and YAML sources and the JSON exporter.
// Coordinates stay loosely typed so that malformed values reach validation intact.
type Record struct {
	AncientName string `json:"ancient_name" yaml:"ancient_name"`
	ModernName  string `json:"modern_name" yaml:"modern_name"`
	Latitude    any    `json:"latitude" yaml:"latitude"`
	Longitude   any    `json:"longitude" yaml:"longitude"`
	Type        string `json:"type" yaml:"type"`
}

func (r Record) candidate() domain.Candidate {
	return domain.Candidate{
		AncientName: r.AncientName,
		ModernName:  r.ModernName,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Type:        r.Type,
	}
}

// JSONSource reads candidates from a JSON array of Records.
type JSONSource struct {
	name string
	read func() ([]byte, error)
	want int // expected record count; 0 accepts any
}

func NewJSONFileSource(path string) *JSONSource {
	return &JSONSource{name: path, read: func() ([]byte, error) { return os.ReadFile(path) }}
}

// Embedded returns a source over the built-in catalog.
func Embedded() *JSONSource {
	return &JSONSource{
		name: "embedded",
		read: func() ([]byte, error) { return dataset.SettlementsJSON, nil },
		want: dataset.Count,
	}
}

func (s *JSONSource) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "source.json.ListCandidates")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("json source: read %q: %w", s.name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("json source: parse %q: %w", s.name, err)
	}
	if s.want > 0 && len(records) != s.want {
		return nil, fmt.Errorf("json source: %q holds %d records, want %d", s.name, len(records), s.want)
	}

	out := make([]domain.Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, r.candidate())
	}
	return out, nil
}
