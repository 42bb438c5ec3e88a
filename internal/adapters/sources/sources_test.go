package sources

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazetteer-service/internal/dataset"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmbeddedCatalogLoadsCleanly(t *testing.T) {
	candidates, err := Embedded().ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, dataset.Count)

	g, err := gazetteer.New(candidates)
	require.NoError(t, err)
	assert.Equal(t, dataset.Count, g.Len())
	assert.Equal(t, "Athens", g.All()[0].AncientName)

	naxos, err := g.FindByName("Naxos", gazetteer.MatchExact)
	require.NoError(t, err)
	require.Len(t, naxos, 2)
	assert.Equal(t, "Naxos (Sicily)", naxos[1].ModernName)
}

func TestJSONSourceKeepsLooseCoordinates(t *testing.T) {
	path := writeFile(t, "s.json", `[
		{"ancient_name": "Athens", "modern_name": "Athens", "latitude": 37.9838, "longitude": 23.7275, "type": "Major Polis"},
		{"ancient_name": "Sparta", "modern_name": "Sparta", "latitude": "37.0810", "longitude": 22.43, "type": "Major Polis"}
	]`)

	candidates, err := NewJSONFileSource(path).ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, json.Number("37.9838"), candidates[0].Latitude)
	assert.Equal(t, "37.0810", candidates[1].Latitude)

	valid, issues := domain.Validate(candidates)
	require.Empty(t, issues)
	assert.Equal(t, 37.081, valid[1].Latitude)
}

func TestJSONSourceReportsParseErrors(t *testing.T) {
	path := writeFile(t, "broken.json", `[{"ancient_name": `)

	_, err := NewJSONFileSource(path).ListCandidates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json source: parse")

	_, err = NewJSONFileSource(filepath.Join(t.TempDir(), "missing.json")).ListCandidates(context.Background())
	require.Error(t, err)
}

func TestYAMLSource(t *testing.T) {
	path := writeFile(t, "s.yaml", `
- ancient_name: Delos
  modern_name: Delos
  latitude: 37.3964
  longitude: 25.2683
  type: Sanctuary
- ancient_name: Nowhere
  modern_name: Nowhere
  latitude: 95
  longitude: 10
  type: Polis
`)

	candidates, err := NewYAMLFileSource(path).ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	_, issues := domain.Validate(candidates)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.RuleLatitudeRange, issues[0].Rule)
}

func TestParseJSLiteral(t *testing.T) {
	src := `// Ancient Greek settlements
const settlements = [
    // Greece Mainland
    { name: 'Athens', modern: 'Athens', lat: 37.9838, lng: 23.7275, type: 'Major Polis' },
    { name: 'Heraclea Pontica', modern: 'Ereğli', lat: 41.2833, lng: 31.4167, type: 'Polis' },

    { name: 'Dionysus\' Theatre', modern: 'Athens', lat: 37.9703, lng: 23.7278, type: 'Sanctuary' }
];
`
	candidates, err := ParseJSLiteral(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "Ereğli", candidates[1].ModernName)
	assert.Equal(t, "Dionysus' Theatre", candidates[2].AncientName)
	assert.Equal(t, "37.9838", candidates[0].Latitude)

	g, err := gazetteer.New(candidates)
	require.NoError(t, err)
	assert.Equal(t, 41.2833, g.All()[1].Latitude)
}

func TestParseJSLiteralRejectsIncompleteRecords(t *testing.T) {
	_, err := ParseJSLiteral(strings.NewReader("const settlements = [\n{ name: 'Athens', modern: 'Athens', lat: 37.9 },\n];\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOpenSelectsSource(t *testing.T) {
	tests := []struct {
		kind, path string
		want       any
	}{
		{"", "", &JSONSource{}},
		{"embedded", "", &JSONSource{}},
		{"", "data/s.json", &JSONSource{}},
		{"", "data/s.yml", &YAMLFileSource{}},
		{"", "data/s.js", &JSLiteralFileSource{}},
		{"yaml", "data/s.txt", &YAMLFileSource{}},
	}
	for _, tt := range tests {
		src, err := Open(tt.kind, tt.path)
		require.NoError(t, err, "kind=%q path=%q", tt.kind, tt.path)
		assert.IsType(t, tt.want, src)
	}

	_, err := Open("", "data/s.csv")
	assert.Error(t, err)
	_, err = Open("json", "")
	assert.Error(t, err)
	_, err = Open("xml", "a.xml")
	assert.Error(t, err)
}

func TestListCandidatesHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Embedded().ListCandidates(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONSourceRejectsTruncatedCatalog(t *testing.T) {
	src := &JSONSource{
		name: "truncated",
		read: func() ([]byte, error) {
			return []byte(`[{"ancient_name":"Delphi","modern_name":"Delfoi","latitude":38.4824,"longitude":22.501,"type":"Sanctuary"}]`), nil
		},
		want: 2,
	}

	_, err := src.ListCandidates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds 1 records, want 2")
}
