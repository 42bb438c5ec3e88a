package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gazetteer-service/internal/api/dto"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	g, err := gazetteer.New([]domain.Candidate{
		{AncientName: "Athens", ModernName: "Athina", Latitude: 37.9838, Longitude: 23.7275, Type: "Major Polis"},
		{AncientName: "Sparta", ModernName: "Sparti", Latitude: 37.0755, Longitude: 22.4301, Type: "Polis"},
		{AncientName: "Athenians", ModernName: "Athens", Latitude: 37.97, Longitude: 23.72, Type: "People"},
		{AncientName: "Naxos", ModernName: "Naxos", Latitude: 37.1036, Longitude: 25.3766, Type: "Polis"},
		{AncientName: "Naxos", ModernName: "Giardini Naxos", Latitude: 37.8276, Longitude: 15.2706, Type: "Polis"},
	})
	require.NoError(t, err)
	return NewRouter(g, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","settlements":5}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	for _, path := range []string{"/health", "/settlements", "/settlements/nearest", "/export"} {
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"), path)
	}
}

func TestListSettlementsKeepsLoadOrder(t *testing.T) {
	rec := get(t, newTestRouter(t), "/settlements")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListSettlementsResponse](t, rec)
	require.Equal(t, 5, res.Count)
	assert.Equal(t, "Athens", res.Settlements[0].AncientName)
	assert.Equal(t, "Giardini Naxos", res.Settlements[4].ModernName)
}

func TestLookupByIdentity(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/settlements/lookup?name=Naxos&lat=37.8276&lng=15.2706")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.SettlementResponse](t, rec)
	assert.Equal(t, "Giardini Naxos", res.ModernName, "identity picks one of the two Naxos records")

	rec = get(t, h, "/settlements/lookup?name=Naxos&lat=37.8276&lng=15.27")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec), "error")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/settlements/lookup?name=naxos&lat=37.8276&lng=15.2706").Code, "names are exact")
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/lookup?lat=1&lng=2").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/lookup?name=Naxos&lat=x&lng=2").Code)
}

func TestSearch(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		target string
		status int
		count  int
	}{
		{"/settlements/search?q=naxos", http.StatusOK, 2},
		{"/settlements/search?q=Naxos&mode=exact", http.StatusOK, 2},
		{"/settlements/search?q=naxos&mode=exact", http.StatusOK, 0},
		{"/settlements/search?q=ath&mode=prefix", http.StatusOK, 2},
		{"/settlements/search?q=part&mode=substring", http.StatusOK, 1},
		{"/settlements/search?q=", http.StatusBadRequest, 0},
		{"/settlements/search?q=x&mode=fuzzy", http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		rec := get(t, h, tc.target)
		require.Equal(t, tc.status, rec.Code, tc.target)
		if tc.status == http.StatusOK {
			assert.Equal(t, tc.count, decode[dto.ListSettlementsResponse](t, rec).Count, tc.target)
		} else {
			assert.Contains(t, decode[map[string]string](t, rec), "error", tc.target)
		}
	}
}

func TestByType(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/settlements/type?type=Polis")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[dto.ListSettlementsResponse](t, rec).Count)

	rec = get(t, h, "/settlements/type?type=polis")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[dto.ListSettlementsResponse](t, rec).Count, "type match is exact")

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/type").Code)
}

func TestBoundingBox(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/settlements/bbox?min_lat=36&min_lng=22&max_lat=38.5&max_lng=24")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.ListSettlementsResponse](t, rec)
	require.Equal(t, 3, res.Count)
	assert.Equal(t, "Athens", res.Settlements[0].AncientName)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/bbox?min_lat=38&min_lng=22&max_lat=36&max_lng=24").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/bbox?min_lat=36&min_lng=22&max_lat=38").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/settlements/bbox?min_lat=abc&min_lng=22&max_lat=38&max_lng=24").Code)
}

func TestNearest(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/settlements/nearest?lat=37.98&lng=23.72&k=2")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.NearestResponse](t, rec)
	require.Len(t, res.Neighbors, 2)
	assert.Equal(t, "Athens", res.Neighbors[0].AncientName)
	assert.Equal(t, "Athenians", res.Neighbors[1].AncientName)
	assert.LessOrEqual(t, res.Neighbors[0].DistanceKm, res.Neighbors[1].DistanceKm)

	rec = get(t, h, "/settlements/nearest?lat=0&lng=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.NearestResponse](t, rec).Neighbors, 5, "default k clamps to catalog size")

	for _, target := range []string{
		"/settlements/nearest?lat=91&lng=0",
		"/settlements/nearest?lat=0&lng=0&k=0",
		"/settlements/nearest?lat=0&lng=0&k=101",
		"/settlements/nearest?lat=0&lng=0&k=two",
		"/settlements/nearest?lng=0",
	} {
		assert.Equal(t, http.StatusBadRequest, get(t, h, target).Code, target)
	}
}

func TestTypes(t *testing.T) {
	rec := get(t, newTestRouter(t), "/types")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.TypesResponse](t, rec)
	assert.Equal(t, []dto.TypeCountResponse{
		{Type: "Major Polis", Count: 1},
		{Type: "Polis", Count: 3},
		{Type: "People", Count: 1},
	}, res.Types)
}

func TestDuplicates(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/duplicates")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.DuplicatesResponse](t, rec)
	assert.Equal(t, 50.0, res.MaxKm)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "Athens", res.Groups[0][0].AncientName)
	assert.Equal(t, "Athenians", res.Groups[0][1].AncientName)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/duplicates?max_km=-1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/duplicates?max_km=far").Code)
}

func TestExport(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/export?format=geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)

	rec = get(t, h, "/export?format=js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "//"))

	rec = get(t, h, "/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 5)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/export?format=kml").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	get(t, h, "/settlements/search?q=sparta")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gazetteer_queries_total")
}
