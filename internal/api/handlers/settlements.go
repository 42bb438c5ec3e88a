package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gazetteer-service/internal/api/dto"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/obs"
)

// SettlementHandler exposes read-only gazetteer lookups.
type SettlementHandler struct {
	G *gazetteer.Gazetteer
}

func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	start := time.Now()
	all := h.G.All()
	obs.Observe("all", start, len(all), nil)

	writeJSON(w, r, http.StatusOK, dto.NewListSettlementsResponse(all))
}

// Lookup resolves one settlement by its composite identity (name, lat, lng).
func (h *SettlementHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "missing query parameter \"name\"")
		return
	}
	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := queryFloat(r, "lng")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	s, ok := h.G.Get(domain.Identity{AncientName: name, Latitude: lat, Longitude: lng})
	n := 0
	if ok {
		n = 1
	}
	obs.Observe("get", start, n, nil)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no settlement %q at %v,%v", name, lat, lng))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSettlementResponse(s))
}

func (h *SettlementHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	q := r.URL.Query().Get("q")
	rawMode := r.URL.Query().Get("mode")
	mode, ok := gazetteer.ParseMatchMode(rawMode)
	if !ok {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown match mode %q (want exact, ci, prefix or substring)", rawMode))
		return
	}

	start := time.Now()
	res, err := h.G.FindByName(q, mode)
	obs.Observe("by_name", start, len(res), err)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListSettlementsResponse(res))
}

func (h *SettlementHandler) ByType(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	tag := r.URL.Query().Get("type")
	if strings.TrimSpace(tag) == "" {
		writeError(w, r, http.StatusBadRequest, "missing query parameter \"type\"")
		return
	}

	start := time.Now()
	res := h.G.FindByType(tag)
	obs.Observe("by_type", start, len(res), nil)

	writeJSON(w, r, http.StatusOK, dto.NewListSettlementsResponse(res))
}

func (h *SettlementHandler) BoundingBox(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	var bounds [4]float64
	for i, name := range []string{"min_lat", "min_lng", "max_lat", "max_lng"} {
		v, err := queryFloat(r, name)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		bounds[i] = v
	}

	start := time.Now()
	res, err := h.G.FindWithinBoundingBox(bounds[0], bounds[1], bounds[2], bounds[3])
	obs.Observe("bbox", start, len(res), err)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListSettlementsResponse(res))
}

func (h *SettlementHandler) Types(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTypesResponse(h.G.Types()))
}

func (h *SettlementHandler) Duplicates(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	maxKm, err := queryFloatDefault(r, "max_km", gazetteer.DefaultDuplicateRadiusKm)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	groups, err := h.G.DuplicateCandidates(maxKm)
	obs.Observe("duplicates", start, len(groups), err)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDuplicatesResponse(maxKm, groups))
}
