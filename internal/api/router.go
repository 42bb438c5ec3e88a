package api

import (
	"net/http"

	"gazetteer-service/internal/api/handlers"
	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/obs"
	"gazetteer-service/internal/ports"
	"gazetteer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache may be nil.
func NewRouter(g *gazetteer.Gazetteer, cache ports.NearestCache) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{G: g}
	settlementHandler := &handlers.SettlementHandler{G: g}
	nearestHandler := &handlers.NearestHandler{Finder: services.NewNearestFinder(g, cache)}
	exportHandler := &handlers.ExportHandler{G: g}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/settlements", settlementHandler.List)
	mux.HandleFunc("/settlements/lookup", settlementHandler.Lookup)
	mux.HandleFunc("/settlements/search", settlementHandler.Search)
	mux.HandleFunc("/settlements/type", settlementHandler.ByType)
	mux.HandleFunc("/settlements/bbox", settlementHandler.BoundingBox)
	mux.HandleFunc("/settlements/nearest", nearestHandler.Nearest)
	mux.HandleFunc("/types", settlementHandler.Types)
	mux.HandleFunc("/duplicates", settlementHandler.Duplicates)
	mux.HandleFunc("/export", exportHandler.Export)
	mux.Handle("/metrics", obs.MetricsHandler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
