package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"gazetteer-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeQueryError maps query errors to 400 and anything else to 500.
func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidQuery) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "query failed", "path", r.URL.Path, "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// allowGET rejects anything but GET with 405 and reports whether the handler should continue.
func allowGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// queryFloat parses a required float query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q: %q is not a number", name, raw)
	}
	return v, nil
}

// queryFloatDefault parses an optional float query parameter.
func queryFloatDefault(r *http.Request, name string, fallback float64) (float64, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return fallback, nil
	}
	return queryFloat(r, name)
}

// queryIntDefault parses an optional int query parameter.
func queryIntDefault(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q: %q is not an integer", name, raw)
	}
	return v, nil
}
