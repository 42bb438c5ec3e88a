package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"gazetteer-service/internal/adapters/export"
	"gazetteer-service/internal/gazetteer"
)

// ExportHandler streams the whole catalog in one of the export formats.
type ExportHandler struct {
	G *gazetteer.Gazetteer
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatJSON
	}
	if !slices.Contains(export.Formats, format) {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("unknown export format %q (want one of %s)", format, strings.Join(export.Formats, ", ")))
		return
	}

	// Render fully before writing headers so an encoder failure can still become a 500.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, h.G.All()); err != nil {
		slog.ErrorContext(r.Context(), "export failed", "format", format, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(r.Context(), "export write failed", "format", format, "err", err)
	}
}
