package export

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"gazetteer-service/internal/adapters/sources"
	"gazetteer-service/internal/domain"
)

// Supported export formats.
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
	FormatJS      = "js"
)

// Formats lists the accepted values for Write.
var Formats = []string{FormatJSON, FormatGeoJSON, FormatJS}

// ContentType returns the HTTP media type of format.
func ContentType(format string) string {
	switch format {
	case FormatGeoJSON:
		return "application/geo+json"
	case FormatJS:
		return "text/javascript; charset=utf-8"
	default:
		return "application/json"
	}
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format string, settlements []domain.Settlement) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, settlements)
	case FormatGeoJSON:
		return WriteGeoJSON(w, settlements)
	case FormatJS:
		return WriteJSLiteral(w, settlements)
	default:
		return fmt.Errorf("export: unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON writes settlements as the JSON array the JSON source reads.
func WriteJSON(w io.Writer, settlements []domain.Settlement) error {
	records := make([]sources.Record, 0, len(settlements))
	for _, s := range settlements {
		records = append(records, sources.Record{
			AncientName: s.AncientName,
			ModernName:  s.ModernName,
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			Type:        s.Type,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// FeatureCollection is a GeoJSON feature collection of settlement points.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

// WriteGeoJSON writes settlements as a FeatureCollection of Points.
func WriteGeoJSON(w io.Writer, settlements []domain.Settlement) error {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(settlements))}
	for _, s := range settlements {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: s.Coordinates().CoordsToList(),
			},
			Properties: map[string]string{
				"ancient_name": s.AncientName,
				"modern_name":  s.ModernName,
				"type":         s.Type,
			},
		})
	}

	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("export geojson: %w", err)
	}
	return nil
}

// WriteJSLiteral writes the JavaScript array format, one record per line, sorted by ancient name.
func WriteJSLiteral(w io.Writer, settlements []domain.Settlement) error {
	sorted := slices.Clone(settlements)
	slices.SortStableFunc(sorted, func(a, b domain.Settlement) int {
		return cmp.Compare(a.AncientName, b.AncientName)
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "// Ancient Greek settlements and locations")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "const settlements = [")
	for i, s := range sorted {
		comma := ","
		if i == len(sorted)-1 {
			comma = ""
		}
		fmt.Fprintf(bw, "    { name: '%s', modern: '%s', lat: %s, lng: %s, type: '%s' }%s\n",
			escapeJS(s.AncientName), escapeJS(s.ModernName),
			formatCoord(s.Latitude), formatCoord(s.Longitude),
			escapeJS(s.Type), comma)
	}
	fmt.Fprintln(bw, "];")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export js literal: %w", err)
	}
	return nil
}

var jsEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func escapeJS(s string) string { return jsEscaper.Replace(s) }

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
