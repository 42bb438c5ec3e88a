package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"gazetteer-service/internal/api/dto"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func renderSettlements(w io.Writer, format string, settlements []domain.Settlement) error {
	if format == OutputJSON {
		return renderJSON(w, dto.NewListSettlementsResponse(settlements))
	}
	if len(settlements) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Ancient name", "Modern name", "Lat", "Lng", "Type"})
	for _, s := range settlements {
		t.AppendRow(table.Row{s.AncientName, s.ModernName, coord(s.Latitude), coord(s.Longitude), s.Type})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(settlements))
	return nil
}

func renderNeighbors(w io.Writer, format string, neighbors []gazetteer.Neighbor) error {
	if format == OutputJSON {
		return renderJSON(w, dto.NewNearestResponse(0, 0, len(neighbors), neighbors).Neighbors)
	}
	if len(neighbors) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Ancient name", "Modern name", "Type", "Distance (km)"})
	for _, n := range neighbors {
		t.AppendRow(table.Row{n.Settlement.AncientName, n.Settlement.ModernName, n.Settlement.Type, strconv.FormatFloat(n.DistanceKm, 'f', 1, 64)})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(neighbors))
	return nil
}

func renderTypes(w io.Writer, format string, types []gazetteer.TypeCount) error {
	if format == OutputJSON {
		return renderJSON(w, dto.NewTypesResponse(types))
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Type", "Count"})
	total := 0
	for _, tc := range types {
		t.AppendRow(table.Row{tc.Type, tc.Count})
		total += tc.Count
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
	return nil
}

func renderGroups(w io.Writer, format string, groups [][]domain.Settlement) error {
	if format == OutputJSON {
		return renderJSON(w, dto.NewDuplicatesResponse(0, groups).Groups)
	}
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, "no duplicate candidates")
		return nil
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Group", "Ancient name", "Modern name", "Lat", "Lng", "Type"})
	for i, g := range groups {
		for _, s := range g {
			t.AppendRow(table.Row{i + 1, s.AncientName, s.ModernName, coord(s.Latitude), coord(s.Longitude), s.Type})
		}
		t.AppendSeparator()
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d groups)\n", len(groups))
	return nil
}

func renderIssues(w io.Writer, format string, issues []domain.Issue) error {
	if format == OutputJSON {
		type issue struct {
			Index   int    `json:"index"`
			Name    string `json:"ancient_name"`
			Field   string `json:"field"`
			Rule    string `json:"rule"`
			Message string `json:"message"`
		}
		out := make([]issue, 0, len(issues))
		for _, is := range issues {
			out = append(out, issue{is.Index, is.Candidate.AncientName, is.Field, string(is.Rule), is.Message})
		}
		return renderJSON(w, out)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Ancient name", "Field", "Rule", "Message"})
	for _, is := range issues {
		t.AppendRow(table.Row{is.Index, is.Candidate.AncientName, is.Field, is.Rule, is.Message})
	}
	t.Render()
	return nil
}
