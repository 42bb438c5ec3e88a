package sources

import (
	"bufio"
	"context"
	"fmt"
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/platform/obs"
	"io"
	"os"
	"regexp"
	"strings"
)

// JSLiteralFileSource reads the hand-maintained JavaScript array format:
//
//	const settlements = [
//	    { name: 'Athens', modern: 'Athens', lat: 37.9838, lng: 23.7275, type: 'Major Polis' },
//	];
//
// One record per line. Comments, blank lines and the array brackets are skipped.
type JSLiteralFileSource struct {
	Path string
}

func NewJSLiteralFileSource(path string) *JSLiteralFileSource {
	return &JSLiteralFileSource{Path: path}
}

var (
	jsRecordLine = regexp.MustCompile(`^\{\s*name:`)
	jsName       = regexp.MustCompile(`name: '((?:[^'\\]|\\.)*)'`)
	jsModern     = regexp.MustCompile(`modern: '((?:[^'\\]|\\.)*)'`)
	jsType       = regexp.MustCompile(`type: '((?:[^'\\]|\\.)*)'`)
	jsLat        = regexp.MustCompile(`lat: ([-+\d.eE]+)`)
	jsLng        = regexp.MustCompile(`lng: ([-+\d.eE]+)`)
)

func (s *JSLiteralFileSource) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "source.js.ListCandidates")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("js source: open %q: %w", s.Path, err)
	}
	defer f.Close()

	out, err := ParseJSLiteral(f)
	if err != nil {
		return nil, fmt.Errorf("js source: %q: %w", s.Path, err)
	}
	return out, nil
}

// ParseJSLiteral extracts candidates from the JavaScript array format.
// A record line missing any of its five fields is an error, never skipped.
func ParseJSLiteral(r io.Reader) ([]domain.Candidate, error) {
	sc := bufio.NewScanner(r)

	var out []domain.Candidate
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !jsRecordLine.MatchString(line) {
			continue
		}

		name := jsName.FindStringSubmatch(line)
		modern := jsModern.FindStringSubmatch(line)
		lat := jsLat.FindStringSubmatch(line)
		lng := jsLng.FindStringSubmatch(line)
		tag := jsType.FindStringSubmatch(line)
		if name == nil || modern == nil || lat == nil || lng == nil || tag == nil {
			return nil, fmt.Errorf("parse js literal: line %d: incomplete record: %s", lineNo, line)
		}

		out = append(out, domain.Candidate{
			AncientName: unescapeJS(name[1]),
			ModernName:  unescapeJS(modern[1]),
			Latitude:    lat[1],
			Longitude:   lng[1],
			Type:        unescapeJS(tag[1]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse js literal: line %d: %w", lineNo, err)
	}

	return out, nil
}

func unescapeJS(s string) string {
	return strings.NewReplacer(`\'`, `'`, `\\`, `\`).Replace(s)
}
