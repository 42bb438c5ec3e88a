package sources

import (
	"fmt"
	"gazetteer-service/internal/ports"
	"path/filepath"
	"strings"
)

// Source kinds accepted by Open.
const (
	KindEmbedded = "embedded"
	KindJSON     = "json"
	KindYAML     = "yaml"
	KindJS       = "js"
)

// Open selects a file-based source by kind, or by the file extension when kind is empty.
// With neither kind nor path the embedded catalog is returned.
func Open(kind, path string) (ports.SettlementSource, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		if path == "" {
			return Embedded(), nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			kind = KindJSON
		case ".yaml", ".yml":
			kind = KindYAML
		case ".js":
			kind = KindJS
		default:
			return nil, fmt.Errorf("open source: cannot infer kind from %q", path)
		}
	}

	if kind != KindEmbedded && path == "" {
		return nil, fmt.Errorf("open source: kind %q needs a path", kind)
	}

	switch kind {
	case KindEmbedded:
		return Embedded(), nil
	case KindJSON:
		return NewJSONFileSource(path), nil
	case KindYAML:
		return NewYAMLFileSource(path), nil
	case KindJS:
		return NewJSLiteralFileSource(path), nil
	default:
		return nil, fmt.Errorf("open source: unknown kind %q", kind)
	}
}
