package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// Encode renders a definition as a document. The input is only read;
// default values are stripped from a shallow working copy so the output
// stays minimal and diff-friendly.
func Encode(d *core.Dashboard) ([]byte, error) {
	if d.Name == "" {
		return nil, &core.StructuralError{Field: "name", Message: "dashboard requires a name"}
	}

	working := *d
	working.Tiles = make([]core.Tile, len(d.Tiles))
	copy(working.Tiles, d.Tiles)
	for i := range working.Tiles {
		// The placeholder limit is the implied default; omit it.
		if working.Tiles[i].Query.Limit == core.DefaultLimit {
			working.Tiles[i].Query.Limit = 0
		}
	}

	doc := Document{
		Version:        Version,
		Dashboard:      &working,
		SourceTemplate: d.SourceTemplate,
		DBTModel:       d.DBTModel,
		Meta:           d.Meta,
	}
	// These live at the document root, not inside the dashboard block.
	working.SourceTemplate = ""
	working.DBTModel = ""
	working.Meta = nil

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return out, nil
}
