package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// ParseError reports a malformed document.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// UnknownFieldError reports an unrecognized top-level document key.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q at document root, use \"meta\" for custom fields", e.Field)
}

// Decode parses a document and reconstructs the definition, including the
// defaults Encode omitted. Structural problems (bad positions, unknown
// chart types) fail the decode; consistency issues are the validator's job.
func Decode(data []byte) (*core.Dashboard, error) {
	// First pass: reject unknown top-level keys.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for field := range raw {
		if !knownTopLevelFields[field] {
			return nil, &UnknownFieldError{Field: field}
		}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to parse document: %v", err)}
	}
	if doc.Version != 0 && doc.Version != Version {
		return nil, &ParseError{Message: fmt.Sprintf("unsupported document version %d", doc.Version)}
	}
	if doc.Dashboard == nil {
		return nil, &ParseError{Message: "document has no dashboard block"}
	}

	d := doc.Dashboard
	d.SourceTemplate = doc.SourceTemplate
	d.DBTModel = doc.DBTModel
	d.Meta = doc.Meta

	if err := normalize(d); err != nil {
		return nil, err
	}
	return d, nil
}

// normalize applies decode-time defaults and fail-fast structural checks.
func normalize(d *core.Dashboard) error {
	if d.Name == "" {
		return &core.StructuralError{Field: "dashboard.name", Message: "dashboard requires a name"}
	}
	for i := range d.Tiles {
		t := &d.Tiles[i]
		t.VisConfig.Normalize()
		if t.Query.Limit == 0 {
			t.Query.Limit = core.DefaultLimit
		}
		if !t.ChartType.Valid() {
			return &core.StructuralError{
				Field:   "tile.chart_type",
				Message: fmt.Sprintf("tile %q: unknown chart type %q", t.Name, t.ChartType),
			}
		}
		if !t.Size.Valid() {
			return &core.StructuralError{
				Field:   "tile.size",
				Message: fmt.Sprintf("tile %q: unknown size %q", t.Name, t.Size),
			}
		}
		if t.Position != nil {
			if err := t.Position.Validate(); err != nil {
				return fmt.Errorf("tile %q: %w", t.Name, err)
			}
		}
	}
	for i := range d.TextTiles {
		if p := d.TextTiles[i].Position; p != nil {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("text tile %d: %w", i+1, err)
			}
		}
	}
	return nil
}
