package omni

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// The export's layout grid is wider and taller than the internal one:
// 24 columns and half-height rows. Rescaling halves every coordinate and
// clamps the width so no tile exceeds 12 columns afterwards.
const (
	exportGridColumns = 24
	exportScale       = exportGridColumns / core.GridColumns
)

// ParseExport unmarshals a raw export payload.
func ParseExport(data []byte) (*Export, error) {
	var ex Export
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("invalid export payload: %w", err)
	}
	return &ex, nil
}

// FromExport reconstructs a dashboard definition from an export payload.
// Chart-type synonyms collapse to one internal type and grid units are
// rescaled; the result round-trips back through BuildCreatePayload.
func FromExport(ex *Export) (*core.Dashboard, error) {
	src := &ex.Document.Dashboard
	if src.Name == "" {
		return nil, &core.StructuralError{Field: "document.dashboard.name", Message: "export has no dashboard name"}
	}

	d := &core.Dashboard{
		Name:            src.Name,
		Description:     src.Description,
		ModelID:         src.ModelID,
		RefreshInterval: src.RefreshInterval,
		Labels:          src.Labels,
	}

	positions := map[string]core.Position{}
	for _, item := range src.Metadata.Layouts.LG {
		positions[item.I] = rescalePosition(item)
	}

	for _, m := range src.QueryPresentationCollection.QueryPresentationCollectionMemberships {
		qp := &m.QueryPresentation
		ct := InternalChartType(qp.ChartType)

		var pos *core.Position
		if p, ok := positions[qp.ID]; ok {
			pp := p
			pos = &pp
		}

		if ct == core.ChartText {
			d.TextTiles = append(d.TextTiles, core.TextTile{
				Content:  markdownContent(qp.VisConfig),
				Position: pos,
			})
			continue
		}

		d.Tiles = append(d.Tiles, core.Tile{
			Name:        qp.Name,
			Description: qp.Description,
			ChartType:   ct,
			Query:       decodeQuery(&qp.Query),
			VisConfig:   decodeVisSpec(qp.VisConfig, ct),
			Position:    pos,
		})
		if d.ModelID == "" && qp.Query.ModelID != "" {
			d.ModelID = qp.Query.ModelID
		}
	}

	for _, fc := range src.FilterConfig {
		d.Filters = append(d.Filters, core.DashboardFilter{
			Field:    fc.Field,
			Type:     core.FilterType(fc.Type),
			Label:    fc.Label,
			Default:  fc.Default,
			Required: fc.Required,
			Options:  fc.Options,
		})
	}

	return d, nil
}

// rescalePosition converts an export rectangle into internal grid units,
// clamping so the result still satisfies the 12-column invariant.
func rescalePosition(item ExportLayoutItem) core.Position {
	p := core.Position{
		X: item.X / exportScale,
		Y: item.Y / exportScale,
		W: item.W / exportScale,
		H: item.H / exportScale,
	}
	if p.W < 1 {
		p.W = 1
	}
	if p.H < 1 {
		p.H = 1
	}
	if p.W > core.GridColumns {
		p.W = core.GridColumns
	}
	if p.X > core.GridColumns-1 {
		p.X = core.GridColumns - 1
	}
	if p.X+p.W > core.GridColumns {
		p.X = core.GridColumns - p.W
	}
	return p
}

// markdownContent pulls the markdown body out of a text tile's vis config.
func markdownContent(visConfig map[string]any) string {
	if s, ok := visConfig["markdown"].(string); ok {
		return strings.TrimRight(s, "\n")
	}
	return ""
}
