package omni

import (
	"fmt"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// BuildCreatePayload translates a definition into the platform's creation
// payload. It fails before any I/O if the dashboard has no model id: the
// API requires one on every query and there is no sensible default to
// guess. The definition is only read, never mutated.
func BuildCreatePayload(d *core.Dashboard) (*CreatePayload, error) {
	if d.ModelID == "" {
		return nil, &core.ConfigError{Message: "dashboard has no model_id; set one before serializing"}
	}

	payload := &CreatePayload{
		ModelID:         d.ModelID,
		Name:            d.Name,
		Description:     d.Description,
		FolderID:        d.FolderID,
		RefreshInterval: d.RefreshInterval,
		Labels:          d.Labels,
		Theme:           d.Theme,
		TileFilterMap:   d.TileFilterMap,
	}

	for i := range d.Tiles {
		tile := &d.Tiles[i]
		qp := QueryPresentation{
			Name:         tile.Name,
			Description:  tile.Description,
			Query:        encodeQuery(d, tile),
			ChartType:    VendorChartType(tile.ChartType),
			PrefersChart: tile.ChartType != core.ChartTable && tile.ChartType != core.ChartPivotTable,
			VisConfig:    buildVisSpec(tile),
		}
		if tile.Position != nil {
			qp.Position = &WirePosition{X: tile.Position.X, Y: tile.Position.Y, W: tile.Position.W, H: tile.Position.H}
		}
		payload.QueryPresentations = append(payload.QueryPresentations, qp)

		// Hidden tiles are a top-level concern on the wire, not per-tile.
		if tile.Hidden {
			payload.HiddenTiles = append(payload.HiddenTiles, tile.Name)
		}
	}

	for i := range d.TextTiles {
		payload.QueryPresentations = append(payload.QueryPresentations, encodeTextTile(d, &d.TextTiles[i], i))
	}

	for _, f := range d.Filters {
		payload.FilterConfig = append(payload.FilterConfig, FilterConfig{
			Field:    f.Field,
			Type:     string(f.Type),
			Label:    f.Label,
			Default:  f.Default,
			Required: f.Required,
			Options:  f.Options,
		})
		payload.FilterOrder = append(payload.FilterOrder, f.Field)
	}

	return payload, nil
}

// encodeTextTile wraps a pure-content tile as a markdown presentation. The
// platform has no query-less tile type, so text tiles ride along as
// markdown presentations with an empty query.
func encodeTextTile(d *core.Dashboard, t *core.TextTile, index int) QueryPresentation {
	qp := QueryPresentation{
		Name:      textTileName(index),
		ChartType: VendorChartType(core.ChartText),
		Query: WireQuery{
			ModelID: d.ModelID,
			Fields:  []string{},
			Sorts:   []WireSort{},
			Limit:   1,
		},
		VisConfig: map[string]any{"markdown": t.Content},
	}
	if t.Position != nil {
		qp.Position = &WirePosition{X: t.Position.X, Y: t.Position.Y, W: t.Position.W, H: t.Position.H}
	}
	return qp
}

// textTileName gives text tiles stable synthetic names so re-imports can
// recognize them.
func textTileName(index int) string {
	return fmt.Sprintf("text-%d", index+1)
}
