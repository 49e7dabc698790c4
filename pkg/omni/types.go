package omni

// VendorDefaultLimit is the platform's own default row limit. Queries left
// at the internal placeholder default are upgraded to it on encode.
const VendorDefaultLimit = 1000

// CreatePayload is the document-creation request body.
type CreatePayload struct {
	ModelID            string              `json:"modelId"`
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	QueryPresentations []QueryPresentation `json:"queryPresentations"`
	FolderID           string              `json:"folderId,omitempty"`
	RefreshInterval    string              `json:"refreshInterval,omitempty"`
	FilterConfig       []FilterConfig      `json:"filterConfig,omitempty"`
	FilterOrder        []string            `json:"filterOrder,omitempty"`
	HiddenTiles        []string            `json:"hiddenTiles,omitempty"`
	TileFilterMap      map[string][]string `json:"tileFilterMap,omitempty"`
	Labels             []string            `json:"labels,omitempty"`
	Theme              string              `json:"theme,omitempty"`
}

// QueryPresentation is one tile on the wire: a query plus how to draw it.
type QueryPresentation struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Query        WireQuery      `json:"query"`
	ChartType    string         `json:"chartType"`
	PrefersChart bool           `json:"prefersChart"`
	VisConfig    map[string]any `json:"visConfig,omitempty"`
	Position     *WirePosition  `json:"position,omitempty"`
}

// WireQuery is the platform's query shape.
type WireQuery struct {
	Table            string                `json:"table"`
	Fields           []string              `json:"fields"`
	ModelID          string                `json:"modelId"`
	Limit            int                   `json:"limit"`
	Sorts            []WireSort            `json:"sorts"`
	Filters          map[string]WireFilter `json:"filters,omitempty"`
	CompositeFilters []WireCompositeFilter `json:"compositeFilters,omitempty"`
	Pivots           []string              `json:"pivots,omitempty"`
	Calculations     []WireCalculation     `json:"calculations,omitempty"`
	FieldMeta        map[string]any        `json:"fieldMeta,omitempty"`
	SQL              string                `json:"sql,omitempty"`
	RowTotals        bool                  `json:"rowTotals,omitempty"`
	ColumnTotals     bool                  `json:"columnTotals,omitempty"`
	FillFields       []string              `json:"fillFields,omitempty"`
}

// WireSort orders a query by one column.
type WireSort struct {
	ColumnName string `json:"columnName"`
	Descending bool   `json:"sortDescending"`
}

// WireFilter is the platform's filter shape, keyed by field in
// WireQuery.Filters. Value-style kinds carry Values; comparison kinds carry
// LeftSide/RightSide as strings.
type WireFilter struct {
	Kind       string `json:"kind"`
	Type       string `json:"type,omitempty"`
	Values     []any  `json:"values,omitempty"`
	LeftSide   string `json:"left_side,omitempty"`
	RightSide  string `json:"right_side,omitempty"`
	IsNegative bool   `json:"is_negative"`
}

// FieldFilter pairs a filter with its target field inside composite groups,
// where the map keying used by WireQuery.Filters is unavailable.
type FieldFilter struct {
	Field string `json:"field"`
	WireFilter
}

// WireCompositeFilter is an AND/OR group of field filters.
type WireCompositeFilter struct {
	Logic   string        `json:"logic"` // "AND" or "OR"
	Filters []FieldFilter `json:"filters"`
}

// WireCalculation is a derived field on the wire. Expression is the
// platform's expression-tree encoding.
type WireCalculation struct {
	Name       string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	Expression map[string]any `json:"expression"`
	Format     string         `json:"format,omitempty"`
}

// WirePosition is a tile rectangle on the creation payload. Same units as
// the internal grid; positions are copied verbatim.
type WirePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FilterConfig is a dashboard-level filter control on the wire.
type FilterConfig struct {
	Field    string   `json:"field"`
	Type     string   `json:"type"`
	Label    string   `json:"label,omitempty"`
	Default  any      `json:"default,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// Export is the platform's document export envelope.
type Export struct {
	Document ExportDocument `json:"document"`
}

// ExportDocument nests the dashboard inside the export payload.
type ExportDocument struct {
	Dashboard ExportDashboard `json:"dashboard"`
}

// ExportDashboard is the exported dashboard with its presentation
// collection and layout metadata.
type ExportDashboard struct {
	Name                        string                      `json:"name"`
	Description                 string                      `json:"description,omitempty"`
	ModelID                     string                      `json:"modelId,omitempty"`
	RefreshInterval             string                      `json:"refreshInterval,omitempty"`
	QueryPresentationCollection QueryPresentationCollection `json:"queryPresentationCollection"`
	Metadata                    ExportMetadata              `json:"metadata"`
	FilterConfig                []FilterConfig              `json:"filterConfig,omitempty"`
	Labels                      []string                    `json:"labels,omitempty"`
}

// QueryPresentationCollection holds the exported tiles.
type QueryPresentationCollection struct {
	QueryPresentationCollectionMemberships []QueryPresentationMembership `json:"queryPresentationCollectionMemberships"`
}

// QueryPresentationMembership wraps one exported tile.
type QueryPresentationMembership struct {
	QueryPresentation ExportPresentation `json:"queryPresentation"`
}

// ExportPresentation is one exported tile. VisConfig arrives as a free-form
// map and is decoded into the typed config on import.
type ExportPresentation struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Query       WireQuery      `json:"query"`
	ChartType   string         `json:"chartType"`
	VisConfig   map[string]any `json:"visConfig,omitempty"`
}

// ExportMetadata carries the export's layout information.
type ExportMetadata struct {
	Layouts ExportLayouts `json:"layouts"`
}

// ExportLayouts holds per-breakpoint tile rectangles; only the large
// breakpoint is read on import.
type ExportLayouts struct {
	LG []ExportLayoutItem `json:"lg"`
}

// ExportLayoutItem is one tile rectangle in the export's grid units, which
// are wider and taller than the internal grid and rescaled on import.
type ExportLayoutItem struct {
	I string `json:"i"` // presentation id
	X int    `json:"x"`
	Y int    `json:"y"`
	W int    `json:"w"`
	H int    `json:"h"`
}
