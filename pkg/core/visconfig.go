package core

// SeriesConfig overrides the presentation of one y-series.
type SeriesConfig struct {
	Field       string `yaml:"field" json:"field"`
	Mark        string `yaml:"mark,omitempty" json:"mark,omitempty"` // line, bar, area, scatter
	Axis        string `yaml:"axis,omitempty" json:"axis,omitempty"` // y1 or y2
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
	Dashed      []int  `yaml:"dashed,omitempty" json:"dashed,omitempty"`
	LabelFormat string `yaml:"label_format,omitempty" json:"label_format,omitempty"`
}

// ReferenceLine draws a horizontal marker across a cartesian chart.
type ReferenceLine struct {
	Value float64 `yaml:"value" json:"value"`
	Label string  `yaml:"label,omitempty" json:"label,omitempty"`
	Color string  `yaml:"color,omitempty" json:"color,omitempty"`
}

// VisConfig is the bag of presentation knobs for a tile. Almost everything
// is optional; each chart-family spec builder in pkg/omni reads only the
// subset it understands and ignores the rest.
//
// Legacy documents may set "color" instead of "color_by"; Normalize folds
// the alias once at construction/decode time rather than scattering the
// aliasing through the builders.
type VisConfig struct {
	// Axis bindings.
	XAxis   string   `yaml:"x_axis,omitempty" json:"x_axis,omitempty"`
	YAxis   []string `yaml:"y_axis,omitempty" json:"y_axis,omitempty"`
	ColorBy string   `yaml:"color_by,omitempty" json:"color_by,omitempty"`
	Color   string   `yaml:"color,omitempty" json:"color,omitempty"` // deprecated alias for color_by

	// Axis presentation.
	XAxisLabel  string `yaml:"x_axis_label,omitempty" json:"x_axis_label,omitempty"`
	YAxisLabel  string `yaml:"y_axis_label,omitempty" json:"y_axis_label,omitempty"`
	Y2AxisLabel string `yaml:"y2_axis_label,omitempty" json:"y2_axis_label,omitempty"`

	// Format codes (vendor format vocabulary, e.g. "usd_0", "pct_1").
	ValueFormat  string `yaml:"value_format,omitempty" json:"value_format,omitempty"`
	XAxisFormat  string `yaml:"x_axis_format,omitempty" json:"x_axis_format,omitempty"`
	YAxisFormat  string `yaml:"y_axis_format,omitempty" json:"y_axis_format,omitempty"`
	Y2AxisFormat string `yaml:"y2_axis_format,omitempty" json:"y2_axis_format,omitempty"`

	// Chart-wide toggles.
	ShowValues     bool   `yaml:"show_values,omitempty" json:"show_values,omitempty"`
	HideLegend     bool   `yaml:"hide_legend,omitempty" json:"hide_legend,omitempty"`
	LegendPosition string `yaml:"legend_position,omitempty" json:"legend_position,omitempty"`
	ShowGridLines  bool   `yaml:"show_grid_lines,omitempty" json:"show_grid_lines,omitempty"`

	// Per-series overrides; when empty, cartesian builders derive series
	// from the query's field list.
	Series []SeriesConfig `yaml:"series,omitempty" json:"series,omitempty"`

	// Reference lines.
	ReferenceLines []ReferenceLine `yaml:"reference_lines,omitempty" json:"reference_lines,omitempty"`

	// KPI tiles.
	ComparisonField string `yaml:"comparison_field,omitempty" json:"comparison_field,omitempty"`
	ComparisonType  string `yaml:"comparison_type,omitempty" json:"comparison_type,omitempty"` // change, percent_change, value
	ComparisonLabel string `yaml:"comparison_label,omitempty" json:"comparison_label,omitempty"`
	Sparkline       bool   `yaml:"sparkline,omitempty" json:"sparkline,omitempty"`
	SparklineField  string `yaml:"sparkline_field,omitempty" json:"sparkline_field,omitempty"`
	Label           string `yaml:"label,omitempty" json:"label,omitempty"`
	Alignment       string `yaml:"alignment,omitempty" json:"alignment,omitempty"`

	// Markdown/text tiles.
	Markdown string `yaml:"markdown,omitempty" json:"markdown,omitempty"`

	// Table tiles.
	ColumnFormats map[string]string `yaml:"column_formats,omitempty" json:"column_formats,omitempty"`
	ColumnLabels  map[string]string `yaml:"column_labels,omitempty" json:"column_labels,omitempty"`
	FrozenColumn  string            `yaml:"frozen_column,omitempty" json:"frozen_column,omitempty"`

	// Heatmap tiles.
	ColorField  string `yaml:"color_field,omitempty" json:"color_field,omitempty"`
	ColorScheme string `yaml:"color_scheme,omitempty" json:"color_scheme,omitempty"`

	// Pass-through spec for custom/vega-lite visualizations.
	CustomSpec map[string]any `yaml:"custom_spec,omitempty" json:"custom_spec,omitempty"`
}

// Normalize resolves legacy aliases. It runs once wherever a VisConfig
// enters the system (builder, document decode, export decode); downstream
// consumers can then assume canonical field names.
func (v *VisConfig) Normalize() {
	if v == nil {
		return
	}
	if v.ColorBy == "" && v.Color != "" {
		v.ColorBy = v.Color
	}
	v.Color = ""
}

// IsZero reports whether no knob is set, so encoders can omit the block.
func (v *VisConfig) IsZero() bool {
	if v == nil {
		return true
	}
	return v.XAxis == "" && len(v.YAxis) == 0 && v.ColorBy == "" && v.Color == "" &&
		v.XAxisLabel == "" && v.YAxisLabel == "" && v.Y2AxisLabel == "" &&
		v.ValueFormat == "" && v.XAxisFormat == "" && v.YAxisFormat == "" && v.Y2AxisFormat == "" &&
		!v.ShowValues && !v.HideLegend && v.LegendPosition == "" && !v.ShowGridLines &&
		len(v.Series) == 0 && len(v.ReferenceLines) == 0 &&
		v.ComparisonField == "" && v.ComparisonType == "" && v.ComparisonLabel == "" &&
		!v.Sparkline && v.SparklineField == "" && v.Label == "" && v.Alignment == "" &&
		v.Markdown == "" &&
		len(v.ColumnFormats) == 0 && len(v.ColumnLabels) == 0 && v.FrozenColumn == "" &&
		v.ColorField == "" && v.ColorScheme == "" &&
		len(v.CustomSpec) == 0
}

// FormatCodes returns every format code referenced by the config, for
// validation against the known-format catalog.
func (v *VisConfig) FormatCodes() []string {
	if v == nil {
		return nil
	}
	var codes []string
	add := func(c string) {
		if c != "" {
			codes = append(codes, c)
		}
	}
	add(v.ValueFormat)
	add(v.XAxisFormat)
	add(v.YAxisFormat)
	add(v.Y2AxisFormat)
	for _, s := range v.Series {
		add(s.LabelFormat)
	}
	for _, f := range v.ColumnFormats {
		add(f)
	}
	return codes
}
