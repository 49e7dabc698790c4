package omni

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// buildVisSpec dispatches to the chart-family builder. Each builder reads
// only the vis-config subset its family understands; everything else in the
// config is ignored rather than leaked onto the wire.
func buildVisSpec(tile *core.Tile) map[string]any {
	v := &tile.VisConfig
	switch {
	case tile.ChartType.IsKPI():
		return buildKPISpec(tile)
	case tile.ChartType == core.ChartText:
		return buildMarkdownSpec(tile)
	case tile.ChartType == core.ChartTable || tile.ChartType == core.ChartPivotTable:
		return buildTableSpec(tile)
	case tile.ChartType == core.ChartHeatmap:
		return buildHeatmapSpec(tile)
	case tile.ChartType == core.ChartVegaLite:
		return buildVegaLiteSpec(tile)
	case tile.ChartType.IsCartesian() || tile.ChartType == core.ChartPie || tile.ChartType == core.ChartDonut:
		return buildCartesianSpec(tile)
	default:
		if v.IsZero() {
			return nil
		}
		return map[string]any{"custom": v.CustomSpec}
	}
}

// buildKPISpec builds the platform's "markdown config" block for a KPI
// tile: the value field plus optional comparison and sparkline sections.
func buildKPISpec(tile *core.Tile) map[string]any {
	v := &tile.VisConfig

	valueField := ""
	if len(tile.Query.Fields) > 0 {
		valueField = tile.Query.Fields[0]
	}

	kpi := map[string]any{
		"type":  "kpi",
		"field": valueField,
	}
	if v.ValueFormat != "" {
		kpi["valueFormat"] = v.ValueFormat
	}
	if v.Label != "" {
		kpi["label"] = v.Label
	}
	if v.Alignment != "" {
		kpi["alignment"] = v.Alignment
	}
	if v.ComparisonField != "" {
		comparison := map[string]any{"field": v.ComparisonField}
		if v.ComparisonType != "" {
			comparison["type"] = v.ComparisonType
		}
		if v.ComparisonLabel != "" {
			comparison["label"] = v.ComparisonLabel
		}
		kpi["comparison"] = comparison
	}
	if v.Sparkline {
		spark := map[string]any{"enabled": true}
		if v.SparklineField != "" {
			spark["field"] = v.SparklineField
		}
		kpi["sparkline"] = spark
	}
	return map[string]any{"markdownConfig": kpi}
}

// buildMarkdownSpec builds the spec for a markdown/text tile.
func buildMarkdownSpec(tile *core.Tile) map[string]any {
	if tile.VisConfig.Markdown == "" {
		return nil
	}
	return map[string]any{"markdown": tile.VisConfig.Markdown}
}

// buildTableSpec builds the spec for table and pivot-table tiles.
func buildTableSpec(tile *core.Tile) map[string]any {
	v := &tile.VisConfig
	spec := map[string]any{}
	if len(v.ColumnFormats) > 0 {
		spec["columnFormats"] = v.ColumnFormats
	}
	if len(v.ColumnLabels) > 0 {
		spec["columnLabels"] = v.ColumnLabels
	}
	if v.FrozenColumn != "" {
		spec["frozenColumn"] = v.FrozenColumn
	}
	if len(spec) == 0 {
		return nil
	}
	return spec
}

// buildHeatmapSpec builds the spec for heatmap tiles.
func buildHeatmapSpec(tile *core.Tile) map[string]any {
	v := &tile.VisConfig
	spec := map[string]any{}
	if v.XAxis != "" {
		spec["xAxis"] = v.XAxis
	}
	if len(v.YAxis) > 0 {
		spec["yAxis"] = v.YAxis[0]
	}
	if v.ColorField != "" {
		spec["colorField"] = v.ColorField
	}
	if v.ColorScheme != "" {
		spec["colorScheme"] = v.ColorScheme
	}
	if len(spec) == 0 {
		return nil
	}
	return spec
}

// buildVegaLiteSpec passes the custom spec through untouched.
func buildVegaLiteSpec(tile *core.Tile) map[string]any {
	if len(tile.VisConfig.CustomSpec) == 0 {
		return nil
	}
	return map[string]any{"spec": tile.VisConfig.CustomSpec}
}

// buildCartesianSpec builds the spec for the series-against-x families.
// When no explicit series configuration is supplied, the y-series list is
// derived from the query's fields, excluding the x axis, the color-by field
// and any pivot fields.
func buildCartesianSpec(tile *core.Tile) map[string]any {
	v := &tile.VisConfig
	spec := map[string]any{}

	if v.XAxis != "" {
		spec["xAxis"] = v.XAxis
	}
	if v.ColorBy != "" {
		spec["colorBy"] = v.ColorBy
	}
	if v.XAxisLabel != "" {
		spec["xAxisLabel"] = v.XAxisLabel
	}
	if v.YAxisLabel != "" {
		spec["yAxisLabel"] = v.YAxisLabel
	}
	if v.Y2AxisLabel != "" {
		spec["y2AxisLabel"] = v.Y2AxisLabel
	}
	if v.XAxisFormat != "" {
		spec["xAxisFormat"] = v.XAxisFormat
	}
	if v.YAxisFormat != "" {
		spec["yAxisFormat"] = v.YAxisFormat
	}
	if v.Y2AxisFormat != "" {
		spec["y2AxisFormat"] = v.Y2AxisFormat
	}
	if v.ValueFormat != "" {
		spec["valueFormat"] = v.ValueFormat
	}
	if v.ShowValues {
		spec["showValues"] = true
	}
	if v.HideLegend {
		spec["hideLegend"] = true
	}
	if v.LegendPosition != "" {
		spec["legendPosition"] = v.LegendPosition
	}
	if v.ShowGridLines {
		spec["showGridLines"] = true
	}

	series := v.Series
	if len(series) == 0 {
		series = deriveSeries(tile)
	}
	var wireSeries []map[string]any
	for _, s := range series {
		ws := map[string]any{"field": s.Field}
		if s.Mark != "" {
			ws["mark"] = s.Mark
		} else {
			ws["mark"] = defaultMark(tile.ChartType)
		}
		if s.Axis != "" {
			ws["axis"] = s.Axis
		}
		if s.Color != "" {
			ws["color"] = s.Color
		}
		if len(s.Dashed) > 0 {
			ws["dashed"] = s.Dashed
		}
		if s.LabelFormat != "" {
			ws["labelFormat"] = s.LabelFormat
		}
		wireSeries = append(wireSeries, ws)
	}
	if len(wireSeries) > 0 {
		spec["series"] = wireSeries
	}

	var refLines []map[string]any
	for _, rl := range v.ReferenceLines {
		line := map[string]any{"value": rl.Value}
		if rl.Label != "" {
			line["label"] = rl.Label
		}
		if rl.Color != "" {
			line["color"] = rl.Color
		}
		refLines = append(refLines, line)
	}
	if len(refLines) > 0 {
		spec["referenceLines"] = refLines
	}

	if len(spec) == 0 {
		return nil
	}
	return spec
}

// deriveSeries builds the default y-series from the queried fields,
// excluding the x axis, the color-by field and pivot fields.
func deriveSeries(tile *core.Tile) []core.SeriesConfig {
	v := &tile.VisConfig
	excluded := map[string]bool{}
	if v.XAxis != "" {
		excluded[v.XAxis] = true
	}
	if v.ColorBy != "" {
		excluded[v.ColorBy] = true
	}
	for _, p := range tile.Query.Pivots {
		excluded[p] = true
	}

	var series []core.SeriesConfig
	for _, f := range tile.Query.Fields {
		if excluded[f] {
			continue
		}
		series = append(series, core.SeriesConfig{Field: f})
	}
	return series
}

// defaultMark maps a chart type to its series mark on the wire.
func defaultMark(ct core.ChartType) string {
	switch ct {
	case core.ChartBar, core.ChartStackedBar, core.ChartGroupedBar:
		return "bar"
	case core.ChartArea, core.ChartStackedArea:
		return "area"
	case core.ChartScatter:
		return "scatter"
	case core.ChartPie, core.ChartDonut:
		return "arc"
	default:
		return "line"
	}
}

// wireVisConfig is the decode target for an export's free-form visConfig
// map, matching the key names the builders above emit.
type wireVisConfig struct {
	XAxis          string            `mapstructure:"xAxis"`
	YAxis          string            `mapstructure:"yAxis"`
	ColorBy        string            `mapstructure:"colorBy"`
	XAxisLabel     string            `mapstructure:"xAxisLabel"`
	YAxisLabel     string            `mapstructure:"yAxisLabel"`
	Y2AxisLabel    string            `mapstructure:"y2AxisLabel"`
	XAxisFormat    string            `mapstructure:"xAxisFormat"`
	YAxisFormat    string            `mapstructure:"yAxisFormat"`
	Y2AxisFormat   string            `mapstructure:"y2AxisFormat"`
	ValueFormat    string            `mapstructure:"valueFormat"`
	ShowValues     bool              `mapstructure:"showValues"`
	HideLegend     bool              `mapstructure:"hideLegend"`
	LegendPosition string            `mapstructure:"legendPosition"`
	ShowGridLines  bool              `mapstructure:"showGridLines"`
	Markdown       string            `mapstructure:"markdown"`
	ColumnFormats  map[string]string `mapstructure:"columnFormats"`
	ColumnLabels   map[string]string `mapstructure:"columnLabels"`
	FrozenColumn   string            `mapstructure:"frozenColumn"`
	ColorField     string            `mapstructure:"colorField"`
	ColorScheme    string            `mapstructure:"colorScheme"`
	Spec           map[string]any    `mapstructure:"spec"`

	Series []struct {
		Field       string `mapstructure:"field"`
		Mark        string `mapstructure:"mark"`
		Axis        string `mapstructure:"axis"`
		Color       string `mapstructure:"color"`
		Dashed      []int  `mapstructure:"dashed"`
		LabelFormat string `mapstructure:"labelFormat"`
	} `mapstructure:"series"`

	ReferenceLines []struct {
		Value float64 `mapstructure:"value"`
		Label string  `mapstructure:"label"`
		Color string  `mapstructure:"color"`
	} `mapstructure:"referenceLines"`

	MarkdownConfig struct {
		Field       string `mapstructure:"field"`
		ValueFormat string `mapstructure:"valueFormat"`
		Label       string `mapstructure:"label"`
		Alignment   string `mapstructure:"alignment"`
		Comparison  struct {
			Field string `mapstructure:"field"`
			Type  string `mapstructure:"type"`
			Label string `mapstructure:"label"`
		} `mapstructure:"comparison"`
		Sparkline struct {
			Enabled bool   `mapstructure:"enabled"`
			Field   string `mapstructure:"field"`
		} `mapstructure:"sparkline"`
	} `mapstructure:"markdownConfig"`
}

// decodeVisSpec reconstructs a typed vis config from an export's visConfig
// map. Keys the builders never emit are ignored; a decode failure yields an
// empty config rather than failing the whole import.
func decodeVisSpec(raw map[string]any, ct core.ChartType) core.VisConfig {
	if len(raw) == 0 {
		return core.VisConfig{}
	}

	var w wireVisConfig
	if err := mapstructure.Decode(raw, &w); err != nil {
		return core.VisConfig{}
	}

	v := core.VisConfig{
		XAxis:          w.XAxis,
		ColorBy:        w.ColorBy,
		XAxisLabel:     w.XAxisLabel,
		YAxisLabel:     w.YAxisLabel,
		Y2AxisLabel:    w.Y2AxisLabel,
		XAxisFormat:    w.XAxisFormat,
		YAxisFormat:    w.YAxisFormat,
		Y2AxisFormat:   w.Y2AxisFormat,
		ValueFormat:    w.ValueFormat,
		ShowValues:     w.ShowValues,
		HideLegend:     w.HideLegend,
		LegendPosition: w.LegendPosition,
		ShowGridLines:  w.ShowGridLines,
		Markdown:       w.Markdown,
		ColumnFormats:  w.ColumnFormats,
		ColumnLabels:   w.ColumnLabels,
		FrozenColumn:   w.FrozenColumn,
		ColorField:     w.ColorField,
		ColorScheme:    w.ColorScheme,
	}
	if w.YAxis != "" {
		v.YAxis = []string{w.YAxis}
	}

	for _, s := range w.Series {
		v.Series = append(v.Series, core.SeriesConfig{
			Field:       s.Field,
			Mark:        s.Mark,
			Axis:        s.Axis,
			Color:       s.Color,
			Dashed:      s.Dashed,
			LabelFormat: s.LabelFormat,
		})
	}
	for _, rl := range w.ReferenceLines {
		v.ReferenceLines = append(v.ReferenceLines, core.ReferenceLine{
			Value: rl.Value,
			Label: rl.Label,
			Color: rl.Color,
		})
	}

	if ct.IsKPI() {
		v.ValueFormat = w.MarkdownConfig.ValueFormat
		v.Label = w.MarkdownConfig.Label
		v.Alignment = w.MarkdownConfig.Alignment
		v.ComparisonField = w.MarkdownConfig.Comparison.Field
		v.ComparisonType = w.MarkdownConfig.Comparison.Type
		v.ComparisonLabel = w.MarkdownConfig.Comparison.Label
		v.Sparkline = w.MarkdownConfig.Sparkline.Enabled
		v.SparklineField = w.MarkdownConfig.Sparkline.Field
	}
	if ct == core.ChartVegaLite {
		v.CustomSpec = w.Spec
	}

	v.Normalize()
	return v
}
