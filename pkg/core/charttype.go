package core

// ChartType is the closed set of visualizations a tile can render.
// The vendor translation tables in pkg/omni must stay total over this set;
// their exhaustiveness is enforced by tests there.
type ChartType string

// Chart type constants.
const (
	ChartLine        ChartType = "line"
	ChartBar         ChartType = "bar"
	ChartArea        ChartType = "area"
	ChartScatter     ChartType = "scatter"
	ChartPie         ChartType = "pie"
	ChartDonut       ChartType = "donut"
	ChartTable       ChartType = "table"
	ChartNumber      ChartType = "number"
	ChartFunnel      ChartType = "funnel"
	ChartHeatmap     ChartType = "heatmap"
	ChartStackedBar  ChartType = "stacked_bar"
	ChartStackedArea ChartType = "stacked_area"
	ChartGroupedBar  ChartType = "grouped_bar"
	ChartCombo       ChartType = "combo"
	ChartPivotTable  ChartType = "pivot_table"
	ChartText        ChartType = "text"
	ChartVegaLite    ChartType = "vegalite"
)

// AllChartTypes returns the closed enum in a stable order.
func AllChartTypes() []ChartType {
	return []ChartType{
		ChartLine, ChartBar, ChartArea, ChartScatter, ChartPie, ChartDonut,
		ChartTable, ChartNumber, ChartFunnel, ChartHeatmap, ChartStackedBar,
		ChartStackedArea, ChartGroupedBar, ChartCombo, ChartPivotTable,
		ChartText, ChartVegaLite,
	}
}

var chartTypeSet = func() map[ChartType]bool {
	m := make(map[ChartType]bool, len(AllChartTypes()))
	for _, ct := range AllChartTypes() {
		m[ct] = true
	}
	return m
}()

// Valid reports whether ct is a member of the closed enum.
func (ct ChartType) Valid() bool {
	return chartTypeSet[ct]
}

// IsKPI reports whether ct is the single-value summary type, which gets
// special normalization during serialization (no sorts, limit 1).
func (ct ChartType) IsKPI() bool {
	return ct == ChartNumber
}

// IsCartesian reports whether ct plots series against an x axis.
func (ct ChartType) IsCartesian() bool {
	switch ct {
	case ChartLine, ChartBar, ChartArea, ChartScatter, ChartStackedBar,
		ChartStackedArea, ChartGroupedBar, ChartCombo, ChartFunnel:
		return true
	}
	return false
}

// ParseChartType converts a string to a ChartType.
// Returns the chart type and true if valid, or empty and false if not.
func ParseChartType(s string) (ChartType, bool) {
	ct := ChartType(s)
	return ct, ct.Valid()
}
