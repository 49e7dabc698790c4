package omni

import "github.com/leapstack-labs/leapboard/pkg/core"

// chartTypeToVendor maps every internal chart type to the platform's
// vocabulary. Several internal types collapse to one vendor type: the
// platform has no native donut (pie with a hole toggle) and renders pivot
// tables as plain tables.
//
// The table must stay total over core.AllChartTypes; exhaustiveness is
// checked in tests so adding an enum variant without a mapping fails CI.
var chartTypeToVendor = map[core.ChartType]string{
	core.ChartLine:        "line",
	core.ChartBar:         "bar",
	core.ChartArea:        "area",
	core.ChartScatter:     "scatterplot",
	core.ChartPie:         "pie",
	core.ChartDonut:       "pie",
	core.ChartTable:       "table",
	core.ChartPivotTable:  "table",
	core.ChartNumber:      "kpi",
	core.ChartFunnel:      "funnel",
	core.ChartHeatmap:     "heatmap",
	core.ChartStackedBar:  "stackedBar",
	core.ChartStackedArea: "stackedArea",
	core.ChartGroupedBar:  "groupedBar",
	core.ChartCombo:       "mixed",
	core.ChartText:        "markdown",
	core.ChartVegaLite:    "vegaLite",
}

// vendorToChartType reverses the mapping, additionally collapsing the
// platform's synonyms ("kpi" and "summaryValue" are the same visual on
// different API versions). It is a left-inverse of chartTypeToVendor:
// everything the forward table produces maps back to some internal type,
// though collapsed aliases (donut, pivot_table) come back as their
// canonical collapse target.
var vendorToChartType = map[string]core.ChartType{
	"line":         core.ChartLine,
	"bar":          core.ChartBar,
	"area":         core.ChartArea,
	"scatterplot":  core.ChartScatter,
	"scatter":      core.ChartScatter,
	"pie":          core.ChartPie,
	"donut":        core.ChartDonut,
	"table":        core.ChartTable,
	"pivot":        core.ChartPivotTable,
	"kpi":          core.ChartNumber,
	"summaryValue": core.ChartNumber,
	"singleValue":  core.ChartNumber,
	"funnel":       core.ChartFunnel,
	"heatmap":      core.ChartHeatmap,
	"stackedBar":   core.ChartStackedBar,
	"stackedArea":  core.ChartStackedArea,
	"groupedBar":   core.ChartGroupedBar,
	"mixed":        core.ChartCombo,
	"combo":        core.ChartCombo,
	"markdown":     core.ChartText,
	"text":         core.ChartText,
	"vegaLite":     core.ChartVegaLite,
	"vega":         core.ChartVegaLite,
}

// VendorChartType returns the platform chart type for an internal one.
// The internal enum is closed, so lookup misses indicate an enum variant
// added without a table entry; the safe fallback passes the raw value
// through so a dashboard is still created.
func VendorChartType(ct core.ChartType) string {
	if v, ok := chartTypeToVendor[ct]; ok {
		return v
	}
	return string(ct)
}

// InternalChartType returns the internal chart type for a platform one.
// Unknown vendor types fall back to table, which can render any query.
func InternalChartType(vendor string) core.ChartType {
	if ct, ok := vendorToChartType[vendor]; ok {
		return ct
	}
	return core.ChartTable
}
