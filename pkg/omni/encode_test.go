package omni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

func baseDashboard() *core.Dashboard {
	return &core.Dashboard{
		Name:    "revenue",
		ModelID: "model-1",
		Tiles: []core.Tile{
			{
				Name:      "revenue by month",
				ChartType: core.ChartLine,
				Query: core.Query{
					Table:  "orders",
					Fields: []string{"orders.created_month", "orders.total_revenue"},
					Limit:  core.DefaultLimit,
				},
			},
		},
	}
}

func TestBuildCreatePayload_RequiresModelID(t *testing.T) {
	d := baseDashboard()
	d.ModelID = ""

	_, err := BuildCreatePayload(d)

	var cerr *core.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "model_id")
}

func TestBuildCreatePayload_LimitUpgrade(t *testing.T) {
	t.Run("placeholder default becomes the vendor default", func(t *testing.T) {
		p, err := BuildCreatePayload(baseDashboard())
		require.NoError(t, err)
		assert.Equal(t, VendorDefaultLimit, p.QueryPresentations[0].Query.Limit)
	})

	t.Run("unset limit also becomes the vendor default", func(t *testing.T) {
		d := baseDashboard()
		d.Tiles[0].Query.Limit = 0
		p, err := BuildCreatePayload(d)
		require.NoError(t, err)
		assert.Equal(t, VendorDefaultLimit, p.QueryPresentations[0].Query.Limit)
	})

	t.Run("explicit limit passes through", func(t *testing.T) {
		d := baseDashboard()
		d.Tiles[0].Query.Limit = 50
		p, err := BuildCreatePayload(d)
		require.NoError(t, err)
		assert.Equal(t, 50, p.QueryPresentations[0].Query.Limit)
	})
}

func TestBuildCreatePayload_KPINormalization(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].ChartType = core.ChartNumber
	d.Tiles[0].Query.Sorts = []core.Sort{{Column: "orders.created_month", Descending: true}}
	d.Tiles[0].Query.Limit = 500

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	q := p.QueryPresentations[0].Query
	assert.Equal(t, 1, q.Limit, "KPI queries fetch a single row")
	assert.Equal(t, []WireSort{}, q.Sorts, "KPI sorts are dropped, not nil")
	assert.Equal(t, []string{"orders.created_month", "orders.total_revenue"}, q.Fields,
		"dropped sorts do not get appended to fields")
}

func TestBuildCreatePayload_SortColumnsAppendedToFields(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Query.Sorts = []core.Sort{
		{Column: "orders.total_revenue", Descending: true}, // already queried
		{Column: "orders.margin"},                          // not queried
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	q := p.QueryPresentations[0].Query
	assert.Equal(t,
		[]string{"orders.created_month", "orders.total_revenue", "orders.margin"},
		q.Fields)
	assert.Equal(t, []WireSort{
		{ColumnName: "orders.total_revenue", Descending: true},
		{ColumnName: "orders.margin"},
	}, q.Sorts)
	// The input definition is never mutated.
	assert.Len(t, d.Tiles[0].Query.Fields, 2)
}

func TestBuildCreatePayload_PrefersChart(t *testing.T) {
	d := baseDashboard()
	d.Tiles = append(d.Tiles,
		core.Tile{Name: "raw", ChartType: core.ChartTable, Query: core.Query{Table: "orders", Fields: []string{"orders.id"}}},
		core.Tile{Name: "pvt", ChartType: core.ChartPivotTable, Query: core.Query{Table: "orders", Fields: []string{"orders.id"}}},
	)

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	assert.True(t, p.QueryPresentations[0].PrefersChart)
	assert.False(t, p.QueryPresentations[1].PrefersChart)
	assert.False(t, p.QueryPresentations[2].PrefersChart)
}

func TestBuildCreatePayload_HiddenTiles(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Hidden = true

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	assert.Equal(t, []string{"revenue by month"}, p.HiddenTiles)
}

func TestBuildCreatePayload_PositionsCopiedVerbatim(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Position = &core.Position{X: 6, Y: 2, W: 6, H: 4}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	require.NotNil(t, p.QueryPresentations[0].Position)
	assert.Equal(t, WirePosition{X: 6, Y: 2, W: 6, H: 4}, *p.QueryPresentations[0].Position)
}

func TestBuildCreatePayload_TextTiles(t *testing.T) {
	d := baseDashboard()
	d.TextTiles = []core.TextTile{
		{Content: "## Overview", Position: &core.Position{X: 0, Y: 0, W: 12, H: 2}},
		{Content: "Questions? #finance"},
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)
	require.Len(t, p.QueryPresentations, 3)

	first := p.QueryPresentations[1]
	assert.Equal(t, "text-1", first.Name)
	assert.Equal(t, "markdown", first.ChartType)
	assert.Equal(t, 1, first.Query.Limit)
	assert.Equal(t, []string{}, first.Query.Fields)
	assert.Equal(t, "model-1", first.Query.ModelID)
	assert.Equal(t, map[string]any{"markdown": "## Overview"}, first.VisConfig)
	require.NotNil(t, first.Position)

	second := p.QueryPresentations[2]
	assert.Equal(t, "text-2", second.Name)
	assert.Nil(t, second.Position)
}

func TestBuildCreatePayload_FilterConfig(t *testing.T) {
	d := baseDashboard()
	d.Filters = []core.DashboardFilter{
		{Field: "orders.region", Type: core.FilterSelect, Label: "Region", Default: "EMEA", Options: []string{"EMEA", "APAC"}},
		{Field: "orders.created_at", Type: core.FilterDateRange, Required: true},
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	require.Len(t, p.FilterConfig, 2)
	assert.Equal(t, "select", p.FilterConfig[0].Type)
	assert.Equal(t, "Region", p.FilterConfig[0].Label)
	assert.True(t, p.FilterConfig[1].Required)
	assert.Equal(t, []string{"orders.region", "orders.created_at"}, p.FilterOrder)
}

func TestBuildCreatePayload_DashboardFilterPropagation(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Query.Fields = []string{"orders.region", "orders.total_revenue"}
	d.Filters = []core.DashboardFilter{
		{Field: "orders.region", Type: core.FilterSelect, Default: "EMEA"},
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	filters := p.QueryPresentations[0].Query.Filters
	require.Contains(t, filters, "orders.region")
	assert.Equal(t, []any{"EMEA"}, filters["orders.region"].Values)
}

func TestBuildCreatePayload_SameFieldFiltersGrouped(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Query.Filters = []core.Filter{
		{Field: "orders.total_revenue", Operator: "gt", Value: 0},
		{Field: "orders.total_revenue", Operator: "lt", Value: 10},
		{Field: "orders.region", Operator: "is", Value: "EMEA"},
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	q := p.QueryPresentations[0].Query

	// A range on one field cannot live in the per-field map without one
	// bound clobbering the other, so both land in an AND group.
	assert.NotContains(t, q.Filters, "orders.total_revenue")
	require.Len(t, q.CompositeFilters, 1)
	group := q.CompositeFilters[0]
	assert.Equal(t, "AND", group.Logic)
	require.Len(t, group.Filters, 2)
	assert.Equal(t, "orders.total_revenue", group.Filters[0].Field)
	assert.Equal(t, "GREATER_THAN", group.Filters[0].Kind)
	assert.Equal(t, "orders.total_revenue", group.Filters[1].Field)
	assert.Equal(t, "LESS_THAN", group.Filters[1].Kind)

	// The single-filter field keeps the map shape.
	require.Contains(t, q.Filters, "orders.region")
	assert.Equal(t, []any{"EMEA"}, q.Filters["orders.region"].Values)
}

func TestBuildCreatePayload_GroupedFieldBlocksDashboardFilter(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Query.Fields = []string{"orders.region", "orders.total_revenue"}
	d.Tiles[0].Query.Filters = []core.Filter{
		{Field: "orders.total_revenue", Operator: "gt", Value: 0},
		{Field: "orders.total_revenue", Operator: "lt", Value: 10},
	}
	d.Filters = []core.DashboardFilter{
		{Field: "orders.total_revenue", Type: core.FilterNumberRange, Default: []any{50, 90}},
	}

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)

	q := p.QueryPresentations[0].Query
	assert.NotContains(t, q.Filters, "orders.total_revenue",
		"the tile's own range wins over the dashboard default")
	require.Len(t, q.CompositeFilters, 1)
}

func TestEncodeCompositeFilter(t *testing.T) {
	cf := core.CompositeFilter{
		Logic: "or",
		Filters: []core.Filter{
			{Field: "orders.region", Operator: "is", Value: "EMEA"},
			{Field: "orders.region", Operator: "is", Value: "APAC"},
		},
	}

	w := encodeCompositeFilter(cf)

	assert.Equal(t, "OR", w.Logic)
	require.Len(t, w.Filters, 2)
	assert.Equal(t, "orders.region", w.Filters[0].Field)
	assert.Equal(t, "EQUALS", w.Filters[0].Kind)

	// Anything that is not OR normalizes to AND.
	assert.Equal(t, "AND", encodeCompositeFilter(core.CompositeFilter{Logic: "nand"}).Logic)
}

func TestEncodeCalculation(t *testing.T) {
	t.Run("prebuilt expression passes through", func(t *testing.T) {
		expr := map[string]any{"function": "SUM", "args": []any{map[string]any{"field": "orders.total"}}}
		w, ok := encodeCalculation(core.Calculation{Name: "total", Expression: expr})
		require.True(t, ok)
		assert.Equal(t, expr, w.Expression)
	})

	t.Run("division compiles to a safe divide", func(t *testing.T) {
		w, ok := encodeCalculation(core.Calculation{
			Name:    "aov",
			Formula: "orders.total_revenue / orders.order_count",
		})
		require.True(t, ok)
		assert.Equal(t, map[string]any{
			"function": "SAFE_DIVIDE",
			"args": []any{
				map[string]any{"field": "orders.total_revenue"},
				map[string]any{"field": "orders.order_count"},
			},
		}, w.Expression)
	})

	t.Run("anything else is dropped", func(t *testing.T) {
		_, ok := encodeCalculation(core.Calculation{Name: "sum", Formula: "a + b"})
		assert.False(t, ok)

		_, ok = encodeCalculation(core.Calculation{Name: "empty"})
		assert.False(t, ok)

		_, ok = encodeCalculation(core.Calculation{Name: "halfopen", Formula: "a /"})
		assert.False(t, ok)
	})
}

func TestBuildCreatePayload_RawSQL(t *testing.T) {
	d := baseDashboard()
	d.Tiles[0].Query.RawSQL = "select 1"
	d.Tiles[0].Query.UseRawSQL = true

	p, err := BuildCreatePayload(d)
	require.NoError(t, err)
	assert.Equal(t, "select 1", p.QueryPresentations[0].Query.SQL)

	// Raw SQL is ignored unless explicitly enabled.
	d.Tiles[0].Query.UseRawSQL = false
	p, err = BuildCreatePayload(d)
	require.NoError(t, err)
	assert.Empty(t, p.QueryPresentations[0].Query.SQL)
}
