package omni

import (
	"strings"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// encodeQuery builds the wire query for one tile, applying the platform's
// normalization rules:
//
//   - KPI tiles are forced to no sorts and limit 1; the platform rejects
//     sorted, multi-row KPI queries outright.
//   - For every other tile, sort columns missing from the field list are
//     appended; the platform requires sorted columns to be selected.
//   - The internal placeholder limit (200) is upgraded to the platform's
//     default (1000). An explicit non-default limit passes through.
//   - The wire filter map holds one filter per field; several filters on
//     the same field (a range expressed as gt + lt, say) are routed into
//     an AND composite group instead so no constraint is lost.
func encodeQuery(d *core.Dashboard, tile *core.Tile) WireQuery {
	q := &tile.Query

	fields := make([]string, len(q.Fields))
	copy(fields, q.Fields)

	var sorts []WireSort
	if !tile.ChartType.IsKPI() {
		for _, s := range q.Sorts {
			sorts = append(sorts, WireSort{ColumnName: s.Column, Descending: s.Descending})
			if !containsString(fields, s.Column) {
				fields = append(fields, s.Column)
			}
		}
	}
	if sorts == nil {
		sorts = []WireSort{}
	}

	limit := q.EffectiveLimit()
	switch {
	case tile.ChartType.IsKPI():
		limit = 1
	case limit == core.DefaultLimit:
		limit = VendorDefaultLimit
	}

	perField := map[string]int{}
	for _, f := range q.Filters {
		perField[f.Field]++
	}

	filters := map[string]WireFilter{}
	var composites []WireCompositeFilter
	grouped := map[string]bool{}
	for _, f := range q.Filters {
		if perField[f.Field] == 1 {
			filters[f.Field] = encodeFilter(f)
			continue
		}
		if grouped[f.Field] {
			continue
		}
		grouped[f.Field] = true
		group := WireCompositeFilter{Logic: "AND"}
		for _, g := range q.Filters {
			if g.Field == f.Field {
				group.Filters = append(group.Filters, FieldFilter{Field: g.Field, WireFilter: encodeFilter(g)})
			}
		}
		composites = append(composites, group)
	}

	propagateDashboardFilters(tile, d.Filters, d.TileFilterMap[tile.Name], grouped, filters)
	if len(filters) == 0 {
		filters = nil
	}

	for _, cf := range q.CompositeFilters {
		composites = append(composites, encodeCompositeFilter(cf))
	}

	var calcs []WireCalculation
	for _, c := range q.Calculations {
		if wc, ok := encodeCalculation(c); ok {
			calcs = append(calcs, wc)
		}
	}

	w := WireQuery{
		Table:            q.Table,
		Fields:           fields,
		ModelID:          d.ModelID,
		Limit:            limit,
		Sorts:            sorts,
		Filters:          filters,
		CompositeFilters: composites,
		Pivots:           q.Pivots,
		Calculations:     calcs,
		RowTotals:        q.RowTotals,
		ColumnTotals:     q.ColumnTotals,
		FillFields:       q.FillFields,
	}
	if q.UseRawSQL && q.RawSQL != "" {
		w.SQL = q.RawSQL
	}
	if len(q.FieldMeta) > 0 {
		w.FieldMeta = map[string]any{}
		for field, meta := range q.FieldMeta {
			w.FieldMeta[field] = meta
		}
	}
	return w
}

// encodeCompositeFilter serializes an AND/OR group into the platform's
// nested form. The group logic is uppercased on the wire.
func encodeCompositeFilter(cf core.CompositeFilter) WireCompositeFilter {
	logic := strings.ToUpper(cf.Logic)
	if logic != "OR" {
		logic = "AND"
	}
	out := WireCompositeFilter{Logic: logic}
	for _, f := range cf.Filters {
		out.Filters = append(out.Filters, FieldFilter{Field: f.Field, WireFilter: encodeFilter(f)})
	}
	return out
}

// encodeCalculation serializes a derived field. A pre-built expression is
// passed through verbatim; otherwise only a two-operand division formula is
// compiled (into a safe divide, since the platform's plain divide errors on
// zero denominators). Any other formula shape is not guessed at; the
// calculation is dropped and the validator flags it upstream.
func encodeCalculation(c core.Calculation) (WireCalculation, bool) {
	w := WireCalculation{Name: c.Name, Label: c.Label, Format: c.Format}
	if len(c.Expression) > 0 {
		w.Expression = c.Expression
		return w, true
	}
	expr, ok := compileDivision(c.Formula)
	if !ok {
		return WireCalculation{}, false
	}
	w.Expression = expr
	return w, true
}

// compileDivision compiles "a / b" into a safe-divide expression tree.
func compileDivision(formula string) (map[string]any, bool) {
	parts := strings.Split(formula, "/")
	if len(parts) != 2 {
		return nil, false
	}
	num := strings.TrimSpace(parts[0])
	den := strings.TrimSpace(parts[1])
	if num == "" || den == "" {
		return nil, false
	}
	return map[string]any{
		"function": "SAFE_DIVIDE",
		"args": []any{
			map[string]any{"field": num},
			map[string]any{"field": den},
		},
	}, true
}

// decodeQuery reverses encodeQuery for imported documents. The platform's
// default limit maps back to the internal placeholder so a re-export does
// not bake the vendor default into the document.
func decodeQuery(w *WireQuery) core.Query {
	q := core.Query{
		Table:        w.Table,
		Fields:       append([]string(nil), w.Fields...),
		Pivots:       append([]string(nil), w.Pivots...),
		RowTotals:    w.RowTotals,
		ColumnTotals: w.ColumnTotals,
		FillFields:   append([]string(nil), w.FillFields...),
	}

	switch w.Limit {
	case 0, VendorDefaultLimit:
		q.Limit = core.DefaultLimit
	default:
		q.Limit = w.Limit
	}

	for _, s := range w.Sorts {
		q.Sorts = append(q.Sorts, core.Sort{Column: s.ColumnName, Descending: s.Descending})
	}
	for field, wf := range w.Filters {
		q.Filters = append(q.Filters, decodeFilter(field, wf))
	}
	sortFilters(q.Filters)

	for _, cf := range w.CompositeFilters {
		group := core.CompositeFilter{Logic: strings.ToLower(cf.Logic)}
		for _, ff := range cf.Filters {
			group.Filters = append(group.Filters, decodeFilter(ff.Field, ff.WireFilter))
		}
		q.CompositeFilters = append(q.CompositeFilters, group)
	}

	for _, c := range w.Calculations {
		q.Calculations = append(q.Calculations, core.Calculation{
			Name:       c.Name,
			Label:      c.Label,
			Expression: c.Expression,
			Format:     c.Format,
		})
	}

	if w.SQL != "" {
		q.RawSQL = w.SQL
		q.UseRawSQL = true
	}
	if len(w.FieldMeta) > 0 {
		q.FieldMeta = map[string]map[string]any{}
		for field, meta := range w.FieldMeta {
			if m, ok := meta.(map[string]any); ok {
				q.FieldMeta[field] = m
			}
		}
	}
	return q
}

// sortFilters orders decoded filters by field for stable output; wire
// filters arrive as a map with no order of its own.
func sortFilters(filters []core.Filter) {
	for i := 1; i < len(filters); i++ {
		for j := i; j > 0 && filters[j].Field < filters[j-1].Field; j-- {
			filters[j], filters[j-1] = filters[j-1], filters[j]
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
