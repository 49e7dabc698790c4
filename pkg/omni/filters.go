package omni

import (
	"fmt"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// valueStyle describes where a filter's operand goes on the wire.
type valueStyle int

const (
	styleValues    valueStyle = iota // Values list
	styleRightSide                   // RightSide string (comparisons)
	styleRange                       // LeftSide + RightSide (between)
	styleNone                        // no operand (null checks)
	styleInterval                    // Values list holding an interval spec
)

// opSpec is one row of the operator translation table.
type opSpec struct {
	kind     string
	negative bool
	style    valueStyle
	typ      string // wire value type hint; "" means infer from the value
}

// operatorTable translates internal filter operators to the platform's
// {kind, is_negative, operand shape} vocabulary.
var operatorTable = map[string]opSpec{
	"is":           {kind: "EQUALS", style: styleValues},
	"eq":           {kind: "EQUALS", style: styleValues},
	"is_not":       {kind: "EQUALS", negative: true, style: styleValues},
	"neq":          {kind: "EQUALS", negative: true, style: styleValues},
	"in":           {kind: "EQUALS", style: styleValues},
	"not_in":       {kind: "EQUALS", negative: true, style: styleValues},
	"gt":           {kind: "GREATER_THAN", style: styleRightSide, typ: "number"},
	"gte":          {kind: "GREATER_THAN_OR_EQUAL", style: styleRightSide, typ: "number"},
	"lt":           {kind: "LESS_THAN", style: styleRightSide, typ: "number"},
	"lte":          {kind: "LESS_THAN_OR_EQUAL", style: styleRightSide, typ: "number"},
	"between":      {kind: "BETWEEN", style: styleRange, typ: "number"},
	"contains":     {kind: "CONTAINS", style: styleValues, typ: "string"},
	"not_contains": {kind: "CONTAINS", negative: true, style: styleValues, typ: "string"},
	"starts_with":  {kind: "STARTS_WITH", style: styleValues, typ: "string"},
	"ends_with":    {kind: "ENDS_WITH", style: styleValues, typ: "string"},
	"is_null":      {kind: "IS_NULL", style: styleNone},
	"is_not_null":  {kind: "IS_NULL", negative: true, style: styleNone},
	"date_range":   {kind: "TIME_FOR_INTERVAL_DURATION", style: styleInterval, typ: "date"},
	"past":         {kind: "TIME_FOR_INTERVAL_DURATION", style: styleInterval, typ: "date"},
}

// vendorKindToOperator reverses operatorTable for import. Negated kinds are
// handled by the caller; range/interval styles map back to their canonical
// operator.
var vendorKindToOperator = map[string]string{
	"EQUALS":                     "is",
	"GREATER_THAN":               "gt",
	"GREATER_THAN_OR_EQUAL":      "gte",
	"LESS_THAN":                  "lt",
	"LESS_THAN_OR_EQUAL":         "lte",
	"BETWEEN":                    "between",
	"CONTAINS":                   "contains",
	"STARTS_WITH":                "starts_with",
	"ENDS_WITH":                  "ends_with",
	"IS_NULL":                    "is_null",
	"TIME_FOR_INTERVAL_DURATION": "date_range",
}

// encodeFilter translates one internal filter to the wire shape. An
// unrecognized operator is never dropped: it degrades to a string-equality
// filter so the dashboard is still created.
func encodeFilter(f core.Filter) WireFilter {
	spec, ok := operatorTable[f.Operator]
	if !ok {
		return WireFilter{
			Kind:   "EQUALS",
			Type:   "string",
			Values: []any{stringify(f.Value)},
		}
	}

	w := WireFilter{
		Kind:       spec.kind,
		Type:       spec.typ,
		IsNegative: spec.negative,
	}
	switch spec.style {
	case styleValues, styleInterval:
		w.Values = valueList(f.Value)
		if w.Type == "" {
			w.Type = inferType(f.Value)
		}
	case styleRightSide:
		w.RightSide = stringify(f.Value)
	case styleRange:
		lo, hi := rangeBounds(f.Value)
		w.LeftSide = lo
		w.RightSide = hi
	case styleNone:
		// no operand
	}
	return w
}

// decodeFilter translates a wire filter back to the internal triple.
func decodeFilter(field string, w WireFilter) core.Filter {
	op, ok := vendorKindToOperator[w.Kind]
	if !ok {
		op = "is"
	}
	if w.IsNegative {
		switch op {
		case "is":
			op = "is_not"
		case "contains":
			op = "not_contains"
		case "is_null":
			op = "is_not_null"
		}
	}

	f := core.Filter{Field: field, Operator: op}
	switch {
	case w.LeftSide != "" && w.RightSide != "":
		f.Value = []any{w.LeftSide, w.RightSide}
	case w.RightSide != "":
		f.Value = w.RightSide
	case len(w.Values) == 1:
		f.Value = w.Values[0]
	case len(w.Values) > 1:
		f.Value = w.Values
	}
	return f
}

// propagateDashboardFilters merges dashboard-level filters into a tile's
// filter map. Same-table fields merge directly; cross-table fields are
// remapped by bare column name when the tile queries a matching column, and
// skipped otherwise. The skip is silent here by design (dashboards commonly
// mix tables that only partially share filterable columns); the validator
// surfaces it as a warning. Fields already constrained by the tile itself,
// whether in out or in a composite group (taken), are never overridden.
func propagateDashboardFilters(tile *core.Tile, filters []core.DashboardFilter, allowed []string, taken map[string]bool, out map[string]WireFilter) {
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}

	for i := range filters {
		f := &filters[i]
		if f.Default == nil {
			continue // a control without a value constrains nothing
		}
		if allowed != nil && !allowedSet[f.Field] {
			continue
		}

		target := f.Field
		filterTable, column := core.SplitQualifiedField(f.Field)
		if filterTable != tile.Query.Table {
			remapped := tile.Query.Table + "." + column
			if !tile.Query.HasField(remapped) {
				continue
			}
			target = remapped
		}
		if _, dup := out[target]; dup || taken[target] {
			continue // the tile's own filter wins
		}
		out[target] = encodeFilter(core.Filter{
			Field:    target,
			Operator: f.Operator(),
			Value:    f.Default,
		})
	}
}

// stringify renders a filter operand for the wire's string slots.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// valueList normalizes an operand into the wire's Values slice.
func valueList(v any) []any {
	switch vv := v.(type) {
	case nil:
		return nil
	case []any:
		return vv
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

// rangeBounds extracts the two operands of a between filter.
func rangeBounds(v any) (string, string) {
	list := valueList(v)
	switch len(list) {
	case 0:
		return "", ""
	case 1:
		return stringify(list[0]), ""
	default:
		return stringify(list[0]), stringify(list[1])
	}
}

// inferType guesses the wire value type from the operand.
func inferType(v any) string {
	switch list := valueList(v); {
	case len(list) == 0:
		return "string"
	default:
		switch list[0].(type) {
		case int, int64, float64, float32:
			return "number"
		case bool:
			return "boolean"
		default:
			return "string"
		}
	}
}
