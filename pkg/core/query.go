package core

import "strings"

// DefaultLimit is the placeholder row limit applied when a query does not
// set one. The vendor serializer upgrades this exact value to the vendor's
// own default; any other limit is passed through unchanged.
const DefaultLimit = 200

// Sort orders a query by one column.
type Sort struct {
	Column     string `yaml:"column" json:"column"`
	Descending bool   `yaml:"desc,omitempty" json:"desc,omitempty"`
}

// Filter restricts a query by one field. Operator is an internal verb
// ("is", "gt", "contains", "date_range", ...) translated to the vendor
// vocabulary during serialization.
type Filter struct {
	Field    string `yaml:"field" json:"field"`
	Operator string `yaml:"op" json:"op"`
	Value    any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// CompositeFilter groups filters under a single AND/OR logic node.
type CompositeFilter struct {
	Logic   string   `yaml:"logic" json:"logic"` // "and" or "or"
	Filters []Filter `yaml:"filters" json:"filters"`
}

// Calculation is a derived field added to a query's result set.
// Either Formula (a simple source expression, currently only two-operand
// division is compilable) or Expression (a pre-built vendor expression
// tree) supplies the computation; Expression wins when both are set.
type Calculation struct {
	Name       string         `yaml:"name" json:"name"`
	Label      string         `yaml:"label,omitempty" json:"label,omitempty"`
	Formula    string         `yaml:"formula,omitempty" json:"formula,omitempty"`
	Expression map[string]any `yaml:"expression,omitempty" json:"expression,omitempty"`
	Format     string         `yaml:"format,omitempty" json:"format,omitempty"`
}

// Query is one data request backing a tile.
// Invariant: Fields is never empty (enforced by the validator and builder).
type Query struct {
	Table            string                    `yaml:"table" json:"table"`
	Fields           []string                  `yaml:"fields" json:"fields"`
	Sorts            []Sort                    `yaml:"sorts,omitempty" json:"sorts,omitempty"`
	Filters          []Filter                  `yaml:"filters,omitempty" json:"filters,omitempty"`
	CompositeFilters []CompositeFilter         `yaml:"composite_filters,omitempty" json:"composite_filters,omitempty"`
	Calculations     []Calculation             `yaml:"calculations,omitempty" json:"calculations,omitempty"`
	Limit            int                       `yaml:"limit,omitempty" json:"limit,omitempty"`
	Pivots           []string                  `yaml:"pivots,omitempty" json:"pivots,omitempty"`
	FieldMeta        map[string]map[string]any `yaml:"field_meta,omitempty" json:"field_meta,omitempty"`
	RawSQL           string                    `yaml:"raw_sql,omitempty" json:"raw_sql,omitempty"`
	UseRawSQL        bool                      `yaml:"use_raw_sql,omitempty" json:"use_raw_sql,omitempty"`
	RowTotals        bool                      `yaml:"row_totals,omitempty" json:"row_totals,omitempty"`
	ColumnTotals     bool                      `yaml:"column_totals,omitempty" json:"column_totals,omitempty"`
	FillFields       []string                  `yaml:"fill_fields,omitempty" json:"fill_fields,omitempty"`
}

// EffectiveLimit returns the limit, falling back to DefaultLimit when unset.
func (q *Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// HasField reports whether the qualified field is in the query's field list.
func (q *Query) HasField(field string) bool {
	for _, f := range q.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// SplitQualifiedField splits "table.column" into its parts. Columns may
// themselves contain dots in some warehouses, so only the first dot splits.
func SplitQualifiedField(field string) (table, column string) {
	if i := strings.Index(field, "."); i >= 0 {
		return field[:i], field[i+1:]
	}
	return "", field
}
