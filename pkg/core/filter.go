package core

// FilterType is the kind of dashboard-level filter control.
type FilterType string

// Filter type constants.
const (
	FilterDateRange   FilterType = "date_range"
	FilterSelect      FilterType = "select"
	FilterMultiSelect FilterType = "multi_select"
	FilterText        FilterType = "text"
	FilterNumberRange FilterType = "number_range"
)

// Valid reports whether t is a known filter type.
func (t FilterType) Valid() bool {
	switch t {
	case FilterDateRange, FilterSelect, FilterMultiSelect, FilterText, FilterNumberRange:
		return true
	}
	return false
}

// DashboardFilter is a dashboard-level control whose value is pushed into
// each tile's query at serialization time. Cross-table fields are remapped
// by bare column name where the tile's table has a matching column.
type DashboardFilter struct {
	Field    string     `yaml:"field" json:"field"`
	Type     FilterType `yaml:"type" json:"type"`
	Label    string     `yaml:"label,omitempty" json:"label,omitempty"`
	Default  any        `yaml:"default,omitempty" json:"default,omitempty"`
	Required bool       `yaml:"required,omitempty" json:"required,omitempty"`
	Options  []string   `yaml:"options,omitempty" json:"options,omitempty"`
}

// Operator returns the internal filter operator a control of this type
// applies to tile queries.
func (f *DashboardFilter) Operator() string {
	switch f.Type {
	case FilterDateRange:
		return "date_range"
	case FilterMultiSelect:
		return "in"
	case FilterText:
		return "contains"
	case FilterNumberRange:
		return "between"
	default:
		return "is"
	}
}
