// Package validate checks a dashboard definition for internal consistency
// and, optionally, against a supplied field catalog.
//
// The result is structured, never panicked: errors make the definition
// unserializable, warnings flag things the vendor serializer auto-corrects
// (sort columns appended to fields, KPI limits forced to 1) or that only
// degrade the rendered output (unknown format codes).
package validate

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// Severity indicates how serious a diagnostic is.
type Severity int

// Severity levels.
const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one validation finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Tile     string   `json:"tile,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Tile != "" {
		return fmt.Sprintf("%s [%s] tile %q: %s", d.Severity, d.Code, d.Tile, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

// Result holds all findings for one definition.
type Result struct {
	Valid    bool         `json:"valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

func (r *Result) addError(code, tile, format string, args ...any) {
	r.Errors = append(r.Errors, Diagnostic{Severity: SeverityError, Code: code, Tile: tile, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(code, tile, format string, args ...any) {
	r.Warnings = append(r.Warnings, Diagnostic{Severity: SeverityWarning, Code: code, Tile: tile, Message: fmt.Sprintf(format, args...)})
}

type options struct {
	catalog     map[string][]string
	formatCodes map[string]struct{}
}

// Option configures a validation run.
type Option func(*options)

// WithCatalog supplies the available fields per table. When set, queried
// fields missing from their table's catalog are errors: they cannot be
// repaired downstream and the vendor would reject the query.
func WithCatalog(catalog map[string][]string) Option {
	return func(o *options) { o.catalog = catalog }
}

// WithFormatCodes supplies the set of known number/date format codes.
// Unknown codes are warnings; the vendor falls back to a default format.
func WithFormatCodes(codes map[string]struct{}) Option {
	return func(o *options) { o.formatCodes = codes }
}

// Validate checks the definition and returns a structured result.
func Validate(d *core.Dashboard, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var r Result

	if d.Name == "" {
		r.addError("missing-name", "", "dashboard requires a name")
	}
	if d.ModelID == "" {
		r.addError("missing-model", "", "dashboard requires a model_id")
	}
	if d.TileCount() == 0 {
		r.addError("no-tiles", "", "dashboard requires at least one tile or text tile")
	}

	for i := range d.Tiles {
		validateTile(&r, &o, &d.Tiles[i])
	}

	validateDashboardFilters(&r, d)

	r.Valid = len(r.Errors) == 0
	return r
}

func validateTile(r *Result, o *options, t *core.Tile) {
	if !t.ChartType.Valid() {
		r.addError("unknown-chart-type", t.Name, "unknown chart type %q", t.ChartType)
	}
	if len(t.Query.Fields) == 0 {
		r.addError("empty-fields", t.Name, "query requires at least one field")
	}
	if t.Query.Table == "" {
		r.addError("missing-table", t.Name, "query requires a table")
	}
	if t.Position != nil {
		if err := t.Position.Validate(); err != nil {
			r.addError("bad-position", t.Name, "%v", err)
		}
	}

	if o.catalog != nil && t.Query.Table != "" {
		cols, known := o.catalog[t.Query.Table]
		if !known {
			r.addError("unknown-table", t.Name, "table %q not found in catalog", t.Query.Table)
		} else {
			colSet := map[string]bool{}
			for _, c := range cols {
				colSet[c] = true
			}
			for _, f := range t.Query.Fields {
				table, col := core.SplitQualifiedField(f)
				if table != t.Query.Table {
					continue // qualified against another table; checked by its own catalog entry if queried
				}
				if !colSet[col] {
					r.addError("unknown-field", t.Name, "field %q not found in table %q", f, t.Query.Table)
				}
			}
		}
	}

	// Axis bindings not present in the queried fields are warnings: the
	// rendered chart will just show an empty axis, and explicit series
	// configuration often supersedes them.
	if x := t.VisConfig.XAxis; x != "" && !t.Query.HasField(x) {
		r.addWarning("axis-not-queried", t.Name, "x_axis %q is not in the query's field list", x)
	}
	for _, y := range t.VisConfig.YAxis {
		if !t.Query.HasField(y) {
			r.addWarning("axis-not-queried", t.Name, "y_axis %q is not in the query's field list", y)
		}
	}

	// Sort columns are auto-added to fields during serialization.
	for _, s := range t.Query.Sorts {
		if !t.Query.HasField(s.Column) {
			r.addWarning("sort-not-queried", t.Name, "sort column %q is not in the query's field list", s.Column)
		}
	}

	// The serializer forces limit 1 on KPI tiles; flag the mismatch so the
	// author knows the extra rows are never fetched.
	if t.ChartType.IsKPI() && t.Query.Limit > 1 {
		r.addWarning("kpi-limit", t.Name, "KPI tile has limit %d; serialization forces limit 1", t.Query.Limit)
	}

	if o.formatCodes != nil {
		for _, code := range t.VisConfig.FormatCodes() {
			if _, ok := o.formatCodes[code]; !ok {
				r.addWarning("unknown-format", t.Name, "format code %q is not a known format", code)
			}
		}
	}

	// Calculations need either a compilable formula or a pre-built
	// expression; anything else is dropped during serialization.
	for _, c := range t.Query.Calculations {
		if len(c.Expression) > 0 {
			continue
		}
		if c.Formula == "" {
			r.addWarning("empty-calculation", t.Name, "calculation %q has neither formula nor expression", c.Name)
			continue
		}
		if parts := strings.Split(c.Formula, "/"); len(parts) != 2 {
			r.addWarning("uncompilable-formula", t.Name, "calculation %q: formula %q is not a two-operand division and no expression is given", c.Name, c.Formula)
		}
	}
}

// validateDashboardFilters warns about dashboard filters that will silently
// skip a tile during serialization because the tile's table has no column
// matching the filter field.
func validateDashboardFilters(r *Result, d *core.Dashboard) {
	for _, f := range d.Filters {
		if !f.Type.Valid() {
			r.addError("unknown-filter-type", "", "dashboard filter %q has unknown type %q", f.Field, f.Type)
			continue
		}
		filterTable, column := core.SplitQualifiedField(f.Field)
		for i := range d.Tiles {
			t := &d.Tiles[i]
			if t.Query.Table == "" || t.Query.Table == filterTable {
				continue
			}
			if !t.Query.HasField(t.Query.Table + "." + column) {
				r.addWarning("filter-skipped", t.Name, "dashboard filter %q has no matching column on table %q and will not apply", f.Field, t.Query.Table)
			}
		}
	}
}
