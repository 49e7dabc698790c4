// Package document reads and writes the human-editable, version-
// controllable YAML form of a dashboard definition.
//
// Writing is minimal: values that equal their defaults (the placeholder
// query limit, unset vis-config knobs) are omitted, and reading
// reconstructs the same defaults, so encode∘decode is the identity for
// every supported field. Unknown top-level keys are rejected rather than
// silently dropped; use the meta block for extensions.
package document

import (
	"github.com/leapstack-labs/leapboard/pkg/core"
)

// Version is the current document schema version.
const Version = 1

// Document is the YAML envelope around a dashboard definition.
type Document struct {
	Version        int             `yaml:"version"`
	Dashboard      *core.Dashboard `yaml:"dashboard"`
	SourceTemplate string          `yaml:"source_template,omitempty"`
	DBTModel       string          `yaml:"dbt_model,omitempty"`
	Meta           map[string]any  `yaml:"meta,omitempty"`
}

// knownTopLevelFields guards against typos at the document root.
var knownTopLevelFields = map[string]bool{
	"version":         true,
	"dashboard":       true,
	"source_template": true,
	"dbt_model":       true,
	"meta":            true,
}
