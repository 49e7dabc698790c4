package core

import "fmt"

// StructuralError indicates a definition that is malformed beyond repair:
// a missing name, an empty field list, an out-of-bounds grid rectangle.
// These are raised at construction or validation and never silently fixed.
type StructuralError struct {
	Field   string
	Message string
}

func (e *StructuralError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConfigError indicates a definition that cannot be serialized yet because
// required caller-supplied configuration (a model id) is missing. The caller
// must fix it and retry; no default is guessed.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
