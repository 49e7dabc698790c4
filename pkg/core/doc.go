// Package core defines the shared language of the leapboard system.
//
// This package contains:
//   - The dashboard definition model (Dashboard, Tile, Query, VisConfig)
//   - The grid position type and its invariants
//   - The closed chart-type enum
//   - The structural/configuration error types
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
