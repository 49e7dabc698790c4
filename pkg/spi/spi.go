// Package spi defines the narrow interfaces through which the definition
// core consumes its external collaborators: the platform API client, the
// dbt metadata readers and the format catalog. The core itself performs no
// I/O; implementations live at the edges (internal/client, the dbt tooling)
// and are injected where needed.
package spi

import (
	"context"

	"github.com/leapstack-labs/leapboard/pkg/omni"
)

// FieldResolver maps dbt metadata to qualified field names.
type FieldResolver interface {
	// ResolveQualifiedField resolves a dbt model/column pair to the
	// platform's "table.column" form.
	ResolveQualifiedField(dbtModel, dbtColumn string) (string, error)
}

// FormatCatalog exposes the platform's known number/date format codes.
type FormatCatalog interface {
	// KnownFormatCodes returns the set of valid format codes.
	KnownFormatCodes() map[string]struct{}
}

// Submitter sends payloads to the platform and returns document ids. The
// implementation owns retries and rate limiting; callers see one blocking,
// context-aware call per submission.
type Submitter interface {
	// SubmitCreate creates a document from a creation payload.
	SubmitCreate(ctx context.Context, payload *omni.CreatePayload) (string, error)

	// SubmitImport imports a raw export payload against a base model.
	SubmitImport(ctx context.Context, export []byte, baseModelID string) (string, error)
}
