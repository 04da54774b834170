// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"registry/internal/domain/entity"
)

// LookupRepository exposes the read-only lookup tables. Rows are seeded out
// of band and outlive every facility referencing them.
type LookupRepository interface {
	// ListKommuner returns all municipalities ordered by kommun_namn.
	ListKommuner(ctx context.Context) ([]*entity.Kommun, error)

	// ListFacilityTypes returns all facility types ordered by label.
	ListFacilityTypes(ctx context.Context) ([]*entity.FacilityType, error)
}
