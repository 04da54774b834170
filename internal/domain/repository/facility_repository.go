// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"registry/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFacilityNotFound is returned when a facility does not exist, or exists
// but is not owned by the calling user. The two cases are indistinguishable
// on purpose.
var ErrFacilityNotFound = errors.New("facility not found")

// PublicFilter narrows the public facility listing. All fields are optional
// and AND-combined.
type PublicFilter struct {
	ID             *int64
	KommunID       *int64
	FacilityTypeID *int64
}

// OwnedFilter narrows the authenticated owner listing.
type OwnedFilter struct {
	ID       *int64
	KommunID *int64
}

// FacilityRepository defines the standard operations for facility persistence.
// All list operations return rows ordered by name ascending with their
// FacilityType, Kommun and Geometry associations resolved (nil when absent).
type FacilityRepository interface {
	// ListPublic returns all facilities matching the filter.
	ListPublic(ctx context.Context, filter PublicFilter) ([]*entity.Facility, error)

	// ListForMap returns only facilities with both coordinates present,
	// optionally narrowed to one municipality. Geometry is never nil on the
	// returned rows.
	ListForMap(ctx context.Context, kommunID *int64) ([]*entity.Facility, error)

	// ListOwned returns the facilities created by ownerID.
	ListOwned(ctx context.Context, ownerID uuid.UUID, filter OwnedFilter) ([]*entity.Facility, error)

	// FindOwned retrieves a single facility by id, restricted to its owner.
	// Returns ErrFacilityNotFound when no row matches (id, created_by).
	FindOwned(ctx context.Context, id int64, ownerID uuid.UUID) (*entity.Facility, error)

	// Create persists a new facility row and backfills the generated id and
	// timestamps on the entity.
	Create(ctx context.Context, facility *entity.Facility) error

	// Update replaces the scalar columns of an existing facility row.
	Update(ctx context.Context, facility *entity.Facility) error

	// UpsertGeometry creates or overwrites the point geometry of a facility.
	UpsertGeometry(ctx context.Context, facilityID int64, latitude, longitude float64) error

	// DeleteOwned removes a facility owned by ownerID, cascading to its
	// geometry. Returns ErrFacilityNotFound when no row matches.
	DeleteOwned(ctx context.Context, id int64, ownerID uuid.UUID) error
}
