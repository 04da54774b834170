package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// PublicListInput narrows the public facility listing. All filters are optional.
type PublicListInput struct {
	ID             *int64
	KommunID       *int64
	FacilityTypeID *int64
}

// MapListInput narrows the map listing to a single municipality.
type MapListInput struct {
	KommunID *int64
}

// OwnedListInput lists the facilities created by OwnerID.
type OwnedListInput struct {
	OwnerID  uuid.UUID
	ID       *int64
	KommunID *int64
}

// CreateFacilityInput defines the data required to create a facility.
// Latitude and Longitude are persisted only when both are present.
type CreateFacilityInput struct {
	OwnerID        uuid.UUID
	Name           string
	Address        *string
	City           *string
	PostalCode     *string
	ExternalID     *string
	FacilityTypeID *int64
	KommunID       *int64
	Latitude       *float64
	Longitude      *float64
}

// UpdateFacilityInput defines a full replacement of a facility's fields.
// A nil Name keeps the stored name; every other nil pointer clears its column.
type UpdateFacilityInput struct {
	ID             int64
	OwnerID        uuid.UUID
	Name           *string
	Address        *string
	City           *string
	PostalCode     *string
	ExternalID     *string
	FacilityTypeID *int64
	KommunID       *int64
	Latitude       *float64
	Longitude      *float64
}

// DeleteFacilityInput identifies the facility to remove, scoped to its owner.
type DeleteFacilityInput struct {
	ID      int64
	OwnerID uuid.UUID
}

// --- Output DTOs ---

// FacilityTypeView is the nested facility type representation.
type FacilityTypeView struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

// KommunView is the nested municipality representation.
type KommunView struct {
	ID         int64  `json:"id"`
	KommunKod  string `json:"kommun_kod"`
	KommunNamn string `json:"kommun_namn"`
}

// GeometryView is a single point geometry entry.
type GeometryView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	GeomType  string  `json:"geom_type"`
}

// FacilityView is the full facility representation returned by listings.
// Geometry holds zero or one entries. CreatedBy is populated only on
// owner-scoped listings.
type FacilityView struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Address      *string           `json:"address"`
	City         *string           `json:"city"`
	PostalCode   *string           `json:"postal_code"`
	ExternalID   *string           `json:"external_id"`
	CreatedBy    string            `json:"created_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	FacilityType *FacilityTypeView `json:"facility_type"`
	Kommun       *KommunView       `json:"kommun"`
	Geometry     []GeometryView    `json:"facility_geometry"`
}

// MapFacilityTypeView is the trimmed facility type used on the map listing.
type MapFacilityTypeView struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// MapKommunView is the trimmed municipality used on the map listing.
type MapKommunView struct {
	KommunNamn string `json:"kommun_namn"`
}

// MapGeometryView is the coordinate pair used on the map listing.
type MapGeometryView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapFacilityView is the lean facility representation for map display.
// Only facilities with stored coordinates appear, so Geometry always holds
// exactly one entry.
type MapFacilityView struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Address      *string             `json:"address"`
	City         *string             `json:"city"`
	FacilityType MapFacilityTypeView `json:"facility_type"`
	Kommun       MapKommunView       `json:"kommun"`
	Geometry     []MapGeometryView   `json:"facility_geometry"`
}

// MutationOutput returns the identifier affected by a write operation.
type MutationOutput struct {
	ID int64 `json:"id"`
}

// FacilityUsecase defines the interface for facility-related business operations.
type FacilityUsecase interface {
	ListPublic(ctx context.Context, input PublicListInput) ([]*FacilityView, error)
	ListForMap(ctx context.Context, input MapListInput) ([]*MapFacilityView, error)
	ListOwned(ctx context.Context, input OwnedListInput) ([]*FacilityView, error)
	Create(ctx context.Context, input CreateFacilityInput) (*MutationOutput, error)
	Update(ctx context.Context, input UpdateFacilityInput) (*MutationOutput, error)
	Delete(ctx context.Context, input DeleteFacilityInput) (*MutationOutput, error)
}
