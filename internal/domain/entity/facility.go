// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Facility is the core entity of the registry, representing a physical
// installation such as a swimming hall.
type Facility struct {
	ID             int64             // Server-assigned identifier.
	ExternalID     *string           // Optional caller-supplied opaque identifier.
	Name           string            // Display name; required, never empty.
	Address        *string           // Street address, optional.
	PostalCode     *string           // Postal code, optional.
	City           *string           // City name, optional.
	FacilityTypeID *int64            // Reference to a FacilityType, optional.
	KommunID       *int64            // Reference to a Kommun, optional.
	CreatedBy      uuid.UUID         // Owning user; fixed at creation.
	CreatedAt      time.Time         // Timestamp of when the facility was registered.
	UpdatedAt      time.Time         // Timestamp of the last modification.
	FacilityType   *FacilityType     // Resolved lookup row; nil when no reference is set.
	Kommun         *Kommun           // Resolved lookup row; nil when no reference is set.
	Geometry       *FacilityGeometry // At most one point geometry; nil when coordinates are unknown.
}

// FacilityType is a read-only lookup entity describing a category of facility.
// Rows are seeded out of band and never mutated through the API.
type FacilityType struct {
	ID          int64
	Code        string // Short symbolic code, e.g. "badhus".
	Label       string // Human-readable display name.
	Description *string
}

// Kommun is a read-only lookup entity for a Swedish municipality.
type Kommun struct {
	ID         int64
	KommunKod  string // Official municipality code.
	KommunNamn string // Display name.
}

// FacilityGeometry is the point location of a facility. A row exists only
// when both coordinates are known.
type FacilityGeometry struct {
	FacilityID int64
	Latitude   float64
	Longitude  float64
	GeomType   string // Always "POINT" in the current scope.
	UpdatedAt  time.Time
}

// GeomTypePoint is the only geometry kind the registry stores.
const GeomTypePoint = "POINT"
