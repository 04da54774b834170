package model

import (
	"time"

	"github.com/google/uuid"
)

// FacilityModel is the GORM-specific struct for the 'facility' table.
type FacilityModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID     *string   `gorm:"type:varchar(255)"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Address        *string   `gorm:"type:varchar(255)"`
	PostalCode     *string   `gorm:"type:varchar(20)"`
	City           *string   `gorm:"type:varchar(100)"`
	FacilityTypeID *int64    `gorm:"index"`
	KommunID       *int64    `gorm:"index"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	FacilityType *FacilityTypeModel     `gorm:"foreignKey:FacilityTypeID"`
	Kommun       *KommunModel           `gorm:"foreignKey:KommunID"`
	Geometry     *FacilityGeometryModel `gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (FacilityModel) TableName() string {
	return "facility"
}

// FacilityTypeModel mirrors the 'facility_type' lookup table. Seeded out of
// band; the API never writes it.
type FacilityTypeModel struct {
	ID          int64   `gorm:"primaryKey"`
	Code        string  `gorm:"type:varchar(50);unique;not null"`
	Label       string  `gorm:"type:varchar(100);not null"`
	Description *string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (FacilityTypeModel) TableName() string {
	return "facility_type"
}

// KommunModel mirrors the 'kommun' lookup table.
type KommunModel struct {
	ID         int64  `gorm:"primaryKey"`
	KommunKod  string `gorm:"type:varchar(10);unique;not null"`
	KommunNamn string `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (KommunModel) TableName() string {
	return "kommun"
}

// FacilityGeometryModel mirrors the 'facility_geometry' table. At most one
// row per facility; both coordinates are always present.
type FacilityGeometryModel struct {
	FacilityID int64   `gorm:"primaryKey"`
	Latitude   float64 `gorm:"type:decimal(10,8);not null"`
	Longitude  float64 `gorm:"type:decimal(11,8);not null"`
	GeomType   string  `gorm:"type:varchar(20);not null;default:POINT"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (FacilityGeometryModel) TableName() string {
	return "facility_geometry"
}
