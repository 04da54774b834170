// Package postgres contains the concrete implementation of the persistence
// layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"registry/internal/domain/entity"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/domain/repository"
	"registry/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// facilityRepository implements the domain.FacilityRepository interface using GORM.
type facilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository is the constructor for facilityRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewFacilityRepository(db *gorm.DB) repository.FacilityRepository {
	return &facilityRepository{db: db}
}

// ListPublic retrieves all facilities matching the filter, ordered by name,
// with lookup and geometry associations resolved.
func (repo *facilityRepository) ListPublic(ctx context.Context, filter repository.PublicFilter) ([]*entity.Facility, error) {
	query := repo.db.WithContext(ctx).
		Preload("FacilityType").
		Preload("Kommun").
		Preload("Geometry")

	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.KommunID != nil {
		query = query.Where("kommun_id = ?", *filter.KommunID)
	}
	if filter.FacilityTypeID != nil {
		query = query.Where("facility_type_id = ?", *filter.FacilityTypeID)
	}

	var rows []*model.FacilityModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list facilities")
	}

	return toFacilityDomainSlice(rows), nil
}

// ListForMap retrieves only facilities with a geometry row, joined so that
// rows lacking coordinates never appear.
func (repo *facilityRepository) ListForMap(ctx context.Context, kommunID *int64) ([]*entity.Facility, error) {
	query := repo.db.WithContext(ctx).
		Preload("FacilityType").
		Preload("Kommun").
		Preload("Geometry").
		Joins("JOIN facility_geometry ON facility_geometry.facility_id = facility.id").
		Where("facility_geometry.latitude IS NOT NULL AND facility_geometry.longitude IS NOT NULL")

	if kommunID != nil {
		query = query.Where("facility.kommun_id = ?", *kommunID)
	}

	var rows []*model.FacilityModel
	if err := query.Order("facility.name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list map facilities")
	}

	return toFacilityDomainSlice(rows), nil
}

// ListOwned retrieves the facilities created by ownerID, ordered by name.
func (repo *facilityRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, filter repository.OwnedFilter) ([]*entity.Facility, error) {
	query := repo.db.WithContext(ctx).
		Preload("FacilityType").
		Preload("Kommun").
		Preload("Geometry").
		Where("created_by = ?", ownerID)

	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.KommunID != nil {
		query = query.Where("kommun_id = ?", *filter.KommunID)
	}

	var rows []*model.FacilityModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list owned facilities")
	}

	return toFacilityDomainSlice(rows), nil
}

// FindOwned retrieves a single facility restricted to its owner. The
// ownership check happens in the query itself, before any mutation.
func (repo *facilityRepository) FindOwned(ctx context.Context, id int64, ownerID uuid.UUID) (*entity.Facility, error) {
	var row model.FacilityModel
	err := repo.db.WithContext(ctx).
		Preload("Geometry").
		Where("id = ? AND created_by = ?", id, ownerID).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFacilityNotFound
		}

		return nil, errors.Wrap(err, "failed to find owned facility")
	}

	return toFacilityDomain(&row), nil
}

// Create persists a new facility row and backfills generated values.
func (repo *facilityRepository) Create(ctx context.Context, facility *entity.Facility) error {
	facilityM := fromFacilityDomain(facility)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(facilityM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid facility type or municipality reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required facility information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create facility")
	}

	facility.ID = facilityM.ID
	facility.CreatedAt = facilityM.CreatedAt
	facility.UpdatedAt = facilityM.UpdatedAt

	return nil
}

// Update replaces the scalar columns of an existing facility row. Nil
// pointers write NULL, which is how omitted optional fields are cleared.
func (repo *facilityRepository) Update(ctx context.Context, facility *entity.Facility) error {
	updates := map[string]any{
		"name":             facility.Name,
		"address":          facility.Address,
		"city":             facility.City,
		"postal_code":      facility.PostalCode,
		"external_id":      facility.ExternalID,
		"facility_type_id": facility.FacilityTypeID,
		"kommun_id":        facility.KommunID,
		"updated_at":       time.Now(),
	}

	err := repo.db.WithContext(ctx).
		Model(&model.FacilityModel{}).
		Where("id = ?", facility.ID).
		Updates(updates).Error

	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid facility type or municipality reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update facility")
	}

	return nil
}

// UpsertGeometry creates or overwrites the point geometry of a facility.
func (repo *facilityRepository) UpsertGeometry(ctx context.Context, facilityID int64, latitude, longitude float64) error {
	geometry := &model.FacilityGeometryModel{
		FacilityID: facilityID,
		Latitude:   latitude,
		Longitude:  longitude,
		GeomType:   entity.GeomTypePoint,
		UpdatedAt:  time.Now(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "facility_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
		}).
		Create(geometry).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert facility geometry")
	}

	return nil
}

// DeleteOwned removes a facility owned by ownerID. The geometry row goes with
// it via the ON DELETE CASCADE constraint.
func (repo *facilityRepository) DeleteOwned(ctx context.Context, id int64, ownerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, ownerID).
		Delete(&model.FacilityModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete facility")
	}

	if result.RowsAffected == 0 {
		return repository.ErrFacilityNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toFacilityDomainSlice(rows []*model.FacilityModel) []*entity.Facility {
	facilities := make([]*entity.Facility, 0, len(rows))
	for _, row := range rows {
		facilities = append(facilities, toFacilityDomain(row))
	}

	return facilities
}

// toFacilityDomain converts a GORM FacilityModel to a domain Facility entity.
func toFacilityDomain(data *model.FacilityModel) *entity.Facility {
	if data == nil {
		return nil
	}

	return &entity.Facility{
		ID:             data.ID,
		ExternalID:     data.ExternalID,
		Name:           data.Name,
		Address:        data.Address,
		PostalCode:     data.PostalCode,
		City:           data.City,
		FacilityTypeID: data.FacilityTypeID,
		KommunID:       data.KommunID,
		CreatedBy:      data.CreatedBy,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		FacilityType:   toFacilityTypeDomain(data.FacilityType),
		Kommun:         toKommunDomain(data.Kommun),
		Geometry:       toGeometryDomain(data.Geometry),
	}
}

// fromFacilityDomain converts a domain Facility entity to a GORM model for
// persistence. Associations are never written through this path.
func fromFacilityDomain(data *entity.Facility) *model.FacilityModel {
	if data == nil {
		return nil
	}

	return &model.FacilityModel{
		ID:             data.ID,
		ExternalID:     data.ExternalID,
		Name:           data.Name,
		Address:        data.Address,
		PostalCode:     data.PostalCode,
		City:           data.City,
		FacilityTypeID: data.FacilityTypeID,
		KommunID:       data.KommunID,
		CreatedBy:      data.CreatedBy,
	}
}

func toFacilityTypeDomain(data *model.FacilityTypeModel) *entity.FacilityType {
	if data == nil {
		return nil
	}

	return &entity.FacilityType{
		ID:          data.ID,
		Code:        data.Code,
		Label:       data.Label,
		Description: data.Description,
	}
}

func toKommunDomain(data *model.KommunModel) *entity.Kommun {
	if data == nil {
		return nil
	}

	return &entity.Kommun{
		ID:         data.ID,
		KommunKod:  data.KommunKod,
		KommunNamn: data.KommunNamn,
	}
}

func toGeometryDomain(data *model.FacilityGeometryModel) *entity.FacilityGeometry {
	if data == nil {
		return nil
	}

	return &entity.FacilityGeometry{
		FacilityID: data.FacilityID,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		GeomType:   data.GeomType,
		UpdatedAt:  data.UpdatedAt,
	}
}
