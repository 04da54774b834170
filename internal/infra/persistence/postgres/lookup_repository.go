package postgres

import (
	"context"

	"registry/internal/domain/entity"
	"registry/internal/domain/repository"
	"registry/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lookupRepository implements the domain.LookupRepository interface using GORM.
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository is the constructor for lookupRepository.
func NewLookupRepository(db *gorm.DB) repository.LookupRepository {
	return &lookupRepository{db: db}
}

// ListKommuner retrieves all municipalities ordered by name.
func (repo *lookupRepository) ListKommuner(ctx context.Context) ([]*entity.Kommun, error) {
	var rows []*model.KommunModel
	if err := repo.db.WithContext(ctx).Order("kommun_namn ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list municipalities")
	}

	kommuner := make([]*entity.Kommun, 0, len(rows))
	for _, row := range rows {
		kommuner = append(kommuner, toKommunDomain(row))
	}

	return kommuner, nil
}

// ListFacilityTypes retrieves all facility types ordered by label.
func (repo *lookupRepository) ListFacilityTypes(ctx context.Context) ([]*entity.FacilityType, error) {
	var rows []*model.FacilityTypeModel
	if err := repo.db.WithContext(ctx).Order("label ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list facility types")
	}

	types := make([]*entity.FacilityType, 0, len(rows))
	for _, row := range rows {
		types = append(types, toFacilityTypeDomain(row))
	}

	return types, nil
}
