package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "registry/internal/delivery/context"
	"registry/internal/domain/entity"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/domain/repository"
	"registry/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// facilityService implements the FacilityUsecase interface.
type facilityService struct {
	txManager    repository.TransactionManager
	facilityRepo repository.FacilityRepository
	logger       *slog.Logger
}

// FacilityServiceParams holds dependencies for facilityService, injected by Fx.
type FacilityServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	FacilityRepo repository.FacilityRepository
	Logger       *slog.Logger
}

// NewFacilityService is the constructor for facilityService.
func NewFacilityService(params FacilityServiceParams) usecase.FacilityUsecase {
	return &facilityService{
		txManager:    params.TxManager,
		facilityRepo: params.FacilityRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *facilityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPublic returns every facility matching the filter, in name order.
func (srv *facilityService) ListPublic(ctx context.Context, input usecase.PublicListInput) ([]*usecase.FacilityView, error) {
	facilities, err := srv.facilityRepo.ListPublic(ctx, repository.PublicFilter{
		ID:             input.ID,
		KommunID:       input.KommunID,
		FacilityTypeID: input.FacilityTypeID,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list facilities", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list facilities")
	}

	return toFacilityViews(facilities, false), nil
}

// ListForMap returns the coordinate-bearing facilities for map display.
func (srv *facilityService) ListForMap(ctx context.Context, input usecase.MapListInput) ([]*usecase.MapFacilityView, error) {
	facilities, err := srv.facilityRepo.ListForMap(ctx, input.KommunID)
	if err != nil {
		srv.log(ctx).Error("Failed to list map facilities", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list map facilities")
	}

	views := make([]*usecase.MapFacilityView, 0, len(facilities))
	for _, facility := range facilities {
		views = append(views, toMapFacilityView(facility))
	}

	return views, nil
}

// ListOwned returns the caller's own facilities, in name order.
func (srv *facilityService) ListOwned(ctx context.Context, input usecase.OwnedListInput) ([]*usecase.FacilityView, error) {
	facilities, err := srv.facilityRepo.ListOwned(ctx, input.OwnerID, repository.OwnedFilter{
		ID:       input.ID,
		KommunID: input.KommunID,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list owned facilities", slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list owned facilities")
	}

	return toFacilityViews(facilities, true), nil
}

// Create persists a new facility, together with its point geometry when both
// coordinates are supplied, in a single transaction.
func (srv *facilityService) Create(ctx context.Context, input usecase.CreateFacilityInput) (*usecase.MutationOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrNameRequired
	}

	facility := &entity.Facility{
		Name:           input.Name,
		Address:        input.Address,
		City:           input.City,
		PostalCode:     input.PostalCode,
		ExternalID:     input.ExternalID,
		FacilityTypeID: input.FacilityTypeID,
		KommunID:       input.KommunID,
		CreatedBy:      input.OwnerID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		facilityRepo := repoFactory.FacilityRepo()

		if err := facilityRepo.Create(ctx, facility); err != nil {
			return err
		}

		if input.Latitude != nil && input.Longitude != nil {
			return facilityRepo.UpsertGeometry(ctx, facility.ID, *input.Latitude, *input.Longitude)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create facility", slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Facility created", slog.Int64("facilityID", facility.ID), slog.Any("ownerID", input.OwnerID))

	return &usecase.MutationOutput{ID: facility.ID}, nil
}

// Update replaces a facility's fields after verifying ownership. A nil Name
// keeps the stored name; every other nil pointer clears its column. The
// geometry is touched only when both coordinates are supplied.
func (srv *facilityService) Update(ctx context.Context, input usecase.UpdateFacilityInput) (*usecase.MutationOutput, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		facilityRepo := repoFactory.FacilityRepo()

		existing, err := facilityRepo.FindOwned(ctx, input.ID, input.OwnerID)
		if err != nil {
			if errors.Is(err, repository.ErrFacilityNotFound) {
				return domainerrors.ErrFacilityNotFound
			}

			return errors.Wrap(err, "failed to verify facility ownership")
		}

		name := existing.Name
		if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
			name = *input.Name
		}

		facility := &entity.Facility{
			ID:             input.ID,
			Name:           name,
			Address:        input.Address,
			City:           input.City,
			PostalCode:     input.PostalCode,
			ExternalID:     input.ExternalID,
			FacilityTypeID: input.FacilityTypeID,
			KommunID:       input.KommunID,
		}
		if err := facilityRepo.Update(ctx, facility); err != nil {
			return err
		}

		if input.Latitude != nil && input.Longitude != nil {
			return facilityRepo.UpsertGeometry(ctx, input.ID, *input.Latitude, *input.Longitude)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update facility", slog.Int64("facilityID", input.ID), slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Facility updated", slog.Int64("facilityID", input.ID), slog.Any("ownerID", input.OwnerID))

	return &usecase.MutationOutput{ID: input.ID}, nil
}

// Delete removes a facility owned by the caller.
func (srv *facilityService) Delete(ctx context.Context, input usecase.DeleteFacilityInput) (*usecase.MutationOutput, error) {
	if err := srv.facilityRepo.DeleteOwned(ctx, input.ID, input.OwnerID); err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return nil, domainerrors.ErrFacilityNotFound
		}

		srv.log(ctx).Error("Failed to delete facility", slog.Int64("facilityID", input.ID), slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to delete facility")
	}

	srv.log(ctx).Info("Facility deleted", slog.Int64("facilityID", input.ID), slog.Any("ownerID", input.OwnerID))

	return &usecase.MutationOutput{ID: input.ID}, nil
}

// --- View builders ---

func toFacilityViews(facilities []*entity.Facility, includeOwner bool) []*usecase.FacilityView {
	views := make([]*usecase.FacilityView, 0, len(facilities))
	for _, facility := range facilities {
		views = append(views, toFacilityView(facility, includeOwner))
	}

	return views
}

func toFacilityView(facility *entity.Facility, includeOwner bool) *usecase.FacilityView {
	view := &usecase.FacilityView{
		ID:         facility.ID,
		Name:       facility.Name,
		Address:    facility.Address,
		City:       facility.City,
		PostalCode: facility.PostalCode,
		ExternalID: facility.ExternalID,
		CreatedAt:  facility.CreatedAt,
		UpdatedAt:  facility.UpdatedAt,
		Geometry:   []usecase.GeometryView{},
	}

	if includeOwner {
		view.CreatedBy = facility.CreatedBy.String()
	}

	if facility.FacilityType != nil {
		view.FacilityType = &usecase.FacilityTypeView{
			ID:          facility.FacilityType.ID,
			Code:        facility.FacilityType.Code,
			Label:       facility.FacilityType.Label,
			Description: facility.FacilityType.Description,
		}
	}

	if facility.Kommun != nil {
		view.Kommun = &usecase.KommunView{
			ID:         facility.Kommun.ID,
			KommunKod:  facility.Kommun.KommunKod,
			KommunNamn: facility.Kommun.KommunNamn,
		}
	}

	if facility.Geometry != nil {
		view.Geometry = append(view.Geometry, usecase.GeometryView{
			Latitude:  facility.Geometry.Latitude,
			Longitude: facility.Geometry.Longitude,
			GeomType:  facility.Geometry.GeomType,
		})
	}

	return view
}

func toMapFacilityView(facility *entity.Facility) *usecase.MapFacilityView {
	view := &usecase.MapFacilityView{
		ID:       facility.ID,
		Name:     facility.Name,
		Address:  facility.Address,
		City:     facility.City,
		Geometry: []usecase.MapGeometryView{},
	}

	if facility.FacilityType != nil {
		view.FacilityType = usecase.MapFacilityTypeView{
			Code:  facility.FacilityType.Code,
			Label: facility.FacilityType.Label,
		}
	}

	if facility.Kommun != nil {
		view.Kommun = usecase.MapKommunView{KommunNamn: facility.Kommun.KommunNamn}
	}

	if facility.Geometry != nil {
		view.Geometry = append(view.Geometry, usecase.MapGeometryView{
			Latitude:  facility.Geometry.Latitude,
			Longitude: facility.Geometry.Longitude,
		})
	}

	return view
}
