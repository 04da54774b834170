package impl

import (
	"context"
	"log/slog"

	deliverycontext "registry/internal/delivery/context"
	"registry/internal/domain/repository"
	"registry/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// lookupService implements the LookupUsecase interface.
type lookupService struct {
	lookupRepo repository.LookupRepository
	logger     *slog.Logger
}

// LookupServiceParams holds dependencies for lookupService, injected by Fx.
type LookupServiceParams struct {
	fx.In

	LookupRepo repository.LookupRepository
	Logger     *slog.Logger
}

// NewLookupService is the constructor for lookupService.
func NewLookupService(params LookupServiceParams) usecase.LookupUsecase {
	return &lookupService{
		lookupRepo: params.LookupRepo,
		logger:     params.Logger,
	}
}

func (srv *lookupService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMunicipalities returns all municipalities ordered by name.
func (srv *lookupService) ListMunicipalities(ctx context.Context) ([]*usecase.KommunView, error) {
	kommuner, err := srv.lookupRepo.ListKommuner(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list municipalities", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list municipalities")
	}

	views := make([]*usecase.KommunView, 0, len(kommuner))
	for _, kommun := range kommuner {
		views = append(views, &usecase.KommunView{
			ID:         kommun.ID,
			KommunKod:  kommun.KommunKod,
			KommunNamn: kommun.KommunNamn,
		})
	}

	return views, nil
}

// ListFacilityTypes returns all facility types ordered by label.
func (srv *lookupService) ListFacilityTypes(ctx context.Context) ([]*usecase.FacilityTypeView, error) {
	types, err := srv.lookupRepo.ListFacilityTypes(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list facility types", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list facility types")
	}

	views := make([]*usecase.FacilityTypeView, 0, len(types))
	for _, facilityType := range types {
		views = append(views, &usecase.FacilityTypeView{
			ID:          facilityType.ID,
			Code:        facilityType.Code,
			Label:       facilityType.Label,
			Description: facilityType.Description,
		})
	}

	return views, nil
}
