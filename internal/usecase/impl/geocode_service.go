package impl

import (
	"context"
	"log/slog"

	deliverycontext "registry/internal/delivery/context"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/domain/service"
	"registry/internal/usecase"

	"go.uber.org/fx"
)

// geocodeMissMessage is the user-facing text returned when no coordinates
// could be resolved for the supplied address.
const geocodeMissMessage = "Kunde inte hitta koordinater för angiven adress"

// geocodeService implements the GeocodeUsecase interface.
type geocodeService struct {
	geocoder service.Geocoder
	logger   *slog.Logger
}

// GeocodeServiceParams holds dependencies for geocodeService, injected by Fx.
type GeocodeServiceParams struct {
	fx.In

	Geocoder service.Geocoder
	Logger   *slog.Logger
}

// NewGeocodeService is the constructor for geocodeService.
func NewGeocodeService(params GeocodeServiceParams) usecase.GeocodeUsecase {
	return &geocodeService{
		geocoder: params.Geocoder,
		logger:   params.Logger,
	}
}

func (srv *geocodeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Geocode resolves an address to coordinates. A miss is not an error: the
// output carries Success=false with a user-facing message instead.
func (srv *geocodeService) Geocode(ctx context.Context, input usecase.GeocodeInput) (*usecase.GeocodeOutput, error) {
	result, err := srv.geocoder.Geocode(ctx, service.GeocodeQuery{
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		Kommun:     input.Kommun,
	})
	if err != nil {
		srv.log(ctx).Error("Geocoding request failed", slog.Any("error", err))

		return nil, domainerrors.NewUpstreamError(err)
	}

	if !result.Found {
		return &usecase.GeocodeOutput{
			Success: false,
			Error:   geocodeMissMessage,
		}, nil
	}

	srv.log(ctx).Debug("Geocoding hit",
		slog.Float64("latitude", result.Latitude),
		slog.Float64("longitude", result.Longitude),
	)

	return &usecase.GeocodeOutput{
		Success:     true,
		Latitude:    &result.Latitude,
		Longitude:   &result.Longitude,
		DisplayName: &result.DisplayName,
	}, nil
}
