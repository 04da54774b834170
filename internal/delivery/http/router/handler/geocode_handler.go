package handler

import (
	"net/http"

	domainerrors "registry/internal/domain/errors"
	"registry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GeocodeHandler proxies address resolution requests.
type GeocodeHandler struct {
	uc usecase.GeocodeUsecase
}

// NewGeocodeHandler is the constructor for GeocodeHandler, injected by Fx.
func NewGeocodeHandler(uc usecase.GeocodeUsecase) *GeocodeHandler {
	return &GeocodeHandler{uc: uc}
}

type geocodeRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Kommun     string `json:"kommun"`
}

// Geocode handles the address resolution request. The output is rendered
// as-is: a miss stays HTTP 200 with success=false.
func (h *GeocodeHandler) Geocode(c echo.Context) error {
	var req geocodeRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	output, err := h.uc.Geocode(c.Request().Context(), usecase.GeocodeInput{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Kommun:     req.Kommun,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}
