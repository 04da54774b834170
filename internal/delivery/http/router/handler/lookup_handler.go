package handler

import (
	"net/http"

	"registry/internal/delivery/http/response"
	"registry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LookupHandler serves the classification reference tables.
type LookupHandler struct {
	uc usecase.LookupUsecase
}

// NewLookupHandler is the constructor for LookupHandler, injected by Fx.
func NewLookupHandler(uc usecase.LookupUsecase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// ListMunicipalities handles the municipality listing.
func (h *LookupHandler) ListMunicipalities(c echo.Context) error {
	views, err := h.uc.ListMunicipalities(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, views, len(views))
}

// ListFacilityTypes handles the facility type listing.
func (h *LookupHandler) ListFacilityTypes(c echo.Context) error {
	views, err := h.uc.ListFacilityTypes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, views, len(views))
}
