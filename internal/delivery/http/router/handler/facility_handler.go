package handler

import (
	"net/http"
	"strconv"

	"registry/internal/delivery/http/middleware"
	"registry/internal/delivery/http/response"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FacilityHandler holds dependencies for facility-related handlers.
type FacilityHandler struct {
	uc usecase.FacilityUsecase
}

// NewFacilityHandler is the constructor for FacilityHandler, injected by Fx.
func NewFacilityHandler(uc usecase.FacilityUsecase) *FacilityHandler {
	return &FacilityHandler{uc: uc}
}

// facilityRequest is the write payload shared by create and update. All
// fields except name are optional; coordinates are validated for range when
// present.
type facilityRequest struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	PostalCode     *string  `json:"postal_code"`
	ExternalID     *string  `json:"external_id"`
	FacilityTypeID *int64   `json:"facility_type_id"`
	KommunID       *int64   `json:"kommun_id"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// ListPublic handles the public facility listing.
func (h *FacilityHandler) ListPublic(c echo.Context) error {
	id, err := parseOptionalInt64(c, "id")
	if err != nil {
		return err
	}
	kommunID, err := parseOptionalInt64(c, "kommun_id")
	if err != nil {
		return err
	}
	facilityTypeID, err := parseOptionalInt64(c, "facility_type_id")
	if err != nil {
		return err
	}

	views, err := h.uc.ListPublic(c.Request().Context(), usecase.PublicListInput{
		ID:             id,
		KommunID:       kommunID,
		FacilityTypeID: facilityTypeID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, views, len(views))
}

// ListForMap handles the coordinate-only listing used by map clients.
func (h *FacilityHandler) ListForMap(c echo.Context) error {
	kommunID, err := parseOptionalInt64(c, "kommun_id")
	if err != nil {
		return err
	}

	views, err := h.uc.ListForMap(c.Request().Context(), usecase.MapListInput{KommunID: kommunID})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, views, len(views))
}

// ListOwned handles the authenticated listing of the caller's facilities.
func (h *FacilityHandler) ListOwned(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	id, err := parseOptionalInt64(c, "id")
	if err != nil {
		return err
	}
	kommunID, err := parseOptionalInt64(c, "kommun_id")
	if err != nil {
		return err
	}

	views, err := h.uc.ListOwned(c.Request().Context(), usecase.OwnedListInput{
		OwnerID:  ownerID,
		ID:       id,
		KommunID: kommunID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, views, len(views))
}

// Create handles the facility creation request.
func (h *FacilityHandler) Create(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req facilityRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	output, err := h.uc.Create(c.Request().Context(), usecase.CreateFacilityInput{
		OwnerID:        ownerID,
		Name:           name,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		ExternalID:     req.ExternalID,
		FacilityTypeID: req.FacilityTypeID,
		KommunID:       req.KommunID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output)
}

// Update handles the facility update request.
func (h *FacilityHandler) Update(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	facilityID, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req facilityRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Update(c.Request().Context(), usecase.UpdateFacilityInput{
		ID:             facilityID,
		OwnerID:        ownerID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		ExternalID:     req.ExternalID,
		FacilityTypeID: req.FacilityTypeID,
		KommunID:       req.KommunID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Delete handles the facility deletion request.
func (h *FacilityHandler) Delete(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	facilityID, err := parsePathID(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Delete(c.Request().Context(), usecase.DeleteFacilityInput{
		ID:      facilityID,
		OwnerID: ownerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// callerID extracts the authenticated user ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, domainerrors.ErrTokenInvalid
	}

	return userID, nil
}

// parseOptionalInt64 reads an optional integer query parameter. A present
// but malformed value is a 400, not a silently ignored filter.
func parseOptionalInt64(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " parameter")
	}

	return &value, nil
}

// parsePathID reads the numeric :id path parameter.
func parsePathID(c echo.Context) (int64, error) {
	value, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid facility id")
	}

	return value, nil
}
