package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"registry/internal/delivery/http/middleware"
	"registry/internal/delivery/http/validator"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFacilityUsecase returns canned values and records the last inputs.
type stubFacilityUsecase struct {
	publicViews []*usecase.FacilityView
	mapViews    []*usecase.MapFacilityView
	ownedViews  []*usecase.FacilityView
	mutation    *usecase.MutationOutput
	err         error

	lastPublicInput usecase.PublicListInput
	lastCreateInput usecase.CreateFacilityInput
	lastUpdateInput usecase.UpdateFacilityInput
	lastDeleteInput usecase.DeleteFacilityInput
}

func (s *stubFacilityUsecase) ListPublic(_ context.Context, input usecase.PublicListInput) ([]*usecase.FacilityView, error) {
	s.lastPublicInput = input

	return s.publicViews, s.err
}

func (s *stubFacilityUsecase) ListForMap(_ context.Context, _ usecase.MapListInput) ([]*usecase.MapFacilityView, error) {
	return s.mapViews, s.err
}

func (s *stubFacilityUsecase) ListOwned(_ context.Context, _ usecase.OwnedListInput) ([]*usecase.FacilityView, error) {
	return s.ownedViews, s.err
}

func (s *stubFacilityUsecase) Create(_ context.Context, input usecase.CreateFacilityInput) (*usecase.MutationOutput, error) {
	s.lastCreateInput = input

	return s.mutation, s.err
}

func (s *stubFacilityUsecase) Update(_ context.Context, input usecase.UpdateFacilityInput) (*usecase.MutationOutput, error) {
	s.lastUpdateInput = input

	return s.mutation, s.err
}

func (s *stubFacilityUsecase) Delete(_ context.Context, input usecase.DeleteFacilityInput) (*usecase.MutationOutput, error) {
	s.lastDeleteInput = input

	return s.mutation, s.err
}

// newTestEcho builds an Echo instance with the production validator and
// error handler so handler tests see the rendered envelope.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	errorMiddleware := middleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	return e
}

type envelopeBody struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Count     *int            `json:"count"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()

	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestFacilityHandler_ListPublic(t *testing.T) {
	e := newTestEcho()
	stub := &stubFacilityUsecase{publicViews: []*usecase.FacilityView{
		{ID: 1, Name: "Simhallen", Geometry: []usecase.GeometryView{}},
		{ID: 2, Name: "Ishallen", Geometry: []usecase.GeometryView{}},
	}}
	h := NewFacilityHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/public/facilities?kommun_id=7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListPublic(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Count)
	assert.Equal(t, 2, *body.Count)
	assert.NotEmpty(t, body.Timestamp)
	require.NotNil(t, stub.lastPublicInput.KommunID)
	assert.Equal(t, int64(7), *stub.lastPublicInput.KommunID)
	assert.Nil(t, stub.lastPublicInput.ID)
}

func TestFacilityHandler_ListPublic_BadFilter(t *testing.T) {
	e := newTestEcho()
	h := NewFacilityHandler(&stubFacilityUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/public/facilities?kommun_id=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListPublic(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid request input", body.Error)
}

func TestFacilityHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubFacilityUsecase{mutation: &usecase.MutationOutput{ID: 42}}
	h := NewFacilityHandler(stub)
	ownerID := uuid.New()

	payload := `{"name":"Simhallen","kommun_id":7,"latitude":63.8258,"longitude":20.263}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/facilities", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, ownerID)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.JSONEq(t, `{"id":42}`, string(body.Data))
	assert.Equal(t, ownerID, stub.lastCreateInput.OwnerID)
	assert.Equal(t, "Simhallen", stub.lastCreateInput.Name)
	require.NotNil(t, stub.lastCreateInput.Latitude)
	assert.InDelta(t, 63.8258, *stub.lastCreateInput.Latitude, 0.0001)
}

func TestFacilityHandler_Create_InvalidCoordinates(t *testing.T) {
	e := newTestEcho()
	h := NewFacilityHandler(&stubFacilityUsecase{})

	payload := `{"name":"Simhallen","latitude":123.0,"longitude":20.0}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/facilities", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, uuid.New())

	err := h.Create(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFacilityHandler_Create_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewFacilityHandler(&stubFacilityUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/facilities", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestFacilityHandler_Update_NotFoundRendered(t *testing.T) {
	e := newTestEcho()
	h := NewFacilityHandler(&stubFacilityUsecase{err: domainerrors.ErrFacilityNotFound})
	ownerID := uuid.New()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/facilities/5", strings.NewReader(`{"name":"Nya"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set(middleware.ContextKeyUserID, ownerID)

	err := h.Update(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Facility not found or access denied", body.Error)
}

func TestFacilityHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubFacilityUsecase{mutation: &usecase.MutationOutput{ID: 9}}
	h := NewFacilityHandler(stub)
	ownerID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/facilities/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")
	c.Set(middleware.ContextKeyUserID, ownerID)

	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), stub.lastDeleteInput.ID)
	assert.Equal(t, ownerID, stub.lastDeleteInput.OwnerID)
}

func TestFacilityHandler_Delete_BadPathID(t *testing.T) {
	e := newTestEcho()
	h := NewFacilityHandler(&stubFacilityUsecase{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/facilities/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.ContextKeyUserID, uuid.New())

	err := h.Delete(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
