package impl

import (
	"context"
	"testing"
	"time"

	"registry/internal/domain/entity"
	domainerrors "registry/internal/domain/errors"
	"registry/internal/domain/repository"
	"registry/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type facilityServiceFixtures struct {
	service      usecase.FacilityUsecase
	facilityRepo *mockFacilityRepository
	txRepo       *mockFacilityRepository
}

// createTestFacilityService wires the service with one repository for direct
// reads and another bound to the fake transaction manager for writes.
func createTestFacilityService(t *testing.T) facilityServiceFixtures {
	t.Helper()

	facilityRepo := new(mockFacilityRepository)
	txRepo := new(mockFacilityRepository)

	service := NewFacilityService(FacilityServiceParams{
		TxManager:    &fakeTxManager{factory: &fakeRepoFactory{facilityRepo: txRepo}},
		FacilityRepo: facilityRepo,
		Logger:       newDiscardLogger(),
	})

	return facilityServiceFixtures{
		service:      service,
		facilityRepo: facilityRepo,
		txRepo:       txRepo,
	}
}

func sampleFacility(id int64, owner uuid.UUID) *entity.Facility {
	return &entity.Facility{
		ID:        id,
		Name:      "Simhallen",
		Address:   ptr("Storgatan 1"),
		City:      ptr("Umeå"),
		CreatedBy: owner,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
		FacilityType: &entity.FacilityType{
			ID:    3,
			Code:  "swimming_pool",
			Label: "Simhall",
		},
		Kommun: &entity.Kommun{
			ID:         7,
			KommunKod:  "2480",
			KommunNamn: "Umeå",
		},
		Geometry: &entity.FacilityGeometry{
			FacilityID: id,
			Latitude:   63.8258,
			Longitude:  20.263,
			GeomType:   entity.GeomTypePoint,
		},
	}
}

func TestFacilityService_ListPublic_Success(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.facilityRepo.On("ListPublic", ctx, repository.PublicFilter{KommunID: ptr(int64(7))}).
		Return([]*entity.Facility{sampleFacility(1, owner)}, nil)

	views, err := fixtures.service.ListPublic(ctx, usecase.PublicListInput{KommunID: ptr(int64(7))})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, "Simhallen", views[0].Name)
	// Ownership is not exposed on the public listing.
	assert.Empty(t, views[0].CreatedBy)
	require.NotNil(t, views[0].FacilityType)
	assert.Equal(t, "swimming_pool", views[0].FacilityType.Code)
	require.Len(t, views[0].Geometry, 1)
	assert.Equal(t, entity.GeomTypePoint, views[0].Geometry[0].GeomType)
}

func TestFacilityService_ListPublic_EmptyAssociations(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()

	bare := &entity.Facility{ID: 2, Name: "Okänd anläggning"}
	fixtures.facilityRepo.On("ListPublic", ctx, repository.PublicFilter{}).
		Return([]*entity.Facility{bare}, nil)

	views, err := fixtures.service.ListPublic(ctx, usecase.PublicListInput{})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].FacilityType)
	assert.Nil(t, views[0].Kommun)
	require.NotNil(t, views[0].Geometry)
	assert.Empty(t, views[0].Geometry)
}

func TestFacilityService_ListForMap_Success(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()

	fixtures.facilityRepo.On("ListForMap", ctx, (*int64)(nil)).
		Return([]*entity.Facility{sampleFacility(1, uuid.New())}, nil)

	views, err := fixtures.service.ListForMap(ctx, usecase.MapListInput{})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Simhall", views[0].FacilityType.Label)
	assert.Equal(t, "Umeå", views[0].Kommun.KommunNamn)
	require.Len(t, views[0].Geometry, 1)
	assert.InDelta(t, 63.8258, views[0].Geometry[0].Latitude, 0.0001)
}

func TestFacilityService_ListOwned_IncludesOwner(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.facilityRepo.On("ListOwned", ctx, owner, repository.OwnedFilter{}).
		Return([]*entity.Facility{sampleFacility(1, owner)}, nil)

	views, err := fixtures.service.ListOwned(ctx, usecase.OwnedListInput{OwnerID: owner})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, owner.String(), views[0].CreatedBy)
}

func TestFacilityService_Create_Success(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.txRepo.On("Create", ctx, mock.AnythingOfType("*entity.Facility")).
		Run(func(args mock.Arguments) {
			facility := args.Get(1).(*entity.Facility)
			facility.ID = 42
		}).
		Return(nil)
	fixtures.txRepo.On("UpsertGeometry", ctx, int64(42), 63.8258, 20.263).Return(nil)

	output, err := fixtures.service.Create(ctx, usecase.CreateFacilityInput{
		OwnerID:   owner,
		Name:      "Simhallen",
		Latitude:  ptr(63.8258),
		Longitude: ptr(20.263),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), output.ID)
	fixtures.txRepo.AssertExpectations(t)
}

func TestFacilityService_Create_NameRequired(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()

	for _, name := range []string{"", "   "} {
		output, err := fixtures.service.Create(ctx, usecase.CreateFacilityInput{
			OwnerID: uuid.New(),
			Name:    name,
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrNameRequired)
	}
	fixtures.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFacilityService_Create_SkipsGeometryWithoutBothCoordinates(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()

	fixtures.txRepo.On("Create", ctx, mock.AnythingOfType("*entity.Facility")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Facility).ID = 7
		}).
		Return(nil)

	output, err := fixtures.service.Create(ctx, usecase.CreateFacilityInput{
		OwnerID:  uuid.New(),
		Name:     "Ishallen",
		Latitude: ptr(63.0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), output.ID)
	fixtures.txRepo.AssertNotCalled(t, "UpsertGeometry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFacilityService_Update_Success(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.txRepo.On("FindOwned", ctx, int64(5), owner).
		Return(sampleFacility(5, owner), nil)
	fixtures.txRepo.On("Update", ctx, mock.MatchedBy(func(facility *entity.Facility) bool {
		return facility.ID == 5 && facility.Name == "Nya simhallen" && facility.Address == nil
	})).Return(nil)
	fixtures.txRepo.On("UpsertGeometry", ctx, int64(5), 64.0, 21.0).Return(nil)

	output, err := fixtures.service.Update(ctx, usecase.UpdateFacilityInput{
		ID:        5,
		OwnerID:   owner,
		Name:      ptr("Nya simhallen"),
		Latitude:  ptr(64.0),
		Longitude: ptr(21.0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), output.ID)
	fixtures.txRepo.AssertExpectations(t)
}

func TestFacilityService_Update_KeepsNameWhenOmitted(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.txRepo.On("FindOwned", ctx, int64(5), owner).
		Return(sampleFacility(5, owner), nil)
	fixtures.txRepo.On("Update", ctx, mock.MatchedBy(func(facility *entity.Facility) bool {
		return facility.Name == "Simhallen"
	})).Return(nil)

	output, err := fixtures.service.Update(ctx, usecase.UpdateFacilityInput{
		ID:      5,
		OwnerID: owner,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), output.ID)
}

func TestFacilityService_Update_NotOwned(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.txRepo.On("FindOwned", ctx, int64(5), owner).
		Return(nil, repository.ErrFacilityNotFound)

	output, err := fixtures.service.Update(ctx, usecase.UpdateFacilityInput{
		ID:      5,
		OwnerID: owner,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrFacilityNotFound)
	fixtures.txRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFacilityService_Delete_Success(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.facilityRepo.On("DeleteOwned", ctx, int64(9), owner).Return(nil)

	output, err := fixtures.service.Delete(ctx, usecase.DeleteFacilityInput{ID: 9, OwnerID: owner})

	require.NoError(t, err)
	assert.Equal(t, int64(9), output.ID)
}

func TestFacilityService_Delete_NotOwned(t *testing.T) {
	fixtures := createTestFacilityService(t)
	ctx := context.Background()
	owner := uuid.New()

	fixtures.facilityRepo.On("DeleteOwned", ctx, int64(9), owner).
		Return(repository.ErrFacilityNotFound)

	output, err := fixtures.service.Delete(ctx, usecase.DeleteFacilityInput{ID: 9, OwnerID: owner})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrFacilityNotFound)
}
