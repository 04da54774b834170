package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"registry/internal/domain/entity"
	"registry/internal/domain/repository"
	"registry/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepoFactory hands the configured repositories to transactional code.
type fakeRepoFactory struct {
	facilityRepo repository.FacilityRepository
	userRepo     repository.UserRepository
}

func (f *fakeRepoFactory) FacilityRepo() repository.FacilityRepository { return f.facilityRepo }
func (f *fakeRepoFactory) UserRepo() repository.UserRepository         { return f.userRepo }

// fakeTxManager runs the transactional function directly against the factory,
// or short-circuits with err when set.
type fakeTxManager struct {
	factory repository.RepositoryFactory
	err     error
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.err != nil {
		return m.err
	}

	return fn(m.factory)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type mockFacilityRepository struct {
	mock.Mock
}

func (m *mockFacilityRepository) ListPublic(ctx context.Context, filter repository.PublicFilter) ([]*entity.Facility, error) {
	args := m.Called(ctx, filter)
	if facilities, ok := args.Get(0).([]*entity.Facility); ok {
		return facilities, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockFacilityRepository) ListForMap(ctx context.Context, kommunID *int64) ([]*entity.Facility, error) {
	args := m.Called(ctx, kommunID)
	if facilities, ok := args.Get(0).([]*entity.Facility); ok {
		return facilities, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockFacilityRepository) ListOwned(ctx context.Context, ownerID uuid.UUID, filter repository.OwnedFilter) ([]*entity.Facility, error) {
	args := m.Called(ctx, ownerID, filter)
	if facilities, ok := args.Get(0).([]*entity.Facility); ok {
		return facilities, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockFacilityRepository) FindOwned(ctx context.Context, id int64, ownerID uuid.UUID) (*entity.Facility, error) {
	args := m.Called(ctx, id, ownerID)
	if facility, ok := args.Get(0).(*entity.Facility); ok {
		return facility, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockFacilityRepository) Create(ctx context.Context, facility *entity.Facility) error {
	args := m.Called(ctx, facility)

	return args.Error(0)
}

func (m *mockFacilityRepository) Update(ctx context.Context, facility *entity.Facility) error {
	args := m.Called(ctx, facility)

	return args.Error(0)
}

func (m *mockFacilityRepository) UpsertGeometry(ctx context.Context, facilityID int64, latitude, longitude float64) error {
	args := m.Called(ctx, facilityID, latitude, longitude)

	return args.Error(0)
}

func (m *mockFacilityRepository) DeleteOwned(ctx context.Context, id int64, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)

	return args.Error(0)
}

type mockLookupRepository struct {
	mock.Mock
}

func (m *mockLookupRepository) ListKommuner(ctx context.Context) ([]*entity.Kommun, error) {
	args := m.Called(ctx)
	if kommuner, ok := args.Get(0).([]*entity.Kommun); ok {
		return kommuner, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockLookupRepository) ListFacilityTypes(ctx context.Context) ([]*entity.FacilityType, error) {
	args := m.Called(ctx)
	if types, ok := args.Get(0).([]*entity.FacilityType); ok {
		return types, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) TokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, query service.GeocodeQuery) (*service.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if result, ok := args.Get(0).(*service.GeocodeResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}
