package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ridereg/internal/auth"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
	// txRegs is handed to WithTransaction callbacks as the registration
	// repository bound to the same transaction.
	txRegs repository.RegistrationRepository
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.AppUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.AppUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppUser), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.AppUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppUser), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListWithAccessRequests(ctx context.Context) ([]model.AppUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AppUser), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, regs repository.RegistrationRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m, m.txRegs)
}

// MockRegistrationRepository is a mock implementation of repository.RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Update(ctx context.Context, reg *model.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context, status model.RegistrationStatus) ([]model.Registration, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistrationRepository) CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.RegistrationStatus]int64), args.Error(1)
}

// MockQnaRepository is a mock implementation of repository.QnaRepository.
type MockQnaRepository struct {
	mock.Mock
}

func (m *MockQnaRepository) CreateQuestion(ctx context.Context, q *model.QnaQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQnaRepository) CreateReply(ctx context.Context, r *model.QnaReply) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockQnaRepository) FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.QnaQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QnaQuestion), args.Error(1)
}

func (m *MockQnaRepository) ListQuestions(ctx context.Context) ([]model.QnaQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QnaQuestion), args.Error(1)
}

func (m *MockQnaRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

// MockPolicy is a mock implementation of authz.Policy.
type MockPolicy struct {
	mock.Mock
}

func (m *MockPolicy) Require(ctx context.Context, claims *auth.Claims, roles ...model.UserRole) (*model.AppUser, error) {
	args := m.Called(ctx, claims, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppUser), args.Error(1)
}

func (m *MockPolicy) RequireSelf(ctx context.Context, claims *auth.Claims, subject uuid.UUID) (*model.AppUser, error) {
	args := m.Called(ctx, claims, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppUser), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockSettingsService is a mock implementation of SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetEvent(ctx context.Context) (*model.EventSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventSettings), args.Error(1)
}

func (m *MockSettingsService) SaveEvent(ctx context.Context, claims *auth.Claims, settings *model.EventSettings) error {
	args := m.Called(ctx, claims, settings)
	return args.Error(0)
}

func (m *MockSettingsService) GetLocation(ctx context.Context) (*model.LocationSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LocationSettings), args.Error(1)
}

func (m *MockSettingsService) SaveLocation(ctx context.Context, claims *auth.Claims, settings *model.LocationSettings) error {
	args := m.Called(ctx, claims, settings)
	return args.Error(0)
}
