package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridereg/internal/auth"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
)

func validRegisterInput() RegisterRiderInput {
	return RegisterRiderInput{
		Email:             "rider@example.com",
		Password:          "secret123",
		Rider:             validRider(),
		TermsAccepted:     true,
		LiabilityAccepted: true,
	}
}

func TestAuthService_RegisterRider_EmailExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	userRepo.On("FindByEmail", mock.Anything, "rider@example.com").
		Return(&model.AppUser{ID: uuid.New(), Email: "rider@example.com"}, nil)

	user, reg, err := svc.RegisterRider(context.Background(), validRegisterInput())

	assert.Nil(t, user)
	assert.Nil(t, reg)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterRider_UnderageCreatesNothing(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	in := validRegisterInput()
	in.Rider.RiderAge = 17

	user, reg, err := svc.RegisterRider(context.Background(), in)

	assert.Nil(t, user)
	assert.Nil(t, reg)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	// No reads and no writes of any kind before validation passes.
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterRider_CreatesProfileAndRegistration(t *testing.T) {
	userRepo := new(MockUserRepository)
	regRepo := new(MockRegistrationRepository)
	userRepo.txRegs = regRepo
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	userRepo.On("FindByEmail", mock.Anything, "rider@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	regRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, reg, err := svc.RegisterRider(context.Background(), validRegisterInput())

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, user.ID, reg.ID)
	assert.Equal(t, model.StatusPending, reg.Status)
	assert.Equal(t, model.VehicleJeep, reg.RegistrationType)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	userRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	regRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)
	stored := &model.AppUser{ID: uuid.New(), Email: "rider@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{name: "valid credentials", email: "rider@example.com", password: "secret123", found: true},
		{name: "wrong password", email: "rider@example.com", password: "nope", found: true, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "secret123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenStore := new(MockTokenStore)
			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore)

			if tt.found {
				userRepo.On("FindByEmail", mock.Anything, tt.email).Return(stored, nil)
			} else {
				userRepo.On("FindByEmail", mock.Anything, tt.email).Return(nil, gorm.ErrRecordNotFound)
			}
			tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, stored.ID, stored.Email, auth.RefreshTokenExpiry).
				Return(nil)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestAuthService_RefreshToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "rider@example.com")
	assert.NoError(t, err)

	tokenStore := new(MockTokenStore)
	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).
		Return(userID, "rider@example.com", nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}
