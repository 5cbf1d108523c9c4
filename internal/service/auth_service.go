package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridereg/internal/auth"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles account creation and the token flow.
type AuthService interface {
	// RegisterRider creates an account and its registration in one call.
	// Validation runs before any write; profile and registration are written
	// in a single transaction so partial failure cannot orphan an identity.
	RegisterRider(ctx context.Context, in RegisterRiderInput) (*model.AppUser, *model.Registration, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.AppUser, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

// RegisterRiderInput is the full payload of the combined account+registration
// submission.
type RegisterRiderInput struct {
	Email             string
	Password          string
	Rider             RiderInput
	TermsAccepted     bool
	LiabilityAccepted bool
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	validator  *RegistrationValidator
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		validator:  NewRegistrationValidator(),
	}
}

// RegisterRider creates a new account with a pending registration.
func (s *authService) RegisterRider(ctx context.Context, in RegisterRiderInput) (*model.AppUser, *model.Registration, error) {
	if err := s.validator.ValidateConsent(in.TermsAccepted, in.LiabilityAccepted); err != nil {
		return nil, nil, err
	}
	if err := s.validator.ValidateRider(in.Rider); err != nil {
		return nil, nil, err
	}
	if len(in.Password) < 6 {
		return nil, nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.AppUser{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  in.Rider.RiderName,
		PhotoURL:     in.Rider.PhotoURL,
		Role:         model.RoleUser,
	}
	reg := &model.Registration{
		ID:               user.ID,
		RegistrationType: in.Rider.RegistrationType,
		RiderName:        in.Rider.RiderName,
		RiderAge:         in.Rider.RiderAge,
		Phone:            in.Rider.Phone,
		WhatsApp:         in.Rider.WhatsApp,
		PhotoURL:         in.Rider.PhotoURL,
		Status:           model.StatusPending,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, regs repository.RegistrationRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		if err := regs.Create(ctx, reg); err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return user, reg, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.AppUser, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if storedUserID.String() != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	subject, err := claims.SubjectID()
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(subject, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
