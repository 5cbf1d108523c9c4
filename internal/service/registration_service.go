package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

// RegistrationService implements the registration lifecycle: submission,
// admin status workflow, event-day flags, certificate grants and deletion.
type RegistrationService interface {
	// Register creates a registration for an already-authenticated user. The
	// claimed subject must match the verified credential.
	Register(ctx context.Context, claims *auth.Claims, subject uuid.UUID, in RiderInput, termsAccepted, liabilityAccepted bool) (*model.Registration, error)
	GetOwn(ctx context.Context, claims *auth.Claims) (*model.Registration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	RequestCancellation(ctx context.Context, claims *auth.Claims, reason string) (*model.Registration, error)

	List(ctx context.Context, claims *auth.Claims, status model.RegistrationStatus) ([]model.Registration, error)
	CountByStatus(ctx context.Context, claims *auth.Claims) (map[model.RegistrationStatus]int64, error)
	UpdateStatus(ctx context.Context, claims *auth.Claims, id uuid.UUID, status model.RegistrationStatus) (*model.Registration, error)
	EditDetails(ctx context.Context, claims *auth.Claims, id uuid.UUID, in RiderInput) (*model.Registration, error)
	SetCheckedIn(ctx context.Context, claims *auth.Claims, id uuid.UUID, checkedIn bool) (*model.Registration, error)
	SetFinished(ctx context.Context, claims *auth.Claims, id uuid.UUID, finished bool) (*model.Registration, error)
	SetCertificate(ctx context.Context, claims *auth.Claims, id uuid.UUID, granted bool) (*model.Registration, error)
	Delete(ctx context.Context, claims *auth.Claims, id uuid.UUID) error
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	policy    authz.Policy
	validator *RegistrationValidator
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(regRepo repository.RegistrationRepository, policy authz.Policy) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		policy:    policy,
		validator: NewRegistrationValidator(),
	}
}

// Register creates a pending registration for the verified caller.
func (s *registrationService) Register(ctx context.Context, claims *auth.Claims, subject uuid.UUID, in RiderInput, termsAccepted, liabilityAccepted bool) (*model.Registration, error) {
	if err := s.validator.ValidateConsent(termsAccepted, liabilityAccepted); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRider(in); err != nil {
		return nil, err
	}

	user, err := s.policy.RequireSelf(ctx, claims, subject)
	if err != nil {
		return nil, err
	}

	if existing, err := s.regRepo.FindByID(ctx, user.ID); err == nil && existing != nil {
		return nil, apperrors.ErrRegistrationExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check registration existence: %w", err)
	}

	reg := &model.Registration{
		ID:               user.ID,
		RegistrationType: in.RegistrationType,
		RiderName:        in.RiderName,
		RiderAge:         in.RiderAge,
		Phone:            in.Phone,
		WhatsApp:         in.WhatsApp,
		PhotoURL:         in.PhotoURL,
		Status:           model.StatusPending,
	}
	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

// GetOwn returns the caller's own registration.
func (s *registrationService) GetOwn(ctx context.Context, claims *auth.Claims) (*model.Registration, error) {
	user, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}
	return s.findRegistration(ctx, user.ID)
}

// GetByID returns a registration without any role gate. Used by the public
// ticket verification path.
func (s *registrationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	return s.findRegistration(ctx, id)
}

// RequestCancellation moves the caller's own registration to
// cancellation_requested, recording the reason. The transition table only
// admits this from pending or approved for plain users.
func (s *registrationService) RequestCancellation(ctx context.Context, claims *auth.Claims, reason string) (*model.Registration, error) {
	if err := s.validator.ValidateCancellationReason(reason); err != nil {
		return nil, err
	}

	user, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}

	reg, err := s.findRegistration(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(user.Role, reg.Status, model.StatusCancellationRequested) {
		return nil, apperrors.ErrInvalidTransition
	}

	reg.Status = model.StatusCancellationRequested
	reg.CancellationReason = reason
	s.stampStatusAudit(reg, user.ID)

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("save cancellation request: %w", err)
	}
	return reg, nil
}

// List returns registrations for the admin dashboard, optionally filtered.
func (s *registrationService) List(ctx context.Context, claims *auth.Claims, status model.RegistrationStatus) ([]model.Registration, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status filter")
	}
	return s.regRepo.List(ctx, status)
}

// CountByStatus returns dashboard counters.
func (s *registrationService) CountByStatus(ctx context.Context, claims *auth.Claims) (map[model.RegistrationStatus]int64, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	return s.regRepo.CountByStatus(ctx)
}

// UpdateStatus writes a new status plus audit fields. Admin roles may set any
// enum value; no further transition legality applies to them.
func (s *registrationService) UpdateStatus(ctx context.Context, claims *auth.Claims, id uuid.UUID, status model.RegistrationStatus) (*model.Registration, error) {
	admin, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown registration status")
	}

	reg, err := s.findRegistration(ctx, id)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(admin.Role, reg.Status, status) {
		return nil, apperrors.ErrInvalidTransition
	}

	reg.Status = status
	s.stampStatusAudit(reg, admin.ID)

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return reg, nil
}

// EditDetails overwrites rider fields on an existing record. Status is never
// touched here.
func (s *registrationService) EditDetails(ctx context.Context, claims *auth.Claims, id uuid.UUID, in RiderInput) (*model.Registration, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRider(in); err != nil {
		return nil, err
	}

	reg, err := s.findRegistration(ctx, id)
	if err != nil {
		return nil, err
	}

	reg.RiderName = in.RiderName
	reg.RiderAge = in.RiderAge
	reg.Phone = in.Phone
	reg.WhatsApp = in.WhatsApp
	reg.PhotoURL = in.PhotoURL
	reg.RegistrationType = in.RegistrationType

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("edit registration: %w", err)
	}
	return reg, nil
}

// SetCheckedIn flips the event-day check-in flag. Idempotent.
func (s *registrationService) SetCheckedIn(ctx context.Context, claims *auth.Claims, id uuid.UUID, checkedIn bool) (*model.Registration, error) {
	return s.setFlag(ctx, claims, id, func(reg *model.Registration) { reg.Rider1CheckedIn = checkedIn })
}

// SetFinished flips the finish-line flag. Idempotent.
func (s *registrationService) SetFinished(ctx context.Context, claims *auth.Claims, id uuid.UUID, finished bool) (*model.Registration, error) {
	return s.setFlag(ctx, claims, id, func(reg *model.Registration) { reg.Rider1Finished = finished })
}

// SetCertificate grants or revokes the certificate. Idempotent.
func (s *registrationService) SetCertificate(ctx context.Context, claims *auth.Claims, id uuid.UUID, granted bool) (*model.Registration, error) {
	return s.setFlag(ctx, claims, id, func(reg *model.Registration) { reg.CertificateGranted = granted })
}

// Delete removes only the registration record. Profile deletion is a separate
// superadmin operation on the user aggregate.
func (s *registrationService) Delete(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return err
	}
	if _, err := s.findRegistration(ctx, id); err != nil {
		return err
	}
	if err := s.regRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) setFlag(ctx context.Context, claims *auth.Claims, id uuid.UUID, apply func(*model.Registration)) (*model.Registration, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	reg, err := s.findRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(reg)
	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("update flag: %w", err)
	}
	return reg, nil
}

func (s *registrationService) findRegistration(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) stampStatusAudit(reg *model.Registration, by uuid.UUID) {
	now := time.Now().UTC()
	reg.StatusLastUpdatedAt = &now
	reg.StatusLastUpdatedBy = &by
}
