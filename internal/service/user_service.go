package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

// UserService handles profile reads, organizer-access requests and the
// superadmin-only role and deletion operations.
type UserService interface {
	Me(ctx context.Context, claims *auth.Claims) (*model.AppUser, error)
	// RequestOrganizerAccess is idempotent: a second request fails while one
	// is already on file.
	RequestOrganizerAccess(ctx context.Context, claims *auth.Claims) (*model.AppUser, error)
	ListAccessRequests(ctx context.Context, claims *auth.Claims) ([]model.AppUser, error)
	ReviewAccessRequest(ctx context.Context, claims *auth.Claims, target uuid.UUID, approve bool) (*model.AppUser, error)
	ChangeRole(ctx context.Context, claims *auth.Claims, target uuid.UUID, role model.UserRole) (*model.AppUser, error)
	DeleteUser(ctx context.Context, claims *auth.Claims, target uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	policy   authz.Policy
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, policy authz.Policy) UserService {
	return &userService{userRepo: userRepo, policy: policy}
}

// Me returns the caller's own profile.
func (s *userService) Me(ctx context.Context, claims *auth.Claims) (*model.AppUser, error) {
	return s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
}

// RequestOrganizerAccess files a pending_review access request on the
// caller's own profile.
func (s *userService) RequestOrganizerAccess(ctx context.Context, claims *auth.Claims) (*model.AppUser, error) {
	user, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}
	if user.AccessRequest != nil {
		return nil, apperrors.ErrAccessRequestExists
	}

	pending := model.AccessRequestPending
	user.AccessRequest = &pending
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save access request: %w", err)
	}
	return user, nil
}

// ListAccessRequests lists profiles with a filed access request.
func (s *userService) ListAccessRequests(ctx context.Context, claims *auth.Claims) ([]model.AppUser, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	return s.userRepo.ListWithAccessRequests(ctx)
}

// ReviewAccessRequest marks a pending request approved or rejected. Approval
// promotes the target to viewer; role upgrades beyond that stay with the
// superadmin role-change operation.
func (s *userService) ReviewAccessRequest(ctx context.Context, claims *auth.Claims, target uuid.UUID, approve bool) (*model.AppUser, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, target)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.AccessRequest == nil || *user.AccessRequest != model.AccessRequestPending {
		return nil, apperrors.NewValidationError("no pending access request for this user")
	}

	outcome := model.AccessRequestRejected
	if approve {
		outcome = model.AccessRequestApproved
		if user.Role == model.RoleUser {
			user.Role = model.RoleViewer
		}
	}
	user.AccessRequest = &outcome

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save access review: %w", err)
	}
	return user, nil
}

// ChangeRole sets a target profile's role. Superadmins cannot change their
// own role through this path.
func (s *userService) ChangeRole(ctx context.Context, claims *auth.Claims, target uuid.UUID, role model.UserRole) (*model.AppUser, error) {
	caller, err := s.policy.Require(ctx, claims, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}
	if caller.ID == target {
		return nil, apperrors.ErrSelfRoleChange
	}

	user, err := s.userRepo.FindByID(ctx, target)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, target, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	return user, nil
}

// DeleteUser removes a profile. Independent of registration deletion.
func (s *userService) DeleteUser(ctx context.Context, claims *auth.Claims, target uuid.UUID) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleSuperadmin); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, target); err != nil {
		return apperrors.ErrUserNotFound
	}
	if err := s.userRepo.Delete(ctx, target); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
