// Package authz resolves a verified credential to a profile and checks the
// caller's role against the set an operation allows. Every gated operation
// goes through Require; there is no caller-supplied-identity path.
package authz

import (
	"context"

	"github.com/google/uuid"

	"ridereg/internal/auth"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

// Policy authorizes callers against required role sets.
type Policy interface {
	// Require resolves claims to the stored profile and denies unless the
	// profile's role is in roles. The role is always re-read from the profile
	// record, never taken from the token.
	Require(ctx context.Context, claims *auth.Claims, roles ...model.UserRole) (*model.AppUser, error)
	// RequireSelf additionally denies when the resolved identity differs from
	// the claimed subject.
	RequireSelf(ctx context.Context, claims *auth.Claims, subject uuid.UUID) (*model.AppUser, error)
}

type policy struct {
	users repository.UserRepository
}

// NewPolicy creates the authorization policy over the user repository.
func NewPolicy(users repository.UserRepository) Policy {
	return &policy{users: users}
}

func (p *policy) Require(ctx context.Context, claims *auth.Claims, roles ...model.UserRole) (*model.AppUser, error) {
	if claims == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	id, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	user, err := p.users.FindByID(ctx, id)
	if err != nil {
		// A missing profile is a silent deny, not a not-found.
		return nil, apperrors.ErrPermissionDenied
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, apperrors.ErrPermissionDenied
}

func (p *policy) RequireSelf(ctx context.Context, claims *auth.Claims, subject uuid.UUID) (*model.AppUser, error) {
	if claims == nil {
		return nil, apperrors.ErrPermissionDenied
	}
	id, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if id != subject {
		return nil, apperrors.ErrAuthMismatch
	}
	user, err := p.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	return user, nil
}
