package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
)

func TestUserService_RequestOrganizerAccess_Idempotent(t *testing.T) {
	userRepo := new(MockUserRepository)
	policy := new(MockPolicy)
	svc := NewUserService(userRepo, policy)

	userID := uuid.New()
	user := &model.AppUser{ID: userID, Role: model.RoleUser}
	policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	updated, err := svc.RequestOrganizerAccess(context.Background(), testClaims(userID))
	assert.NoError(t, err)
	assert.Equal(t, model.AccessRequestPending, *updated.AccessRequest)

	// Second request fails while one is on file; nothing written again.
	_, err = svc.RequestOrganizerAccess(context.Background(), testClaims(userID))
	assert.ErrorIs(t, err, apperrors.ErrAccessRequestExists)
	assert.EqualError(t, err, "You have already submitted a request.")
	userRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestUserService_ChangeRole(t *testing.T) {
	superID := uuid.New()
	targetID := uuid.New()
	super := &model.AppUser{ID: superID, Role: model.RoleSuperadmin}

	tests := []struct {
		name    string
		caller  *model.AppUser
		denied  bool
		target  uuid.UUID
		role    model.UserRole
		wantErr error
	}{
		{name: "superadmin promotes to admin", caller: super, target: targetID, role: model.RoleAdmin},
		{name: "self change rejected", caller: super, target: superID, role: model.RoleUser, wantErr: apperrors.ErrSelfRoleChange},
		{name: "non-superadmin denied", denied: true, target: targetID, role: model.RoleAdmin, wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			policy := new(MockPolicy)
			svc := NewUserService(userRepo, policy)

			if tt.denied {
				policy.On("Require", mock.Anything, mock.Anything, []model.UserRole{model.RoleSuperadmin}).
					Return(nil, apperrors.ErrPermissionDenied)
			} else {
				policy.On("Require", mock.Anything, mock.Anything, []model.UserRole{model.RoleSuperadmin}).
					Return(tt.caller, nil)
			}
			userRepo.On("FindByID", mock.Anything, tt.target).
				Return(&model.AppUser{ID: tt.target, Role: model.RoleUser}, nil)
			userRepo.On("UpdateRole", mock.Anything, tt.target, tt.role).Return(nil)

			user, err := svc.ChangeRole(context.Background(), testClaims(superID), tt.target, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
		})
	}
}

func TestUserService_ReviewAccessRequest(t *testing.T) {
	adminID := uuid.New()
	targetID := uuid.New()
	admin := &model.AppUser{ID: adminID, Role: model.RoleAdmin}
	pending := model.AccessRequestPending

	tests := []struct {
		name        string
		approve     bool
		wantOutcome model.AccessRequestStatus
		wantRole    model.UserRole
	}{
		{name: "approve promotes to viewer", approve: true, wantOutcome: model.AccessRequestApproved, wantRole: model.RoleViewer},
		{name: "reject keeps role", approve: false, wantOutcome: model.AccessRequestRejected, wantRole: model.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			policy := new(MockPolicy)
			svc := NewUserService(userRepo, policy)

			policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(admin, nil)
			userRepo.On("FindByID", mock.Anything, targetID).
				Return(&model.AppUser{ID: targetID, Role: model.RoleUser, AccessRequest: &pending}, nil)
			userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

			user, err := svc.ReviewAccessRequest(context.Background(), testClaims(adminID), targetID, tt.approve)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, *user.AccessRequest)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}

func TestUserService_DeleteUser_SuperadminOnly(t *testing.T) {
	userRepo := new(MockUserRepository)
	policy := new(MockPolicy)
	svc := NewUserService(userRepo, policy)

	policy.On("Require", mock.Anything, mock.Anything, []model.UserRole{model.RoleSuperadmin}).
		Return(nil, apperrors.ErrPermissionDenied)

	err := svc.DeleteUser(context.Background(), testClaims(uuid.New()), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
