package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		role UserRole
		from RegistrationStatus
		to   RegistrationStatus
		want bool
	}{
		{name: "user requests cancellation of approved", role: RoleUser, from: StatusApproved, to: StatusCancellationRequested, want: true},
		{name: "user requests cancellation of pending", role: RoleUser, from: StatusPending, to: StatusCancellationRequested, want: true},
		{name: "user cannot approve", role: RoleUser, from: StatusPending, to: StatusApproved, want: false},
		{name: "user cannot cancel directly", role: RoleUser, from: StatusCancellationRequested, to: StatusCancelled, want: false},
		{name: "user cannot re-request from cancelled", role: RoleUser, from: StatusCancelled, to: StatusCancellationRequested, want: false},
		{name: "viewer cannot transition at all", role: RoleViewer, from: StatusPending, to: StatusCancellationRequested, want: false},
		{name: "admin approves pending", role: RoleAdmin, from: StatusPending, to: StatusApproved, want: true},
		{name: "admin rejects pending", role: RoleAdmin, from: StatusPending, to: StatusRejected, want: true},
		{name: "admin cancels requested", role: RoleAdmin, from: StatusCancellationRequested, to: StatusCancelled, want: true},
		{name: "admin overwrites any state", role: RoleAdmin, from: StatusCancelled, to: StatusApproved, want: true},
		{name: "superadmin overwrites any state", role: RoleSuperadmin, from: StatusRejected, to: StatusPending, want: true},
		{name: "admin cannot set unknown status", role: RoleAdmin, from: StatusPending, to: "archived", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.role, tt.from, tt.to))
		})
	}
}

func TestUserRole(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleSuperadmin.IsStaff())
	assert.False(t, RoleUser.IsStaff())
	assert.False(t, RoleViewer.IsStaff())

	assert.True(t, UserRole("viewer").Valid())
	assert.False(t, UserRole("owner").Valid())
}

func TestRegistrationStatusValid(t *testing.T) {
	for _, s := range []RegistrationStatus{
		StatusPending, StatusApproved, StatusRejected, StatusCancellationRequested, StatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, RegistrationStatus("done").Valid())
}
