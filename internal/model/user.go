package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole gates mutation rights across the platform.
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleViewer     UserRole = "viewer"
	RoleAdmin      UserRole = "admin"
	RoleSuperadmin UserRole = "superadmin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleViewer, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may perform admin-gated operations.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// AccessRequestStatus tracks a user's organizer-access request.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending_review"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"
)

// AppUser represents an authenticated profile in the system.
type AppUser struct {
	ID            uuid.UUID            `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string               `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string               `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	DisplayName   string               `json:"display_name" gorm:"size:255;not null"`
	PhotoURL      string               `json:"photo_url,omitempty" gorm:"size:512"`
	Role          UserRole             `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	AccessRequest *AccessRequestStatus `json:"access_request,omitempty" gorm:"type:varchar(20)"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
