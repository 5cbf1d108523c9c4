package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationStatus represents the lifecycle state of a registration.
type RegistrationStatus string

const (
	StatusPending               RegistrationStatus = "pending"
	StatusApproved              RegistrationStatus = "approved"
	StatusRejected              RegistrationStatus = "rejected"
	StatusCancellationRequested RegistrationStatus = "cancellation_requested"
	StatusCancelled             RegistrationStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancellationRequested, StatusCancelled:
		return true
	}
	return false
}

// VehicleType is the category of vehicle a rider registers with.
type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleJeep VehicleType = "jeep"
	VehicleCar  VehicleType = "car"
)

// Valid reports whether the vehicle type is one of the known values.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleBike, VehicleJeep, VehicleCar:
		return true
	}
	return false
}

// Registration is one participant's event signup record. Its ID equals the
// owning user's ID: one registration per identity.
type Registration struct {
	ID                  uuid.UUID          `json:"id" gorm:"type:char(36);primaryKey"`
	RegistrationType    VehicleType        `json:"registration_type" gorm:"type:varchar(10);not null;index"`
	RiderName           string             `json:"rider_name" gorm:"size:255;not null"`
	RiderAge            int                `json:"rider_age" gorm:"not null"`
	Phone               string             `json:"phone" gorm:"size:20;not null"`
	WhatsApp            string             `json:"whatsapp,omitempty" gorm:"size:20"`
	PhotoURL            string             `json:"photo_url,omitempty" gorm:"size:512"`
	Status              RegistrationStatus `json:"status" gorm:"type:varchar(30);not null;default:'pending';index"`
	Rider1CheckedIn     bool               `json:"rider1_checked_in" gorm:"default:false"`
	Rider1Finished      bool               `json:"rider1_finished" gorm:"default:false"`
	CertificateGranted  bool               `json:"certificate_granted" gorm:"default:false"`
	CancellationReason  string             `json:"cancellation_reason,omitempty" gorm:"size:500"`
	StatusLastUpdatedAt *time.Time         `json:"status_last_updated_at,omitempty"`
	StatusLastUpdatedBy *uuid.UUID         `json:"status_last_updated_by,omitempty" gorm:"type:char(36)"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `json:"-" gorm:"index"`
}

// transitions lists, per role, which status moves a caller may perform.
// Staff roles may overwrite any status with any other; plain users may only
// request cancellation of a live registration. Viewers may not transition at all.
var transitions = map[UserRole]map[RegistrationStatus][]RegistrationStatus{
	RoleUser: {
		StatusPending:  {StatusCancellationRequested},
		StatusApproved: {StatusCancellationRequested},
	},
}

// CanTransition reports whether a caller with the given role may move a
// registration from one status to another.
func CanTransition(role UserRole, from, to RegistrationStatus) bool {
	if !to.Valid() {
		return false
	}
	if role.IsStaff() {
		return true
	}
	for _, allowed := range transitions[role][from] {
		if allowed == to {
			return true
		}
	}
	return false
}
