package service

import (
	"regexp"
	"strings"

	"ridereg/internal/errors"
	"ridereg/internal/model"
)

const (
	minRiderAge = 18
	maxRiderAge = 100

	minReasonLength = 10
	maxReasonLength = 500
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegistrationValidator validates rider registration input before any write.
type RegistrationValidator struct{}

// NewRegistrationValidator creates a new registration validator.
func NewRegistrationValidator() *RegistrationValidator {
	return &RegistrationValidator{}
}

// RiderInput is the validated shape of a registration submission or edit.
type RiderInput struct {
	RiderName        string
	RiderAge         int
	Phone            string
	WhatsApp         string
	PhotoURL         string
	RegistrationType model.VehicleType
}

// ValidateRider checks field constraints: name length, age window, phone
// pattern, optional whatsapp pattern, known vehicle type.
func (v *RegistrationValidator) ValidateRider(in RiderInput) error {
	name := strings.TrimSpace(in.RiderName)
	if len(name) < 2 || len(name) > 100 {
		return errors.NewValidationError("rider name must be between 2 and 100 characters")
	}
	if in.RiderAge < minRiderAge || in.RiderAge > maxRiderAge {
		return errors.NewValidationError("rider age must be between 18 and 100")
	}
	if !phoneRegex.MatchString(in.Phone) {
		return errors.NewValidationError("phone number is not valid")
	}
	if in.WhatsApp != "" && !phoneRegex.MatchString(in.WhatsApp) {
		return errors.NewValidationError("whatsapp number is not valid")
	}
	if !in.RegistrationType.Valid() {
		return errors.NewValidationError("registration type must be bike, jeep or car")
	}
	return nil
}

// ValidateConsent requires both submission checkboxes.
func (v *RegistrationValidator) ValidateConsent(termsAccepted, liabilityAccepted bool) error {
	if !termsAccepted || !liabilityAccepted {
		return errors.NewValidationError("terms and liability consent are required")
	}
	return nil
}

// ValidateCancellationReason enforces the free-text reason length.
func (v *RegistrationValidator) ValidateCancellationReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) < minReasonLength || len(reason) > maxReasonLength {
		return errors.NewValidationError("cancellation reason must be between 10 and 500 characters")
	}
	return nil
}
