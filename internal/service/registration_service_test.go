package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ridereg/internal/auth"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
)

func testClaims(id uuid.UUID) *auth.Claims {
	return &auth.Claims{UserID: id.String(), Email: "rider@example.com"}
}

func validRider() RiderInput {
	return RiderInput{
		RiderName:        "Asha Kumar",
		RiderAge:         28,
		Phone:            "+919812345678",
		RegistrationType: model.VehicleJeep,
	}
}

func TestRegistrationService_Register_ValidationBeforeWrites(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RiderInput)
		consent bool
		wantMsg string
	}{
		{
			name:    "age below window",
			mutate:  func(in *RiderInput) { in.RiderAge = 17 },
			consent: true,
			wantMsg: "rider age must be between 18 and 100",
		},
		{
			name:    "age above window",
			mutate:  func(in *RiderInput) { in.RiderAge = 101 },
			consent: true,
			wantMsg: "rider age must be between 18 and 100",
		},
		{
			name:    "name too short",
			mutate:  func(in *RiderInput) { in.RiderName = "A" },
			consent: true,
			wantMsg: "rider name must be between 2 and 100 characters",
		},
		{
			name:    "bad phone",
			mutate:  func(in *RiderInput) { in.Phone = "not-a-phone" },
			consent: true,
			wantMsg: "phone number is not valid",
		},
		{
			name:    "unknown vehicle type",
			mutate:  func(in *RiderInput) { in.RegistrationType = "boat" },
			consent: true,
			wantMsg: "registration type must be bike, jeep or car",
		},
		{
			name:    "missing consent",
			mutate:  func(in *RiderInput) {},
			consent: false,
			wantMsg: "terms and liability consent are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regRepo := new(MockRegistrationRepository)
			policy := new(MockPolicy)
			svc := NewRegistrationService(regRepo, policy)

			in := validRider()
			tt.mutate(&in)
			userID := uuid.New()

			reg, err := svc.Register(context.Background(), testClaims(userID), userID, in, tt.consent, tt.consent)

			assert.Nil(t, reg)
			ve, ok := apperrors.AsValidation(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantMsg, ve.Message)
			// Validation failed before identity resolution or any write.
			regRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			policy.AssertNotCalled(t, "RequireSelf", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRegistrationService_Register_AuthMismatch(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	callerID := uuid.New()
	claimedID := uuid.New()
	policy.On("RequireSelf", mock.Anything, testClaims(callerID), claimedID).
		Return(nil, apperrors.ErrAuthMismatch)

	reg, err := svc.Register(context.Background(), testClaims(callerID), claimedID, validRider(), true, true)

	assert.Nil(t, reg)
	assert.ErrorIs(t, err, apperrors.ErrAuthMismatch)
	regRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_AlreadyExists(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	userID := uuid.New()
	user := &model.AppUser{ID: userID, Role: model.RoleUser}
	policy.On("RequireSelf", mock.Anything, mock.Anything, userID).Return(user, nil)
	regRepo.On("FindByID", mock.Anything, userID).
		Return(&model.Registration{ID: userID}, nil)

	reg, err := svc.Register(context.Background(), testClaims(userID), userID, validRider(), true, true)

	assert.Nil(t, reg)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationExists)
	regRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_UpdateStatus_AdminApproves(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	adminID := uuid.New()
	regID := uuid.New()
	admin := &model.AppUser{ID: adminID, Role: model.RoleAdmin}
	policy.On("Require", mock.Anything, mock.Anything, []model.UserRole{model.RoleAdmin, model.RoleSuperadmin}).
		Return(admin, nil)
	regRepo.On("FindByID", mock.Anything, regID).
		Return(&model.Registration{ID: regID, Status: model.StatusPending}, nil)
	regRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	reg, err := svc.UpdateStatus(context.Background(), testClaims(adminID), regID, model.StatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, reg.Status)
	assert.NotNil(t, reg.StatusLastUpdatedAt)
	assert.Equal(t, adminID, *reg.StatusLastUpdatedBy)
}

func TestRegistrationService_AdminGates_DenyWithoutMutation(t *testing.T) {
	// A caller resolved to user or viewer is denied and nothing is written.
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	policy.On("Require", mock.Anything, mock.Anything, []model.UserRole{model.RoleAdmin, model.RoleSuperadmin}).
		Return(nil, apperrors.ErrPermissionDenied)

	callerID := uuid.New()
	regID := uuid.New()
	claims := testClaims(callerID)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, claims, regID, model.StatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.SetCheckedIn(ctx, claims, regID, true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.SetCertificate(ctx, claims, regID, true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.Delete(ctx, claims, regID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.EqualError(t, err, "Permission denied.")

	regRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	regRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRegistrationService_SetCertificate_Idempotent(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	adminID := uuid.New()
	regID := uuid.New()
	admin := &model.AppUser{ID: adminID, Role: model.RoleAdmin}
	stored := &model.Registration{ID: regID, Status: model.StatusApproved}

	policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(admin, nil)
	regRepo.On("FindByID", mock.Anything, regID).Return(stored, nil)
	regRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.SetCertificate(context.Background(), testClaims(adminID), regID, true)
	assert.NoError(t, err)
	assert.True(t, first.CertificateGranted)

	second, err := svc.SetCertificate(context.Background(), testClaims(adminID), regID, true)
	assert.NoError(t, err)
	assert.True(t, second.CertificateGranted)

	checked, err := svc.SetCheckedIn(context.Background(), testClaims(adminID), regID, true)
	assert.NoError(t, err)
	assert.True(t, checked.Rider1CheckedIn)

	again, err := svc.SetCheckedIn(context.Background(), testClaims(adminID), regID, true)
	assert.NoError(t, err)
	assert.True(t, again.Rider1CheckedIn)
}

func TestRegistrationService_EditDetails_VehicleTypeRoundTrip(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	adminID := uuid.New()
	regID := uuid.New()
	admin := &model.AppUser{ID: adminID, Role: model.RoleAdmin}
	stored := &model.Registration{
		ID:               regID,
		RegistrationType: model.VehicleJeep,
		RiderName:        "Asha Kumar",
		RiderAge:         28,
		Phone:            "+919812345678",
		Status:           model.StatusApproved,
	}

	policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(admin, nil)
	regRepo.On("FindByID", mock.Anything, regID).Return(stored, nil)
	regRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	in := validRider()
	in.RegistrationType = model.VehicleCar

	reg, err := svc.EditDetails(context.Background(), testClaims(adminID), regID, in)

	assert.NoError(t, err)
	assert.Equal(t, model.VehicleCar, reg.RegistrationType)
	assert.Equal(t, "Asha Kumar", reg.RiderName)
	assert.Equal(t, 28, reg.RiderAge)
	assert.Equal(t, "+919812345678", reg.Phone)
	// Status untouched by a details edit.
	assert.Equal(t, model.StatusApproved, reg.Status)
}

func TestRegistrationService_RequestCancellation(t *testing.T) {
	tests := []struct {
		name       string
		status     model.RegistrationStatus
		reason     string
		wantErr    error
		wantStatus model.RegistrationStatus
	}{
		{
			name:       "approved registration",
			status:     model.StatusApproved,
			reason:     "travel plans changed, cannot attend",
			wantStatus: model.StatusCancellationRequested,
		},
		{
			name:       "pending registration",
			status:     model.StatusPending,
			reason:     "registered twice by mistake",
			wantStatus: model.StatusCancellationRequested,
		},
		{
			name:    "rejected registration cannot request",
			status:  model.StatusRejected,
			reason:  "travel plans changed, cannot attend",
			wantErr: apperrors.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regRepo := new(MockRegistrationRepository)
			policy := new(MockPolicy)
			svc := NewRegistrationService(regRepo, policy)

			userID := uuid.New()
			user := &model.AppUser{ID: userID, Role: model.RoleUser}
			policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(user, nil)
			regRepo.On("FindByID", mock.Anything, userID).
				Return(&model.Registration{ID: userID, Status: tt.status}, nil)
			regRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

			reg, err := svc.RequestCancellation(context.Background(), testClaims(userID), tt.reason)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				regRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, reg.Status)
			assert.Equal(t, tt.reason, reg.CancellationReason)
			assert.Equal(t, userID, *reg.StatusLastUpdatedBy)
		})
	}
}

func TestRegistrationService_RequestCancellation_ReasonLength(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	_, err := svc.RequestCancellation(context.Background(), testClaims(uuid.New()), "too short")
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "cancellation reason must be between 10 and 500 characters", ve.Message)
	policy.AssertNotCalled(t, "Require", mock.Anything, mock.Anything, mock.Anything)
	regRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRegistrationService_Delete_RemovesOnlyRegistration(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	policy := new(MockPolicy)
	svc := NewRegistrationService(regRepo, policy)

	adminID := uuid.New()
	regID := uuid.New()
	admin := &model.AppUser{ID: adminID, Role: model.RoleAdmin}
	policy.On("Require", mock.Anything, mock.Anything, mock.Anything).Return(admin, nil)
	regRepo.On("FindByID", mock.Anything, regID).
		Return(&model.Registration{ID: regID, Status: model.StatusCancelled}, nil)
	regRepo.On("Delete", mock.Anything, regID).Return(nil)

	err := svc.Delete(context.Background(), testClaims(adminID), regID)

	assert.NoError(t, err)
	regRepo.AssertCalled(t, "Delete", mock.Anything, regID)
}
