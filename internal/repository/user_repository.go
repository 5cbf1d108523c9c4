package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/model"
)

// UserRepository defines profile persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.AppUser) error
	Update(ctx context.Context, user *model.AppUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AppUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AppUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithAccessRequests(ctx context.Context) ([]model.AppUser, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error
	// WithTransaction runs fn with repositories bound to one database transaction,
	// so profile and registration writes commit or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, regs RegistrationRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user profile.
func (r *userRepository) Create(ctx context.Context, user *model.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing profile.
func (r *userRepository) Update(ctx context.Context, user *model.AppUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a profile by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AppUser, error) {
	var user model.AppUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a profile by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.AppUser, error) {
	var user model.AppUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete soft-deletes a profile.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AppUser{}).Error
}

// ListWithAccessRequests lists profiles that have filed an organizer-access request.
func (r *userRepository) ListWithAccessRequests(ctx context.Context) ([]model.AppUser, error) {
	var users []model.AppUser
	if err := r.db.WithContext(ctx).
		Where("access_request IS NOT NULL").
		Order("updated_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole sets the role on a target profile.
func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error {
	return r.db.WithContext(ctx).Model(&model.AppUser{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// WithTransaction executes fn within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, regs RegistrationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &registrationRepository{db: tx})
	})
}
