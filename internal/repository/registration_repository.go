package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/model"
)

// RegistrationRepository defines registration persistence operations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	Update(ctx context.Context, reg *model.Registration) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	List(ctx context.Context, status model.RegistrationStatus) ([]model.Registration, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create creates a new registration.
func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// Update saves all fields of an existing registration.
func (r *registrationRepository) Update(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

// FindByID finds a registration by ID.
func (r *registrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns registrations, optionally filtered by status. An empty status
// returns everything, newest first.
func (r *registrationRepository) List(ctx context.Context, status model.RegistrationStatus) ([]model.Registration, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var regs []model.Registration
	if err := q.Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// Delete soft-deletes a registration. Profile deletion is a separate,
// independently invoked operation.
func (r *registrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Registration{}).Error
}

// CountByStatus returns registration counts grouped by status.
func (r *registrationRepository) CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int64, error) {
	type row struct {
		Status model.RegistrationStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.RegistrationStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
