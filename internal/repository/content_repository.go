package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/model"
)

// ContentRepository is the shared CRUD surface for the look-alike content
// collections (FAQs, offers, organizers, partners, schedule, announcements).
// Each collection gets its own typed instance so handlers stay explicit about
// which table they touch.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contentRepository[T any] struct {
	db    *gorm.DB
	order string
}

// NewFAQRepository creates the FAQ collection repository.
func NewFAQRepository(db *gorm.DB) ContentRepository[model.FAQ] {
	return &contentRepository[model.FAQ]{db: db, order: "sort_index ASC, created_at ASC"}
}

// NewOfferRepository creates the offers collection repository.
func NewOfferRepository(db *gorm.DB) ContentRepository[model.Offer] {
	return &contentRepository[model.Offer]{db: db, order: "sort_index ASC, created_at ASC"}
}

// NewOrganizerRepository creates the organizers collection repository.
func NewOrganizerRepository(db *gorm.DB) ContentRepository[model.Organizer] {
	return &contentRepository[model.Organizer]{db: db, order: "sort_index ASC, created_at ASC"}
}

// NewPartnerRepository creates the location-partners collection repository.
func NewPartnerRepository(db *gorm.DB) ContentRepository[model.LocationPartner] {
	return &contentRepository[model.LocationPartner]{db: db, order: "sort_index ASC, created_at ASC"}
}

// NewScheduleRepository creates the schedule collection repository.
func NewScheduleRepository(db *gorm.DB) ContentRepository[model.ScheduleEvent] {
	return &contentRepository[model.ScheduleEvent]{db: db, order: "starts_at ASC, sort_index ASC"}
}

// NewAnnouncementRepository creates the announcements collection repository.
func NewAnnouncementRepository(db *gorm.DB) ContentRepository[model.Announcement] {
	return &contentRepository[model.Announcement]{db: db, order: "created_at DESC"}
}

func (r *contentRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *contentRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order(r.order).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var item T
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&item).Error
}
