package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content entities are admin-edited display documents. They share the same
// CRUD shape and have no relationship to the registration workflow beyond
// being read-only inputs to rendering.

// FAQ is a question/answer pair shown on the public event page.
type FAQ struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Question  string         `json:"question" gorm:"size:500;not null"`
	Answer    string         `json:"answer" gorm:"size:2000;not null"`
	SortIndex int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Offer is a promotional item (discount, partner deal) on the event page.
type Offer struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"size:2000"`
	ImageURL    string         `json:"image_url,omitempty" gorm:"size:512"`
	SortIndex   int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Organizer is a listed member of the organizing team.
type Organizer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Title     string         `json:"title" gorm:"size:255"`
	PhotoURL  string         `json:"photo_url,omitempty" gorm:"size:512"`
	Phone     string         `json:"phone,omitempty" gorm:"size:20"`
	SortIndex int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (o *Organizer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// LocationPartner is a venue or checkpoint partner along the route.
type LocationPartner struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Location  string         `json:"location" gorm:"size:500"`
	LogoURL   string         `json:"logo_url,omitempty" gorm:"size:512"`
	MapURL    string         `json:"map_url,omitempty" gorm:"size:512"`
	SortIndex int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *LocationPartner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ScheduleEvent is one item on the event-day timeline.
type ScheduleEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	StartsAt  time.Time      `json:"starts_at" gorm:"not null;index"`
	Location  string         `json:"location" gorm:"size:500"`
	Details   string         `json:"details" gorm:"size:2000"`
	SortIndex int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s *ScheduleEvent) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Announcement is a dated notice shown on the public page, newest first.
type Announcement struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Body      string         `json:"body" gorm:"size:4000;not null"`
	SortIndex int            `json:"sort_index" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
