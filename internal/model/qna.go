package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QnaQuestion is a public question posted by an authenticated user.
type QnaQuestion struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	AuthorID   uuid.UUID      `json:"author_id" gorm:"type:char(36);not null;index"`
	AuthorName string         `json:"author_name" gorm:"size:255;not null"`
	Text       string         `json:"text" gorm:"size:1000;not null"`
	Pinned     bool           `json:"pinned" gorm:"default:false;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Replies []QnaReply `json:"replies,omitempty" gorm:"foreignKey:QuestionID"`
}

// BeforeCreate sets UUID before creating the record.
func (q *QnaQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QnaReply is a flat (one level deep) reply to a question. IsAdmin reflects
// the replier's resolved role at post time and is not re-derived later.
type QnaReply struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	QuestionID uuid.UUID      `json:"question_id" gorm:"type:char(36);not null;index"`
	AuthorID   uuid.UUID      `json:"author_id" gorm:"type:char(36);not null"`
	AuthorName string         `json:"author_name" gorm:"size:255;not null"`
	Text       string         `json:"text" gorm:"size:1000;not null"`
	IsAdmin    bool           `json:"is_admin" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (r *QnaReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
