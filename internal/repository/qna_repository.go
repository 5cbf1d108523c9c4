package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/model"
)

// QnaRepository defines Q&A persistence operations.
type QnaRepository interface {
	CreateQuestion(ctx context.Context, q *model.QnaQuestion) error
	CreateReply(ctx context.Context, r *model.QnaReply) error
	FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.QnaQuestion, error)
	ListQuestions(ctx context.Context) ([]model.QnaQuestion, error)
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
}

type qnaRepository struct {
	db *gorm.DB
}

// NewQnaRepository creates a new Q&A repository.
func NewQnaRepository(db *gorm.DB) QnaRepository {
	return &qnaRepository{db: db}
}

func (r *qnaRepository) CreateQuestion(ctx context.Context, q *model.QnaQuestion) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *qnaRepository) CreateReply(ctx context.Context, reply *model.QnaReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *qnaRepository) FindQuestionByID(ctx context.Context, id uuid.UUID) (*model.QnaQuestion, error) {
	var q model.QnaQuestion
	if err := r.db.WithContext(ctx).Preload("Replies").Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns all questions with replies, pinned first then newest.
func (r *qnaRepository) ListQuestions(ctx context.Context) ([]model.QnaQuestion, error) {
	var questions []model.QnaQuestion
	if err := r.db.WithContext(ctx).Preload("Replies").
		Order("pinned DESC, created_at DESC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *qnaRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	return r.db.WithContext(ctx).Model(&model.QnaQuestion{}).
		Where("id = ?", id).
		Update("pinned", pinned).Error
}
