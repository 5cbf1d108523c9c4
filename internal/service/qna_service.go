package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

const (
	minQuestionLength = 10
	maxQuestionLength = 1000
	maxReplyLength    = 1000
)

// QnaService handles the public question board.
type QnaService interface {
	ListQuestions(ctx context.Context) ([]model.QnaQuestion, error)
	PostQuestion(ctx context.Context, claims *auth.Claims, text string) (*model.QnaQuestion, error)
	// PostReply stamps IsAdmin from the replier's resolved role at post time.
	PostReply(ctx context.Context, claims *auth.Claims, questionID uuid.UUID, text string) (*model.QnaReply, error)
	SetPinned(ctx context.Context, claims *auth.Claims, questionID uuid.UUID, pinned bool) error
}

type qnaService struct {
	qnaRepo repository.QnaRepository
	policy  authz.Policy
}

// NewQnaService creates a new Q&A service.
func NewQnaService(qnaRepo repository.QnaRepository, policy authz.Policy) QnaService {
	return &qnaService{qnaRepo: qnaRepo, policy: policy}
}

// ListQuestions returns the board, pinned first.
func (s *qnaService) ListQuestions(ctx context.Context) ([]model.QnaQuestion, error) {
	return s.qnaRepo.ListQuestions(ctx)
}

// PostQuestion creates a question authored by the verified caller.
func (s *qnaService) PostQuestion(ctx context.Context, claims *auth.Claims, text string) (*model.QnaQuestion, error) {
	text = strings.TrimSpace(text)
	if len(text) < minQuestionLength || len(text) > maxQuestionLength {
		return nil, apperrors.NewValidationError("question must be between 10 and 1000 characters")
	}

	user, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}

	question := &model.QnaQuestion{
		AuthorID:   user.ID,
		AuthorName: user.DisplayName,
		Text:       text,
	}
	if err := s.qnaRepo.CreateQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// PostReply creates a flat reply under a question.
func (s *qnaService) PostReply(ctx context.Context, claims *auth.Claims, questionID uuid.UUID, text string) (*model.QnaReply, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 || len(text) > maxReplyLength {
		return nil, apperrors.NewValidationError("reply must be between 1 and 1000 characters")
	}

	user, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin)
	if err != nil {
		return nil, err
	}

	if _, err := s.qnaRepo.FindQuestionByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	reply := &model.QnaReply{
		QuestionID: questionID,
		AuthorID:   user.ID,
		AuthorName: user.DisplayName,
		Text:       text,
		IsAdmin:    user.Role.IsStaff(),
	}
	if err := s.qnaRepo.CreateReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return reply, nil
}

// SetPinned pins or unpins a question on the board.
func (s *qnaService) SetPinned(ctx context.Context, claims *auth.Claims, questionID uuid.UUID, pinned bool) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return err
	}
	if _, err := s.qnaRepo.FindQuestionByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("find question: %w", err)
	}
	return s.qnaRepo.SetPinned(ctx, questionID, pinned)
}
