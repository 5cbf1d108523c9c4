package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ridereg/internal/errors"
	"ridereg/internal/service"
)

// QnaHandler handles the public question board.
type QnaHandler struct {
	qnaService service.QnaService
}

// NewQnaHandler creates a new Q&A handler.
func NewQnaHandler(qnaService service.QnaService) *QnaHandler {
	return &QnaHandler{qnaService: qnaService}
}

// PostQuestionRequest is a new question submission.
type PostQuestionRequest struct {
	Text string `json:"text" validate:"required"`
}

// PostReplyRequest is a reply submission.
type PostReplyRequest struct {
	Text string `json:"text" validate:"required"`
}

// List godoc
// @Summary List questions with replies, pinned first
// @Tags qna
// @Produce json
// @Success 200 {array} model.QnaQuestion
// @Router /qna [get]
func (h *QnaHandler) List(c echo.Context) error {
	questions, err := h.qnaService.ListQuestions(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, questions)
}

// PostQuestion creates a question authored by the caller.
func (h *QnaHandler) PostQuestion(c echo.Context) error {
	var req PostQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.qnaService.PostQuestion(c.Request().Context(), claimsFrom(c), req.Text)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, question)
}

// PostReply creates a reply under a question.
func (h *QnaHandler) PostReply(c echo.Context) error {
	questionID, err := parseQuestionID(c)
	if err != nil {
		return err
	}
	var req PostReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.qnaService.PostReply(c.Request().Context(), claimsFrom(c), questionID, req.Text)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, reply)
}

// Pin pins a question to the top of the board (admin).
func (h *QnaHandler) Pin(c echo.Context) error {
	return h.setPinned(c, true)
}

// Unpin removes a question's pin (admin).
func (h *QnaHandler) Unpin(c echo.Context) error {
	return h.setPinned(c, false)
}

func (h *QnaHandler) setPinned(c echo.Context, pinned bool) error {
	questionID, err := parseQuestionID(c)
	if err != nil {
		return err
	}
	if err := h.qnaService.SetPinned(c.Request().Context(), claimsFrom(c), questionID, pinned); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"pinned": pinned})
}

func parseQuestionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid question ID", Code: "INVALID_UUID"})
	}
	return id, nil
}
