package handlers

import (
	"context"
	"net/http"

	"canova-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuestionStore is the slice of the question repository this handler needs.
type QuestionStore interface {
	Create(ctx context.Context, q *models.Question) error
}

type QuestionHandler struct {
	questions QuestionStore
	log       *zap.Logger
}

func NewQuestionHandler(questions QuestionStore, log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, log: log}
}

type createQuestionRequest struct {
	FormID  string              `json:"formId"`
	PageID  string              `json:"pageId"`
	Type    models.QuestionType `json:"type"`
	Options []string            `json:"options"`
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}
	if req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageId is required"})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown question type"})
		return
	}
	if req.Type.HasOptions() {
		if len(req.Options) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least two options are required for this question type"})
			return
		}
	} else if len(req.Options) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "options are not allowed for this question type"})
		return
	}

	question := &models.Question{
		FormID:  req.FormID,
		PageID:  req.PageID,
		Type:    req.Type,
		Options: req.Options,
	}
	if err := h.questions.Create(c.Request.Context(), question); err != nil {
		h.log.Error("Failed to create question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, question)
}
