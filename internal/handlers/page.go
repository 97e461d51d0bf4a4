package handlers

import (
	"context"
	"net/http"

	"canova-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageStore is the slice of the page repository this handler needs.
type PageStore interface {
	AddNext(ctx context.Context, formID string) (*models.Page, error)
	ByFormOrdered(ctx context.Context, formID string) ([]models.Page, error)
}

type PageHandler struct {
	pages PageStore
	log   *zap.Logger
}

func NewPageHandler(pages PageStore, log *zap.Logger) *PageHandler {
	return &PageHandler{pages: pages, log: log}
}

type createPageRequest struct {
	FormID string `json:"formId"`
}

// Create appends the next page to a form. Page order is assigned by the
// store, keeping orders contiguous 1..N per form.
func (h *PageHandler) Create(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}

	page, err := h.pages.AddNext(c.Request.Context(), req.FormID)
	if err != nil {
		h.log.Error("Failed to add page", zap.Error(err), zap.String("form_id", req.FormID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, page)
}

// List returns a form's pages sorted by ascending order.
func (h *PageHandler) List(c *gin.Context) {
	formID := c.Param("formId")
	pages, err := h.pages.ByFormOrdered(c.Request.Context(), formID)
	if err != nil {
		h.log.Error("Failed to list pages", zap.Error(err), zap.String("form_id", formID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}
