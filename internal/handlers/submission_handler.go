package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopify-product-service/internal/models"
)

// SubmissionLister returns recent submission audit rows
type SubmissionLister interface {
	RecentSubmissions(ctx context.Context, store string, limit int) ([]models.ProductSubmission, error)
}

// SubmissionHandler exposes the submission audit trail
type SubmissionHandler struct {
	lister SubmissionLister
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(lister SubmissionLister) *SubmissionHandler {
	return &SubmissionHandler{lister: lister}
}

// List handles GET /api/v1/submissions?store=&limit=
func (h *SubmissionHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, models.Failed("limit must be a positive integer"))
		return
	}

	submissions, err := h.lister.RecentSubmissions(c.Request.Context(), c.Query("store"), limit)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStore) {
			c.JSON(http.StatusBadRequest, models.Failed(err.Error()))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.Failed(models.DefaultErrorMessage))
		return
	}

	c.JSON(http.StatusOK, models.Succeeded(submissions))
}
