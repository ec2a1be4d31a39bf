package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopify-product-service/internal/models"
	"shopify-product-service/internal/services"
)

// ActionDispatcher runs a product action
type ActionDispatcher interface {
	Dispatch(ctx context.Context, req *models.ActionRequest) models.Envelope
}

// ActionHandler serves the action endpoint used by the admin UI
type ActionHandler struct {
	dispatcher ActionDispatcher
}

// NewActionHandler creates a new action handler
func NewActionHandler(dispatcher ActionDispatcher) *ActionHandler {
	return &ActionHandler{dispatcher: dispatcher}
}

// Handle handles POST /api/v1/actions.
// Malformed requests get 400, every dispatched action gets 200 with the
// outcome in the envelope.
func (h *ActionHandler) Handle(c *gin.Context) {
	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failed("Invalid request body: "+err.Error()))
		return
	}
	if err := services.ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failed(err.Error()))
		return
	}

	c.JSON(http.StatusOK, h.dispatcher.Dispatch(c.Request.Context(), &req))
}
