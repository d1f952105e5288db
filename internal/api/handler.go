package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/model"
	"breakdesk-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	svc   *booking.Service
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *booking.Service) *Handler {
	return &Handler{
		store: s,
		svc:   svc,
	}
}

// abortWithError maps the booking error taxonomy onto HTTP statuses. Every
// taxonomy error is a user-recoverable rejection of the current action.
func abortWithError(c *gin.Context, err error) {
	var slotFull *model.SlotFullError
	var slotConflict *model.SlotConflictError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &slotFull),
		errors.As(err, &slotConflict),
		errors.Is(err, model.ErrDuplicateName),
		errors.Is(err, model.ErrLastTemplate),
		errors.Is(err, model.ErrAlreadyBooked):
		status = http.StatusConflict
	case errors.Is(err, model.ErrIncompleteSelection),
		errors.Is(err, model.ErrUnknownSlot),
		errors.Is(err, model.ErrNoTemplateSelected):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNoAssignedTemplate):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, model.ErrTemplateUnavailable),
		errors.Is(err, model.ErrNotPending):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
