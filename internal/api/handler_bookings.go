package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBookings handles GET /api/admin/bookings?date=YYYY-MM-DD, defaulting
// to the current civil date.
func (h *Handler) GetBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.svc.Today()
	}
	rows, err := h.svc.AdminBookings(c.Request.Context(), date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": rows})
}

type clearRequest struct {
	Date string `json:"date" binding:"required"`
}

// RequestClear handles POST /api/admin/bookings/clear, the first step of
// the two-step clear-all. Nothing is deleted yet.
func (h *Handler) RequestClear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	token, err := h.svc.RequestClearAll(req.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"confirm_token": token})
}

type confirmClearRequest struct {
	Date  string `json:"date" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// ConfirmClear handles POST /api/admin/bookings/clear/confirm.
func (h *Handler) ConfirmClear(c *gin.Context) {
	var req confirmClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date and token are required"})
		return
	}
	if err := h.svc.ConfirmClearAll(c.Request.Context(), req.Date, req.Token); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type cancelClearRequest struct {
	Token string `json:"token" binding:"required"`
}

// CancelClear handles POST /api/admin/bookings/clear/cancel.
func (h *Handler) CancelClear(c *gin.Context) {
	var req cancelClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	h.svc.CancelClearAll(req.Token)
	c.Status(http.StatusNoContent)
}
