package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/mw"
)

// GetDashboard handles GET /api/agent/dashboard. Entering the dashboard
// runs the daily reconcile before reporting booking state.
func (h *Handler) GetDashboard(c *gin.Context) {
	state, err := h.svc.EnterDashboard(c.Request.Context(), c.GetString(mw.CtxAgentID), c.GetString(mw.CtxRole))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type selectTemplateRequest struct {
	Template string `json:"template" binding:"required"`
}

// SelectTemplate handles POST /api/agent/template.
func (h *Handler) SelectTemplate(c *gin.Context) {
	var req selectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "template is required"})
		return
	}
	if err := h.svc.SelectTemplate(c.Request.Context(), c.GetString(mw.CtxAgentID), req.Template); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeTemplate handles DELETE /api/agent/template, discarding the held
// choice along with any in-progress break selection.
func (h *Handler) ChangeTemplate(c *gin.Context) {
	h.svc.ChangeTemplate(c.GetString(mw.CtxAgentID))
	c.Status(http.StatusNoContent)
}

// GetSchedule handles GET /api/agent/schedule.
func (h *Handler) GetSchedule(c *gin.Context) {
	view, err := h.svc.Schedule(c.Request.Context(), c.GetString(mw.CtxAgentID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmBreaks handles POST /api/agent/confirm.
func (h *Handler) ConfirmBreaks(c *gin.Context) {
	var sel booking.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	b, err := h.svc.Confirm(c.Request.Context(), c.GetString(mw.CtxAgentID), c.GetString(mw.CtxRole), sel)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"date":      b.Date,
		"template":  b.TemplateName,
		"lunch":     sel.Lunch,
		"early_tea": sel.EarlyTea,
		"late_tea":  sel.LateTea,
		"booked_at": b.BookedAt(),
	})
}
