package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/breaktime"
	"breakdesk-backend/internal/model"
)

// templateResponse is the API shape of a template with its slot lists.
type templateResponse struct {
	Name     string   `json:"name"`
	Lunch    []string `json:"lunch"`
	EarlyTea []string `json:"early_tea"`
	LateTea  []string `json:"late_tea"`
}

func toTemplateResponse(t *model.Template) templateResponse {
	return templateResponse{
		Name:     t.Name,
		Lunch:    t.SlotTimes(string(breaktime.Lunch)),
		EarlyTea: t.SlotTimes(string(breaktime.EarlyTea)),
		LateTea:  t.SlotTimes(string(breaktime.LateTea)),
	}
}

type createTemplateRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTemplate handles POST /api/admin/templates. New templates are
// seeded with the default slot lists; the admin edits them afterwards.
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	tpl, err := h.store.CreateTemplate(c.Request.Context(), req.Name, booking.DefaultTemplateSlots())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTemplateResponse(tpl))
}

// ListTemplates handles GET /api/admin/templates.
func (h *Handler) ListTemplates(c *gin.Context) {
	tpls, err := h.store.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]templateResponse, len(tpls))
	for i := range tpls {
		out[i] = toTemplateResponse(&tpls[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetTemplate handles GET /api/admin/templates/:name.
func (h *Handler) GetTemplate(c *gin.Context) {
	tpl, err := h.store.GetTemplate(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

type replaceSlotsRequest struct {
	Lunch    string `json:"lunch"`
	EarlyTea string `json:"early_tea"`
	LateTea  string `json:"late_tea"`
}

// ReplaceSlots handles PUT /api/admin/templates/:name/slots. Slot lists are
// newline-separated, matching how admins edit them; blank lines are
// stripped and order is preserved.
func (h *Handler) ReplaceSlots(c *gin.Context) {
	var req replaceSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	slots := map[breaktime.Kind][]string{
		breaktime.Lunch:    splitLines(req.Lunch),
		breaktime.EarlyTea: splitLines(req.EarlyTea),
		breaktime.LateTea:  splitLines(req.LateTea),
	}
	if err := h.store.ReplaceSlots(c.Request.Context(), c.Param("name"), slots); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// DeleteTemplate handles DELETE /api/admin/templates/:name.
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.store.DeleteTemplate(c.Request.Context(), c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type shiftRequest struct {
	Hours int `json:"hours" binding:"required"`
}

// ShiftTemplates handles POST /api/admin/templates/shift: adds or subtracts
// N hours from every slot of every template.
func (h *Handler) ShiftTemplates(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "hours is required and must be non-zero"})
		return
	}
	if err := h.store.ShiftAllSlots(c.Request.Context(), req.Hours); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type limitEntry struct {
	Kind        breaktime.Kind `json:"kind" binding:"required"`
	Slot        string         `json:"slot" binding:"required"`
	MaxBookings int            `json:"max_bookings" binding:"required,min=1"`
}

type setLimitsRequest struct {
	Limits []limitEntry `json:"limits" binding:"required,dive"`
}

// SetLimits handles PUT /api/admin/templates/:name/limits.
func (h *Handler) SetLimits(c *gin.Context) {
	var req setLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name := c.Param("name")
	for _, entry := range req.Limits {
		if !entry.Kind.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown break kind " + string(entry.Kind)})
			return
		}
		if err := h.store.SetLimit(c.Request.Context(), name, entry.Kind, entry.Slot, entry.MaxBookings); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// GetLimits handles GET /api/admin/templates/:name/limits. The effective
// limit for every slot is returned, defaults included.
func (h *Handler) GetLimits(c *gin.Context) {
	name := c.Param("name")
	tpl, err := h.store.GetTemplate(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]limitEntry, 0, len(tpl.Slots))
	for _, kind := range breaktime.Kinds() {
		for _, t := range tpl.SlotTimes(string(kind)) {
			limit, err := h.store.SlotLimit(c.Request.Context(), name, kind, t)
			if err != nil {
				abortWithError(c, err)
				return
			}
			out = append(out, limitEntry{Kind: kind, Slot: t, MaxBookings: limit})
		}
	}
	c.JSON(http.StatusOK, gin.H{"limits": out})
}

type setActiveRequest struct {
	Active []string `json:"active"`
}

// SetActiveTemplates handles PUT /api/admin/active-templates, replacing the
// set of templates agents may book from.
func (h *Handler) SetActiveTemplates(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	wanted := make(map[string]bool, len(req.Active))
	for _, n := range req.Active {
		wanted[n] = true
	}
	tpls, err := h.store.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	for i := range tpls {
		if err := h.store.SetTemplateActive(c.Request.Context(), tpls[i].Name, wanted[tpls[i].Name]); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// GetActiveTemplates handles GET /api/admin/active-templates.
func (h *Handler) GetActiveTemplates(c *gin.Context) {
	active, err := h.store.ActiveTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

type setAssignmentRequest struct {
	Templates []string `json:"templates"`
}

// SetAssignment handles PUT /api/admin/assignments/:agent.
func (h *Handler) SetAssignment(c *gin.Context) {
	var req setAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.store.SetAssignedTemplates(c.Request.Context(), c.Param("agent"), req.Templates); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAssignment handles GET /api/admin/assignments/:agent.
func (h *Handler) GetAssignment(c *gin.Context) {
	names, err := h.store.AssignedTemplates(c.Request.Context(), c.Param("agent"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": names})
}
