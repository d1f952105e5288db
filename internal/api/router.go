package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"breakdesk-backend/config"
	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/mw"
	"breakdesk-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, svc *booking.Service) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, svc)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	api.Use(mw.Identity())

	agent := api.Group("/agent")
	{
		agent.GET("/dashboard", handler.GetDashboard)
		agent.POST("/template", handler.SelectTemplate)
		agent.DELETE("/template", handler.ChangeTemplate)
		agent.GET("/schedule", handler.GetSchedule)
		agent.POST("/confirm", handler.ConfirmBreaks)
	}

	admin := api.Group("/admin")
	admin.Use(mw.RequireRole(booking.RoleAdmin))
	{
		admin.POST("/templates", handler.CreateTemplate)
		admin.GET("/templates", handler.ListTemplates)
		admin.POST("/templates/shift", handler.ShiftTemplates)
		admin.GET("/templates/:name", handler.GetTemplate)
		admin.DELETE("/templates/:name", handler.DeleteTemplate)
		admin.PUT("/templates/:name/slots", handler.ReplaceSlots)
		admin.GET("/templates/:name/limits", handler.GetLimits)
		admin.PUT("/templates/:name/limits", handler.SetLimits)

		admin.GET("/active-templates", handler.GetActiveTemplates)
		admin.PUT("/active-templates", handler.SetActiveTemplates)

		admin.GET("/assignments/:agent", handler.GetAssignment)
		admin.PUT("/assignments/:agent", handler.SetAssignment)

		admin.GET("/bookings", caching, handler.GetBookings)
		admin.POST("/bookings/clear", handler.RequestClear)
		admin.POST("/bookings/clear/confirm", handler.ConfirmClear)
		admin.POST("/bookings/clear/cancel", handler.CancelClear)
	}

	return r
}
