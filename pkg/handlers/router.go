package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/greenmartialarts/shopshift-api/pkg/mw"
)

// RouterConfig tunes the optional middleware on the public surface.
type RouterConfig struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter wires all routes onto a gin engine. Both the server binary and
// the serverless entrypoint use it so the surfaces cannot drift apart.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.RateLimitPerSec > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = int(cfg.RateLimitPerSec) + 1
		}
		r.Use(mw.RateLimit(rate.Limit(cfg.RateLimitPerSec), burst))
	}
	if cfg.CacheTTL > 0 {
		store := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
		r.Use(mw.CacheGET(store, cfg.CacheTTL))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ShopShift Scheduling API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.GET("/schedules/:shopID", h.ListShopSchedules)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule", h.GenerateSchedule)
		api.POST("/schedule/csv", h.ScheduleCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
		api.POST("/punch-token", h.PunchToken)
	}

	// The QR scanner posts here with only the embedded token.
	r.POST("/punch", h.Punch)

	return r
}
