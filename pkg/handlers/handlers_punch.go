package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenmartialarts/shopshift-api/pkg/auth"
	"github.com/greenmartialarts/shopshift-api/pkg/database"
)

const defaultPunchTokenTTL = 15 * time.Minute

// PunchToken issues a short-lived token for an employee's punch QR code.
// API-key protected: only the shop's own integration can mint these.
func (h *Handler) PunchToken(c *gin.Context) {
	var req struct {
		ShopID     string `json:"shop_id"`
		EmployeeID string `json:"employee_id"`
		TTLMinutes int    `json:"ttl_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ShopID == "" || req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id and employee_id are required"})
		return
	}

	ttl := defaultPunchTokenTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	token, err := auth.CreatePunchToken(req.ShopID, req.EmployeeID, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create punch token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": time.Now().Add(ttl).UTC(),
	})
}

// Punch verifies a punch token and records a clock-in or clock-out event.
// Public: the QR scanner posts here without an API key.
func (h *Handler) Punch(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
		Kind  string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind != "in" && req.Kind != "out" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be \"in\" or \"out\""})
		return
	}

	claims, err := auth.VerifyPunchToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid punch token"})
		return
	}

	event := database.PunchEvent{
		ShopID:     claims.ShopID,
		EmployeeID: claims.EmployeeID,
		Kind:       req.Kind,
		At:         time.Now().UTC(),
	}
	if err := h.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record punch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop_id":     event.ShopID,
		"employee_id": event.EmployeeID,
		"kind":        event.Kind,
		"at":          event.At,
	})
}
