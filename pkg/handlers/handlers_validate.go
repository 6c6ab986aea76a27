package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
	"github.com/greenmartialarts/shopshift-api/pkg/schedule"
)

// ValidateInput pre-flights a schedule request: structural checks plus a
// dry-run generation reporting feasibility. Nothing is persisted.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee is required",
		})
		return
	}

	if len(input.OperatingHours) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "Operating hours are required",
		})
		return
	}

	seen := make(map[string]bool)
	for _, e := range input.Employees {
		if seen[e.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate employee ID: " + e.ID})
			return
		}
		seen[e.ID] = true
	}

	hours, err := input.Hours()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	employees, err := input.Roster()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	ws, err := schedule.Generate(hours, employees, input.Defaults)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count":   len(input.Employees),
			"assignment_count": len(ws.Assignments),
			"gap_count":        len(ws.Gaps),
			"shortfall_count":  len(ws.Shortfalls),
			"fully_covered":    ws.FullyCovered(),
		},
	})
}
