package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/auth"
)

// AuditController exposes the activity log for the logged-in user.
type AuditController struct {
	auditor *audit.Service
}

// NewAuditController creates a new AuditController.
func NewAuditController(auditor *audit.Service) *AuditController {
	return &AuditController{auditor: auditor}
}

// GetEvents returns the user's most recent audit events, newest first.
// The optional limit query parameter caps the result (default 50).
func (ac *AuditController) GetEvents(c *gin.Context) {
	userID := auth.GetUserID(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	events, err := ac.auditor.GetEvents(userID, limit)
	if err != nil {
		respondInternalError(c, err, "get audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
