package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnskie78/ccsa/internal/attendance"
)

type scanRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// Scan processes one QR scan: the decoded payload is the student business
// key. The scan service decides check-in vs check-out.
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id is required"})
		return
	}

	rec, err := h.scans.Scan(c.Request.Context(), req.StudentID)
	if err != nil {
		if attendance.IsRejection(err) {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		log.Printf("scan failed for %s: %v", req.StudentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scan processing failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": rec})
}

// RecentScans returns the bounded feed of the latest processed scans,
// newest first.
func (h *Handler) RecentScans(c *gin.Context) {
	feed := h.scans.Recent()
	if feed == nil {
		c.JSON(http.StatusOK, gin.H{"scans": []attendance.ScanEntry{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": feed.List()})
}
