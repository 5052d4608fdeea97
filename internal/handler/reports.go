package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Johnskie78/ccsa/internal/attendance"
)

type dailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyReport returns, for each day in the range, the number of distinct
// students who checked in, plus range totals.
func (h *Handler) DailyReport(c *gin.Context) {
	to := c.Query("to")
	if to == "" {
		to = h.today()
	}
	from := c.Query("from")
	if from == "" {
		// Default window matches the reports view: the last 7 days.
		end, err := time.ParseInLocation(attendance.DateLayout, to, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		from = end.AddDate(0, 0, -6).Format(attendance.DateLayout)
	}
	start, err := time.ParseInLocation(attendance.DateLayout, from, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	end, err := time.ParseInLocation(attendance.DateLayout, to, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	records, err := h.records.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		log.Printf("report query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	counts := attendance.UniqueCheckInCounts(records)

	var daily []dailyCount
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(attendance.DateLayout)
		daily = append(daily, dailyCount{Date: key, Count: counts[key]})
	}

	totalCheckIns := 0
	for _, r := range records {
		if r.Type == attendance.TypeIn {
			totalCheckIns++
		}
	}
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		log.Printf("report students query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":           from,
		"to":             to,
		"daily":          daily,
		"total_checkins": totalCheckIns,
		"total_students": len(students),
		"active_today":   counts[h.today()],
	})
}
