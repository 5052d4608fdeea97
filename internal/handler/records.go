package handler

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Johnskie78/ccsa/internal/attendance"
	"github.com/Johnskie78/ccsa/internal/export"
	"github.com/Johnskie78/ccsa/internal/student"
)

// ListRecords returns time records, newest first, filtered by date and
// student id when given.
func (h *Handler) ListRecords(c *gin.Context) {
	limit, offset := 200, 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	records, err := h.records.List(c.Request.Context(), c.Query("date"), c.Query("studentId"), limit, offset)
	if err != nil {
		log.Printf("list records failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if records == nil {
		records = []attendance.TimeRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type recordRequest struct {
	StudentID string    `json:"student_id" binding:"required"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Type      string    `json:"type" binding:"required"`
}

// CreateRecord is the manual admin entry path; scans go through POST /scan.
func (h *Handler) CreateRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec := attendance.TimeRecord{
		StudentID: req.StudentID,
		Timestamp: req.Timestamp,
		Type:      attendance.RecordType(req.Type),
		Date:      attendance.DateOf(req.Timestamp, h.loc),
	}
	if err := rec.Validate(h.loc); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	saved, err := h.records.Insert(c.Request.Context(), rec)
	if err != nil {
		log.Printf("create record failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": saved})
}

// GetRecord returns a record by id.
func (h *Handler) GetRecord(c *gin.Context) {
	rec, err := h.records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err, "get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// UpdateRecord rewrites a record's timestamp and type. The date is
// re-derived so the date/timestamp invariant holds after the edit.
func (h *Handler) UpdateRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec := attendance.TimeRecord{
		ID:        c.Param("id"),
		StudentID: req.StudentID,
		Timestamp: req.Timestamp,
		Type:      attendance.RecordType(req.Type),
		Date:      attendance.DateOf(req.Timestamp, h.loc),
	}
	if err := rec.Validate(h.loc); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	updated, err := h.records.Update(c.Request.Context(), rec)
	if err != nil {
		h.recordError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": updated})
}

// DeleteRecord removes a record by id.
func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.recordError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// summaryEntry is one student's paired sessions for the day view.
type summaryEntry struct {
	attendance.DaySummary
	Student     *student.Student `json:"student"`
	DisplayName string           `json:"display_name"`
}

// DaySummaries pairs each student's check-ins and check-outs for one day
// and computes total durations. Recomputed on every call from the current
// record state.
func (h *Handler) DaySummaries(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.today()
	}
	records, err := h.records.ListByDate(c.Request.Context(), date)
	if err != nil {
		log.Printf("day summary query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	summaries, err := attendance.BuildDayReport(records)
	if err != nil {
		h.recordError(c, err, "summary")
		return
	}

	studentsByKey, err := h.studentsByBusinessKey(c)
	if err != nil {
		return
	}
	entries := make([]summaryEntry, 0, len(summaries))
	for _, sum := range summaries {
		entry := summaryEntry{DaySummary: sum, DisplayName: "Unknown Student"}
		if s, ok := studentsByKey[sum.StudentID]; ok {
			stu := s
			entry.Student = &stu
			entry.DisplayName = s.DisplayName()
		}
		entries = append(entries, entry)
	}
	// Known students ordered by name; orphan records sort last.
	sort.SliceStable(entries, func(i, j int) bool {
		if (entries[i].Student == nil) != (entries[j].Student == nil) {
			return entries[j].Student == nil
		}
		if entries[i].Student == nil {
			return entries[i].StudentID < entries[j].StudentID
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	c.JSON(http.StatusOK, gin.H{"date": date, "summaries": entries})
}

// ExportRecords streams a CSV of records in a date range.
func (h *Handler) ExportRecords(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = h.today()
	}
	to := c.Query("to")
	if to == "" {
		to = from
	}
	records, err := h.records.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		log.Printf("export query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	studentsByKey, err := h.studentsByBusinessKey(c)
	if err != nil {
		return
	}
	csv, err := export.TimeRecordsCSV(records, studentsByKey, h.loc)
	if err != nil {
		log.Printf("csv render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(from, to)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// studentsByBusinessKey loads all students keyed by student_id. Writes the
// error response itself and returns a non-nil error on failure.
func (h *Handler) studentsByBusinessKey(c *gin.Context) (map[string]student.Student, error) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		log.Printf("students lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, err
	}
	byKey := make(map[string]student.Student, len(students))
	for _, s := range students {
		byKey[s.StudentID] = s
	}
	return byKey, nil
}

func (h *Handler) recordError(c *gin.Context, err error, op string) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("record %s failed: %v", op, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
