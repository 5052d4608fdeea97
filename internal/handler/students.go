package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Johnskie78/ccsa/internal/student"
)

// ListStudents returns all students ordered by name.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		log.Printf("list students failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if students == nil {
		students = []student.Student{}
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

type studentRequest struct {
	StudentID  string `json:"student_id" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	YearLevel  string `json:"year_level" binding:"required"`
	Course     string `json:"course" binding:"required"`
	Status     string `json:"status"`
	PhotoURL   string `json:"photo_url"`
}

func (r studentRequest) toStudent() student.Student {
	return student.Student{
		StudentID:  r.StudentID,
		LastName:   r.LastName,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		YearLevel:  r.YearLevel,
		Course:     r.Course,
		Status:     student.Status(r.Status),
		PhotoURL:   r.PhotoURL,
	}
}

// CreateStudent registers a new student.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.students.Create(c.Request.Context(), req.toStudent())
	if err != nil {
		h.studentError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": created})
}

// GetStudent returns a student by internal id.
func (h *Handler) GetStudent(c *gin.Context) {
	s, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.studentError(c, err, "get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": s})
}

// GetStudentByStudentID returns a student by business key. The scan page
// uses this to show who was scanned.
func (h *Handler) GetStudentByStudentID(c *gin.Context) {
	s, err := h.students.GetByStudentID(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.studentError(c, err, "lookup")
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": s})
}

// UpdateStudent rewrites a student.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := req.toStudent()
	s.ID = c.Param("id")
	updated, err := h.students.Update(c.Request.Context(), s)
	if err != nil {
		h.studentError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": updated})
}

// DeleteStudent removes a student. Their time records remain and render as
// "Unknown Student".
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.studentError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UploadStudentPhoto stores a multipart photo on Cloudinary and records the
// hosted URL on the student.
func (h *Handler) UploadStudentPhoto(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}
	s, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.studentError(c, err, "photo")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
		return
	}

	result, err := h.cloud.Upload(data, header.Filename)
	if err != nil {
		log.Printf("photo upload failed for %s: %v", s.StudentID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo upload failed"})
		return
	}
	if err := h.students.SetPhotoURL(c.Request.Context(), s.ID, result.SecureURL); err != nil {
		h.studentError(c, err, "photo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": result.SecureURL})
}

// StudentQRCode renders the student's business key as a PNG QR code for
// printing on an ID badge.
func (h *Handler) StudentQRCode(c *gin.Context) {
	s, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.studentError(c, err, "qrcode")
		return
	}
	size := 256
	if v := c.Query("size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}
	png, err := qrcode.Encode(s.StudentID, qrcode.Medium, size)
	if err != nil {
		log.Printf("qr encode failed for %s: %v", s.StudentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr code generation failed"})
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+s.StudentID+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) studentError(c *gin.Context, err error, op string) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("student %s failed: %v", op, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
