package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnskie78/ccsa/internal/admin"
	"github.com/Johnskie78/ccsa/internal/auth"
)

// ListUsers returns all staff accounts; password hashes never serialize.
func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.admins.List(c.Request.Context())
	if err != nil {
		log.Printf("list accounts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if accounts == nil {
		accounts = []admin.Admin{}
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// CreateUser adds a staff account.
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	created, err := h.admins.Create(c.Request.Context(), admin.Admin{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Role:     admin.Role(req.Role),
	}, req.Password)
	if err != nil {
		h.userError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": created})
}

// GetUser returns one account.
func (h *Handler) GetUser(c *gin.Context) {
	account, err := h.admins.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.userError(c, err, "get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// UpdateUser rewrites an account; an empty password keeps the current one.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.admins.Update(c.Request.Context(), admin.Admin{
		ID:       c.Param("id"),
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Role:     admin.Role(req.Role),
	}, req.Password)
	if err != nil {
		h.userError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

// DeleteUser removes an account. Deleting the account behind the current
// token is refused so an install cannot lock itself out.
func (h *Handler) DeleteUser(c *gin.Context) {
	if claims, ok := auth.FromContext(c); ok && claims.Subject == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}
	if err := h.admins.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.userError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) userError(c *gin.Context, err error, op string) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("account %s failed: %v", op, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
