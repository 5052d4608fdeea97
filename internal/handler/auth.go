package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnskie78/ccsa/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff account and issues a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	account, err := h.admins.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status := errStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("login failed for %s: %v", req.Username, err)
			c.JSON(status, gin.H{"error": "internal error"})
			return
		}
		c.JSON(status, gin.H{"error": "invalid credentials"})
		return
	}

	tokens, err := auth.Issue(account.ID, account.Username, string(account.Role), h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	if err := h.admins.SaveRefreshToken(c.Request.Context(), account.ID, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		log.Printf("save refresh token failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
		"user":          account,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token into a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	claims, err := auth.Parse(req.RefreshToken, h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	valid, err := h.admins.RefreshTokenValid(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Printf("refresh token lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token revoked or expired"})
		return
	}

	tokens, err := auth.Issue(claims.Subject, claims.Username, claims.Role, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	_ = h.admins.RevokeRefreshToken(c.Request.Context(), req.RefreshToken)
	if err := h.admins.SaveRefreshToken(c.Request.Context(), claims.Subject, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		log.Printf("save refresh token failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

// CurrentUser returns the account behind the request's token.
func (h *Handler) CurrentUser(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	account, err := h.admins.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		status := errStatus(err)
		if status == http.StatusNotFound {
			// Token outlived the account.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		log.Printf("current user lookup failed: %v", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// Logout revokes the presented refresh token.
func (h *Handler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		_ = h.admins.RevokeRefreshToken(c.Request.Context(), req.RefreshToken)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
