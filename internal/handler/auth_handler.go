package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowhive/knowhive/internal/middleware"
	"github.com/knowhive/knowhive/internal/service"
	"github.com/knowhive/knowhive/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Gender   string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Status is the public liveness check for the auth group.
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"test": "Auth is being tested"})
}

// Register creates a user. Duplicate emails are rejected with a
// field-named error. The stored record (with the hashed password) is
// echoed back per the wire contract.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password, req.Gender)
	if err != nil {
		if err == service.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"emailerror": "Email is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and returns a signed bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"emailerror": "User not found with this email"})
		case service.ErrWrongPassword:
			c.JSON(http.StatusBadRequest, gin.H{"passworderror": "Password is not correct"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   "Bearer " + token,
	})
}

// CurrentUser echoes the identity the token resolved to.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"gender":     user.Gender,
		"profilepic": user.Avatar,
	})
}
