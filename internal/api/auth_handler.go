package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminAlreadyExists) {
			abortWithError(c, http.StatusConflict, "Admin with this email already exists")
			return
		}
		h.logger.Error("admin registration failed", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, admin, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("admin login failed", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

// Me returns the id of the authenticated admin, mainly for session checks
// from the panel frontend.
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, err := getAdminIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"adminId": adminID})
}
