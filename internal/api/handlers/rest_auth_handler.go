package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/auth"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/tasks"
)

// RestAuthHandler handles account and session endpoints.
type RestAuthHandler struct {
	cfg         *config.Config
	userService services.IUserService
	taskClient  ITaskEnqueuer
}

// NewRestAuthHandler creates a new RestAuthHandler.
func NewRestAuthHandler(cfg *config.Config, userService services.IUserService, taskClient ITaskEnqueuer) *RestAuthHandler {
	return &RestAuthHandler{cfg: cfg, userService: userService, taskClient: taskClient}
}

// CredentialsRequest is the signup/login payload.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignUp handles POST /v1/auth/signup.
func (h *RestAuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup payload: " + err.Error()})
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.IsAdmin, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login handles POST /v1/auth/login.
func (h *RestAuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload: " + err.Error()})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.IsAdmin, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// OAuthSignIn handles POST /v1/auth/oauth/:provider. Social sign-in is not
// wired to any provider yet; the endpoint exists so clients get a stable
// answer instead of a 404.
func (h *RestAuthHandler) OAuthSignIn(c *gin.Context) {
	provider := c.Param("provider")
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": fmt.Sprintf("Sign-in with %s is not yet available", provider),
	})
}

// ForgotPasswordRequest carries the account email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /v1/auth/forgot-password. The response is the
// same whether or not the account exists.
func (h *RestAuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	user, err := h.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}
		// Unknown address: same response, no token minted.
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
		return
	}

	token, err := h.userService.CreateResetToken(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	if h.taskClient != nil {
		task, err := tasks.NewEmailDeliveryTask(user.Email, tasks.TemplatePasswordReset, map[string]interface{}{
			"token":       token,
			"ttl_minutes": int(h.cfg.ResetTokenTTL.Minutes()),
		})
		if err == nil {
			if _, err := h.taskClient.Enqueue(task); err != nil {
				log.Printf("Could not enqueue password reset email for %s: %v", user.Email, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
}

// ResetPasswordRequest carries a reset token and the new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword handles POST /v1/auth/reset-password.
func (h *RestAuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
