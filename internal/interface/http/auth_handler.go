package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commercekit/auth-service/internal/application"
	"github.com/commercekit/auth-service/internal/interface/middleware"
	"github.com/commercekit/auth-service/pkg/helpers"
	"github.com/commercekit/auth-service/pkg/response"
	"github.com/commercekit/auth-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyEmailRequest struct {
	Email             string `json:"email" binding:"required,email"`
	VerificationToken string `json:"verification_token" binding:"required"`
}

type forgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "Email already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	response.Success[any](c, http.StatusCreated, nil,
		"Success! Please check your email to verify account", nil)
}

// VerifyEmail POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Email, req.VerificationToken); err != nil {
		if errors.Is(err, application.ErrVerificationFailed) {
			response.Error(c, http.StatusUnauthorized, "Email verification failed", nil)
			return
		}
		h.Logger.WithError(err).Error("verify email failed")
		response.Error(c, http.StatusInternalServerError, "verification failed", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "Email verified successfully", nil)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, pair, err := h.Svc.Login(c.Request.Context(), application.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) || errors.Is(err, application.ErrEmailNotVerified) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	h.Cookies.Attach(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	// Only the minimal projection goes in the body; tokens travel in cookies.
	response.Success(c, http.StatusOK, gin.H{"user": user}, "login successful", nil)
}

// Logout DELETE /api/v1/auth/logout (auth-gated)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("logout failed")
		response.Error(c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "User logged out", nil)
}

// ForgetPassword POST /api/v1/auth/forget-password
// Replies with the same success-shaped message whether or not the email
// exists, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req forgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgetPassword(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Error("forget password failed")
		response.Error(c, http.StatusInternalServerError, "forget password failed", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil,
		"Please check your email for reset password link", nil)
}

// ResetPassword POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.Token, req.Password); err != nil {
		if errors.Is(err, application.ErrResetFailed) {
			response.Error(c, http.StatusUnauthorized, "Reset password failed", nil)
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Error(c, http.StatusInternalServerError, "reset password failed", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "Password reset successfully", nil)
}
