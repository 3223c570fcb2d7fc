package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commercekit/auth-service/internal/application"
	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/internal/domain/repository"
	"github.com/commercekit/auth-service/internal/interface/middleware"
	"github.com/commercekit/auth-service/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func profileJSON(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"is_verified": u.IsVerified,
		"verified_at": u.VerifiedAt,
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}
}

// Me GET /api/v1/users/me (auth-gated)
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "profile", nil)
}

// Get GET /api/v1/users/:id (admin only)
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Error(c, http.StatusInternalServerError, "get user failed", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "user", nil)
}
