package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/commercekit/auth-service/internal/container"
	"github.com/commercekit/auth-service/internal/domain/entity"
	handlers "github.com/commercekit/auth-service/internal/interface/http"
	"github.com/commercekit/auth-service/internal/interface/middleware"
)

// UserModule exposes profile routes behind the authentication gate.
// GET /users/me is available to any authenticated user; GET /users/:id is
// admin only.
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, gate gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Gate: gate}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Gate)
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.GET("/users/:id", middleware.AuthorizePermissions(entity.RoleAdmin), m.Handler.Get)
	}
}
