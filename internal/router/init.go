package router

import (
	"github.com/commercekit/auth-service/internal/application"
	"github.com/commercekit/auth-service/internal/container"
	pginfra "github.com/commercekit/auth-service/internal/infrastructure/postgres"
	handlers "github.com/commercekit/auth-service/internal/interface/http"
	"github.com/commercekit/auth-service/internal/interface/middleware"
	"github.com/commercekit/auth-service/internal/router/modules"
)

// InitModules builds the application modules from the container singletons
// and registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(container.GetPGPool())
	sessions := pginfra.NewSessionTokenRepository(container.GetPGPool())

	svc := application.NewService(
		users,
		sessions,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg,
	)

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	// One shared gate so every protected route uses the same two-tier check.
	gate := middleware.AuthenticateUser(svc, authHandler.Cookies)

	r.Add(modules.NewAuthModule(authHandler, gate))
	r.Add(modules.NewUserModule(userHandler, gate))
}
