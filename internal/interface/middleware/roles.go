package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commercekit/auth-service/internal/domain/entity"
	"github.com/commercekit/auth-service/pkg/response"
)

// AuthorizePermissions gates a route to the given roles. It expects
// AuthenticateUser to have run first. Roles are the closed entity.Role enum,
// not free-form strings.
func AuthorizePermissions(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		if r.Valid() {
			allowed[r] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		u, ok := UserFromContext(c)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, authFailedMessage, nil)
			return
		}
		if _, ok := allowed[entity.Role(u.Role)]; !ok {
			response.AbortError(c, http.StatusForbidden, "Not authorized to access this route", nil)
			return
		}
		c.Next()
	}
}
