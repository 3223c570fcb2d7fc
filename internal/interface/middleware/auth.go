package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commercekit/auth-service/internal/application"
	"github.com/commercekit/auth-service/internal/domain/repository"
	"github.com/commercekit/auth-service/pkg/helpers"
	"github.com/commercekit/auth-service/pkg/response"
)

// Context keys populated by AuthenticateUser.
const (
	CtxUserKey     = "authUser"
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// One generic message for every authentication failure so callers cannot
// tell which check rejected them.
const authFailedMessage = "Authentication Invalid"

// AuthenticateUser is the two-tier request gate. The access-token cookie is
// checked first: a valid signature accepts the request with no database
// lookup. Otherwise the refresh-token cookie is verified and its opaque
// token looked up in the session store; a hit re-attaches fresh cookies
// (sliding access renewal). Anything else is a 401.
func AuthenticateUser(svc *application.Service, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if access, err := c.Cookie(helpers.AccessTokenCookie); err == nil && access != "" {
			if claims, err := svc.JWT.ParseAccessToken(access); err == nil {
				setUser(c, claims.User)
				c.Next()
				return
			}
		}

		refresh, err := c.Cookie(helpers.RefreshTokenCookie)
		if err != nil || refresh == "" {
			response.AbortError(c, http.StatusUnauthorized, authFailedMessage, nil)
			return
		}
		claims, err := svc.JWT.ParseRefreshToken(refresh)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, authFailedMessage, nil)
			return
		}

		session, err := svc.Sessions.GetByUserAndToken(c.Request.Context(), claims.User.UserID, claims.RefreshToken)
		if err != nil || !session.IsValid {
			if err != nil && !isNotFound(err) && svc.Logger != nil {
				svc.Logger.WithError(err).Warn("session lookup failed")
			}
			response.AbortError(c, http.StatusUnauthorized, authFailedMessage, nil)
			return
		}

		pair, err := svc.MintPair(claims.User, session.RefreshToken)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, authFailedMessage, nil)
			return
		}
		cookies.Attach(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

		setUser(c, claims.User)
		c.Next()
	}
}

func setUser(c *gin.Context, u helpers.TokenUser) {
	c.Set(CtxUserKey, u)
	c.Set(CtxUserIDKey, u.UserID)
	c.Set(CtxUserRoleKey, u.Role)
}

// UserFromContext returns the token user attached by AuthenticateUser.
func UserFromContext(c *gin.Context) (helpers.TokenUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return helpers.TokenUser{}, false
	}
	u, ok := v.(helpers.TokenUser)
	return u, ok
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
