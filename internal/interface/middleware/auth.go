package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
	"github.com/oksasatya/go-recipe-platform/pkg/response"
)

const (
	CtxIdentityKey = "identity"
	AuthHeader     = "Authorization"
)

// Auth gates protected routes. A missing token is rejected with 401, a token
// that fails verification with 403. On success the decoded identity is stored
// in the Gin context under CtxIdentityKey.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c.GetHeader(AuthHeader))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "access denied")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			if logger != nil {
				helpers.RequestLogger(logger, c).WithError(err).Debug("token rejected")
			}
			response.Abort(c, http.StatusForbidden, "invalid token")
			return
		}

		c.Set(CtxIdentityKey, claims.Identity())
		c.Next()
	}
}

// tokenFromHeader accepts both "Bearer <token>" and a bare token.
func tokenFromHeader(v string) string {
	v = strings.TrimSpace(v)
	const bearer = "bearer "
	if len(v) >= len(bearer) && strings.EqualFold(v[:len(bearer)], bearer) {
		return strings.TrimSpace(v[len(bearer):])
	}
	if strings.EqualFold(v, "bearer") {
		return ""
	}
	return v
}

// IdentityFrom returns the identity attached by Auth.
func IdentityFrom(c *gin.Context) (helpers.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return helpers.Identity{}, false
	}
	id, ok := v.(helpers.Identity)
	return id, ok
}
