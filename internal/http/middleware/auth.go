package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/domain"
)

const (
	actorKey = "actor"
	roleKey  = "userRole"
)

// Authenticator turns a bearer token into the acting admin.
type Authenticator interface {
	Authenticate(token string) (domain.RequestContext, error)
}

// Auth resolves the bearer token when one is sent. With required set, a
// missing or invalid token ends the request with 401; otherwise the request
// continues anonymously.
func Auth(authn Authenticator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				abortUnauthorized(c, "missing bearer token")
				return
			}
			c.Next()
			return
		}
		rc, err := authn.Authenticate(token)
		if err != nil {
			if required {
				abortUnauthorized(c, err.Error())
				return
			}
			c.Next()
			return
		}
		c.Set(actorKey, rc)
		c.Set(roleKey, rc.Role)
		c.Next()
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) string {
	return bearer(c.GetHeader("Authorization"))
}

func bearer(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}

// Actor returns the authenticated admin, or the zero context (recorded as
// "system") for anonymous calls.
func Actor(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(actorKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{}
}
