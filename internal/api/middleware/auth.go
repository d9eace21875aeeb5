package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/auth"
)

const actorKey = "actor"

// Identity resolves the bearer token to a request identity. A missing
// or unverifiable token degrades to the anonymous identity rather than
// failing the request: anonymous callers may still read public
// resources. Write routes layer RequireAuthenticated / RequireAdmin on
// top.
func Identity(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.Actor{}

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := tokens.Parse(parts[1]); err == nil {
					actor = auth.ActorFromClaims(claims)
				}
			}
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the identity set by Identity; anonymous
// when the middleware did not run.
func ActorFromContext(c *gin.Context) auth.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(auth.Actor); ok {
			return actor
		}
	}
	return auth.Actor{}
}

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorFromContext(c).Anonymous() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor.Anonymous() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
