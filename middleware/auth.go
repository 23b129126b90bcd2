package middleware

import (
	"net/http"
	"strings"

	"mentorhub/models"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// ActorAuthMiddleware resolves the caller into an Actor from the bearer
// token's subject and role claims. Handlers pass the actor explicitly into
// every engine call; nothing downstream fetches it again.
func ActorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, role, err := utils.ExtractActorClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		actor := models.Actor{ID: sub, Role: models.Role(role)}
		if !models.ValidRole(actor.Role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role claim"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor placed by
// ActorAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
