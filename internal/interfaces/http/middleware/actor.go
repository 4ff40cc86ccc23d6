package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// Context keys set by Actor
const (
	ActorKey = "actor"
	RoleKey  = "actor_role"
)

// Known roles. The API trusts the reverse proxy in front of it to
// authenticate users and forward identity headers.
const (
	RoleAccountant = "comptable"
	RoleDirector   = "directeur"
	RoleAuditor    = "auditeur"
)

// Actor reads the authenticated user from the X-User-Name and
// X-User-Role headers and rejects requests without an identity. Every
// write the audit trail records is attributed to this actor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader("X-User-Name"))
		if name == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("MISSING_ACTOR", "X-User-Name header is required"))
			return
		}
		role := strings.TrimSpace(c.GetHeader("X-User-Role"))
		if role == "" {
			role = RoleAccountant
		}

		c.Set(ActorKey, name)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireRole guards an endpoint: only the listed roles may pass
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Your role does not permit this operation"))
			return
		}
		c.Next()
	}
}

// GetActor returns the actor name set by Actor
func GetActor(c *gin.Context) string {
	return c.GetString(ActorKey)
}

// GetRole returns the actor role set by Actor
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}
