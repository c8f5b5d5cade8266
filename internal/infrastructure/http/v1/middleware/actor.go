package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appctx "enercore/internal/core/context"
)

const (
	HeaderActorID    = "X-Actor-Id"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorRoles = "X-Actor-Roles"
)

// Actor middleware propagates the acting user from trusted gateway headers
// into the request context. Transition side effects (approved_by and the
// like) and the audit trail read the actor from there, never from payloads.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		if actorID == "" {
			c.Next()
			return
		}

		actor := &appctx.ActorContext{
			UserID: actorID,
			Email:  c.GetHeader(HeaderActorEmail),
		}

		if roles := c.GetHeader(HeaderActorRoles); roles != "" {
			for _, role := range strings.Split(roles, ",") {
				role = strings.TrimSpace(role)
				if role != "" {
					actor.Roles = append(actor.Roles, role)
					if role == "admin" {
						actor.IsAdmin = true
					}
				}
			}
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", actorID)

		c.Next()
	}
}
