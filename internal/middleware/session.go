package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/apierror"
	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/model"
)

const ActorKey = "actor"

// RequireSession resolves the persisted session user and stores it in the
// context. Protected routes reject requests while nobody is logged in.
func RequireSession(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Current()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação necessária"))
			return
		}
		c.Set(ActorKey, user)
		c.Next()
	}
}

// RequireCap rejects requests whose session user lacks the capability. The
// same check runs again inside the ledger engine; this gate only exists to
// answer early with a clean 403.
func RequireCap(cap model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil || !actor.Role.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permissão insuficiente"))
			return
		}
		c.Next()
	}
}

// GetActor retrieves the typed session user from the Gin context.
func GetActor(c *gin.Context) *model.User {
	v, ok := c.Get(ActorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*model.User)
	return actor
}
