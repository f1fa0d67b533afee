package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const ContextPrincipal = "principal"

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*access.Principal, error)
}

func AuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "invalid authorization header")
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, *principal)
		c.Next()
	}
}

// Principal returns the identity stored by AuthMiddleware.
func Principal(c *gin.Context) (access.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}
