package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ingenio-api/internal/models"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

// RequireRoles lets the request through only when the bearer's rol is listed.
// It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
