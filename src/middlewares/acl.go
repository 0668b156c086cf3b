package middlewares

import (
	"net/http"
	"resort/src/types"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the closed role/permission matrix.
// AuthMiddleware must run first so the role is on the context.
func RequirePermission(p types.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := types.Role(ctx.GetString("role"))
		if !types.ValidRole(role) || !types.HasPermission(role, p) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}
}
