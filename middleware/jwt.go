package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/config"
	"github.com/atlashq/atlas-project-service/utils"
)

// AuthMiddleware requires a valid bearer access token and injects the
// authenticated user id into the gin context.
func AuthMiddleware(config *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			utils.JSON401(c, "Authorization token is required")
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenStr, utils.TokenTypeAccess, config)
		if err != nil {
			utils.JSON401(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			utils.JSON401(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Next()
	}
}
