package middlewares

import (
	"net/http"
	"strings"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and places the claims into the
// request context, where the tenant guard picks up the business id.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		if _, found, _ := config.GetRedisValue("blacklist:" + token); found {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		validate, err := utils.JwtValidate(token)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok || claims.BusinessId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUserIdInContext(ctx, claims.UserID)
		ctx = utils.SetUserTypeInContext(ctx, claims.UserType)
		ctx = utils.SetBusinessIdInContext(ctx, claims.BusinessId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
