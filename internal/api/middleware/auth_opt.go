package middleware

import (
	"Folioforge/internal/api/config"
	"Folioforge/internal/pkg/security"
	"context"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户 ID，失败或缺失则为空
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := security.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			c.Set("user_id", "")
			c.Next()
			return
		}

		claims, err := security.ValidateToken(config.Cfg.Auth.JWTSecret, tokenString)
		if err != nil {
			c.Set("user_id", "")
		} else {
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
