package middleware

import (
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户在身份提供商侧是否拥有指定角色之一
func CheckRoles(accountSvc service.AccountService, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		capabilities, err := accountSvc.GetCapabilities(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		hasPermission := false
		for _, required := range requiredRoles {
			if capabilities.Role == required {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
