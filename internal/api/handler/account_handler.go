package handler

import (
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

// GetCapabilities 返回当前用户的角色与套餐，顺带把用户镜像进库
func (s *AccountHandler) GetCapabilities(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	if err := s.accountSvc.SyncUser(c.Request.Context(), userID, email); err != nil {
		log.WarnContext(c.Request.Context(), "sync user error", "user_id", userID, "err", err)
	}

	capabilities, err := s.accountSvc.GetCapabilities(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, capabilities)
}

// GetStats 管理端的账户统计
func (s *AccountHandler) GetStats(c *gin.Context) {
	stats, err := s.accountSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
