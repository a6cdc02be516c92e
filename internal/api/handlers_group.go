package api

import (
	"Folioforge/internal/api/handler"
	"Folioforge/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PortfolioHandler *handler.PortfolioHandler
	TemplateHandler  *handler.TemplateHandler
	ContactHandler   *handler.ContactHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AccountHandler   *handler.AccountHandler
	PaymentHandler   *handler.PaymentHandler
	MediaHandler     *handler.MediaHandler
	AIHandler        *handler.AIHandler

	// AccountSvc 供角色校验中间件复用能力查询
	AccountSvc service.AccountService
}
