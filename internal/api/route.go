package api

import (
	"Folioforge/internal/api/middleware"
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 访客侧，无需登录
		publicGroup := apiGroup.Group("/public")
		{
			publicGroup.GET("/portfolios", group.PortfolioHandler.Search)
			publicGroup.GET("/portfolios/:slug", group.PortfolioHandler.GetPublic)
			publicGroup.POST("/portfolios/:slug/view", group.AnalyticsHandler.TrackView)
			publicGroup.POST("/portfolios/:slug/contact", group.ContactHandler.Submit)
		}

		// 支付回调走签名鉴权，不挂登录中间件
		apiGroup.POST("/payment/webhook", group.PaymentHandler.StripeWebhook)

		portfolioGroup := apiGroup.Group("/portfolios")
		portfolioGroup.Use(middleware.AuthMiddleware())
		{
			portfolioGroup.POST("", group.PortfolioHandler.Create)
			portfolioGroup.GET("", group.PortfolioHandler.List)
			portfolioGroup.GET("/slug/validate", group.PortfolioHandler.CheckSlug)
			portfolioGroup.GET("/:portfolio_id", group.PortfolioHandler.Get)
			portfolioGroup.PUT("/:portfolio_id", group.PortfolioHandler.Update)
			portfolioGroup.DELETE("/:portfolio_id", group.PortfolioHandler.Delete)
			portfolioGroup.POST("/:portfolio_id/duplicate", group.PortfolioHandler.Duplicate)
			portfolioGroup.POST("/:portfolio_id/publish", group.PortfolioHandler.Publish)
			portfolioGroup.POST("/:portfolio_id/unpublish", group.PortfolioHandler.Unpublish)
			portfolioGroup.POST("/:portfolio_id/archive", group.PortfolioHandler.Archive)
		}

		contactGroup := apiGroup.Group("/contacts")
		contactGroup.Use(middleware.AuthMiddleware())
		{
			contactGroup.GET("", group.ContactHandler.List)
			contactGroup.PUT("/:contact_id/status", group.ContactHandler.UpdateStatus)
			contactGroup.DELETE("/:contact_id", group.ContactHandler.Delete)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/overview", group.AnalyticsHandler.GetOverview)
			analyticsGroup.GET("/portfolios/:portfolio_id", group.AnalyticsHandler.GetSummary)
		}

		templateGroup := apiGroup.Group("/templates")
		templateGroup.Use(middleware.AuthMiddleware())
		{
			templateGroup.GET("", group.TemplateHandler.List)
			templateGroup.GET("/:template_id", group.TemplateHandler.Get)

			// 模板运营仅限管理员
			adminGroup := templateGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(group.AccountSvc, consts.RoleAdmin))
			{
				adminGroup.POST("", group.TemplateHandler.Create)
				adminGroup.PUT("/:template_id", group.TemplateHandler.Update)
				adminGroup.DELETE("/:template_id", group.TemplateHandler.Delete)
				adminGroup.POST("/:template_id/duplicate", group.TemplateHandler.Duplicate)
			}
		}

		accountGroup := apiGroup.Group("/account")
		accountGroup.Use(middleware.AuthMiddleware())
		{
			accountGroup.GET("/capabilities", group.AccountHandler.GetCapabilities)

			adminGroup := accountGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(group.AccountSvc, consts.RoleAdmin))
			{
				adminGroup.GET("/stats", group.AccountHandler.GetStats)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.DELETE("", group.MediaHandler.Delete)
		}

		aiGroup := apiGroup.Group("/ai")
		aiGroup.Use(middleware.AuthMiddleware())
		{
			aiGroup.POST("/bio", group.AIHandler.SuggestBio)
		}
	}

	return r
}
