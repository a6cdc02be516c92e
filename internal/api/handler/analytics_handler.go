package handler

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
	}
}

// TrackView 公开页主动上报一次浏览，可携带来源
func (s *AnalyticsHandler) TrackView(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.TrackViewDTO
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, err)
		return
	}

	err := s.analyticsSvc.TrackView(c.Request.Context(), slug, c.ClientIP(),
		c.Request.UserAgent(), req.Referrer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetOverview 账号名下全部作品集的访问总览
func (s *AnalyticsHandler) GetOverview(c *gin.Context) {
	userID := c.GetString("user_id")

	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	overview, err := s.analyticsSvc.GetOverview(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

// GetSummary 作品集主人查看访问分析
func (s *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.AnalyticsQuery
	if err = c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	summary, err := s.analyticsSvc.GetSummary(c.Request.Context(), userID, portfolioID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
