package handler

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/service"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioSvc service.PortfolioService
	analyticsSvc service.AnalyticsService
}

func NewPortfolioHandler(portfolioSvc service.PortfolioService, analyticsSvc service.AnalyticsService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc: portfolioSvc,
		analyticsSvc: analyticsSvc,
	}
}

func (s *PortfolioHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.PortfolioBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	portfolio, err := s.portfolioSvc.CreatePortfolio(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, portfolio)
}

func (s *PortfolioHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	var query dto.PortfolioQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	portfolios, err := s.portfolioSvc.GetPortfolios(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, portfolios)
}

func (s *PortfolioHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	portfolio, err := s.portfolioSvc.GetPortfolio(c.Request.Context(), userID, portfolioID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, portfolio)
}

func (s *PortfolioHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PortfolioBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	portfolio, err := s.portfolioSvc.UpdatePortfolio(c.Request.Context(), userID, portfolioID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, portfolio)
}

func (s *PortfolioHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.portfolioSvc.DeletePortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PortfolioHandler) Duplicate(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	portfolio, err := s.portfolioSvc.DuplicatePortfolio(c.Request.Context(), userID, portfolioID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, portfolio)
}

func (s *PortfolioHandler) Publish(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.portfolioSvc.PublishPortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PortfolioHandler) Unpublish(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.portfolioSvc.UnpublishPortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PortfolioHandler) Archive(c *gin.Context) {
	userID := c.GetString("user_id")

	portfolioID, err := parseIDParam(c, "portfolio_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.portfolioSvc.ArchivePortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PortfolioHandler) CheckSlug(c *gin.Context) {
	var query dto.SlugCheckDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	availability, err := s.portfolioSvc.CheckSlug(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, availability)
}

// GetPublic 公开访问发布中的作品集，成功即记一次浏览
func (s *PortfolioHandler) GetPublic(c *gin.Context) {
	slug := c.Param("slug")

	portfolio, err := s.portfolioSvc.GetPublicPortfolio(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.analyticsSvc.TrackView(c.Request.Context(), slug, c.ClientIP(),
		c.Request.UserAgent(), c.GetHeader("Referer")); err != nil {
		log.WarnContext(c.Request.Context(), "track view error", "slug", slug, "err", err)
	}

	response.Success(c, portfolio)
}

// Search 公开的全文检索
func (s *PortfolioHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))

	results, err := s.portfolioSvc.SearchPublic(c.Request.Context(), keyword, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, results)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrParamInvalid
	}
	return uint64(id), nil
}
