package handler

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiSvc service.AIService
}

func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{
		aiSvc: aiSvc,
	}
}

// SuggestBio 根据职业与关键词生成简介候选
func (s *AIHandler) SuggestBio(c *gin.Context) {
	var req dto.BioSuggestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	suggestions, err := s.aiSvc.SuggestBio(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, suggestions)
}
