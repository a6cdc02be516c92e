package handler

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateSvc service.TemplateService
}

func NewTemplateHandler(templateSvc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateSvc: templateSvc,
	}
}

// List 模板列表，所有登录用户可见
func (s *TemplateHandler) List(c *gin.Context) {
	var query dto.TemplateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	templates, err := s.templateSvc.GetTemplates(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, templates)
}

func (s *TemplateHandler) Get(c *gin.Context) {
	templateID, err := parseIDParam(c, "template_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	template, err := s.templateSvc.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, template)
}

func (s *TemplateHandler) Create(c *gin.Context) {
	var req dto.TemplateBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	template, err := s.templateSvc.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, template)
}

func (s *TemplateHandler) Update(c *gin.Context) {
	templateID, err := parseIDParam(c, "template_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TemplateBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	template, err := s.templateSvc.UpdateTemplate(c.Request.Context(), templateID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, template)
}

func (s *TemplateHandler) Delete(c *gin.Context) {
	templateID, err := parseIDParam(c, "template_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.templateSvc.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *TemplateHandler) Duplicate(c *gin.Context) {
	templateID, err := parseIDParam(c, "template_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	template, err := s.templateSvc.DuplicateTemplate(c.Request.Context(), templateID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, template)
}
