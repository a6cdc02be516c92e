package handler

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactSvc service.ContactService
}

func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactSvc: contactSvc,
	}
}

// Submit 公开页访客留言，按来源 IP 限流
func (s *ContactHandler) Submit(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.ContactSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.contactSvc.SubmitContact(c.Request.Context(), slug, c.ClientIP(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContactHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	var query dto.ContactQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	contacts, err := s.contactSvc.GetContacts(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contacts)
}

func (s *ContactHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ContactStatusDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.contactSvc.UpdateContactStatus(c.Request.Context(), userID, contactID, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContactHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	contactID, err := parseIDParam(c, "contact_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.contactSvc.DeleteContact(c.Request.Context(), userID, contactID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
