package handler

import (
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// Upload 头像/缩略图上传，仅接受图片
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	result, err := s.mediaSvc.UploadImage(c.Request.Context(), file.Filename, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MediaHandler) Delete(c *gin.Context) {
	objectName := c.Query("object")
	if objectName == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.mediaSvc.DeleteImage(c.Request.Context(), objectName); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
