package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/minio"
	"Folioforge/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// maxImageEdge 头像与项目缩略图的最长边，超出的等比缩小
const maxImageEdge = 1600

type MediaService interface {
	UploadImage(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

// UploadImage 校验并压缩图片后上传到对象存储
func (s *mediaServiceImpl) UploadImage(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error) {
	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	image, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		log.WarnContext(ctx, "decode image error", "filename", filename, "err", err)
		return nil, ErrFileNotSupported
	}

	bounds := image.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		image = imaging.Fit(image, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, image, format); err != nil {
		log.ErrorContext(ctx, "encode image error", "filename", filename, "err", err)
		return nil, UnExpectedError
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(ctx, objectName, &buf, int64(buf.Len()), contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, UnExpectedError
	}

	return &dto.MediaUploadDTO{
		ObjectName: fileKey,
		URL:        minio.GetPublicURL(fileKey),
	}, nil
}

func (s *mediaServiceImpl) DeleteImage(ctx context.Context, objectName string) error {
	if err := minio.DeleteFile(ctx, objectName); err != nil {
		log.ErrorContext(ctx, "MinIO delete failed", "object", objectName, "err", err)
		return UnExpectedError
	}
	return nil
}
