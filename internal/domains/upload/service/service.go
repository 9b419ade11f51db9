package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/otel"
	"roombooker/infras/s3"
	"roombooker/internal/domains/upload/model/dto"
	"roombooker/shared/constant"
	"roombooker/shared/failure"
	"roombooker/shared/validator"
)

// AllowedMimeTypes are matched against the sniffed content, never the client header.
var AllowedMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Upload interface {
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	DeleteImage(ctx context.Context, filename string) error
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(cfg *config.Config, otel otel.Otel, s3 s3.S3) Upload {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".upload.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	maxSizeMB := s.cfg.App.Upload.MaxSizeMB
	maxBytes := int64(maxSizeMB * constant.BytesInMegabyte)

	// one byte past the limit is enough to tell an oversized file apart
	data, err := io.ReadAll(io.LimitReader(req.ImageFile, maxBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded file")

		return res, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	size := int64(len(data))

	if err = validator.ValidateVar(size, fmt.Sprintf("maxfilesize=%g", maxSizeMB)); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("file must not exceed %g MB", maxSizeMB))
	}

	if size == 0 {
		return res, failure.BadRequestFromString("file is empty")
	}

	mime := mimetype.Detect(data)

	if err = validator.ValidateVar(mime.String(), "mimetypes="+strings.Join(AllowedMimeTypes, " ")); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("file type %s is not allowed, use JPEG, PNG, GIF or WebP", mime.String()))
	}

	contentType, _, _ := strings.Cut(mime.String(), ";")
	filename := uuid.NewString() + mime.Extension()

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.App.Upload.Directory, filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromUpload(url, filename, size, contentType)

	return res, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, filename string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".upload.DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.s3.DeleteFile(ctx, s.cfg.App.Upload.Directory, filename)
	if errors.Is(err, s3.ErrInvalidObjectKey) {
		return failure.BadRequestFromString("invalid filename")
	}

	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
