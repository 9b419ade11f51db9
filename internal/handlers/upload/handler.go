package upload

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/otel"
	"roombooker/internal/domains/upload/model/dto"
	"roombooker/internal/domains/upload/service"
	"roombooker/shared/constant"
	"roombooker/shared/failure"
	"roombooker/shared/validator"
	"roombooker/transport/http/response"
)

// multipartOverhead leaves room for boundaries and part headers on top of the file.
const multipartOverhead = 64 << 10

type Handler struct {
	service service.Upload
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Upload, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/uploads", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadImage)
		routerGroup.Delete("/{filename}", handler.DeleteImage)
	})
}

// UploadImage stores a room image and returns its public URL.
// @Summary Upload a room image
// @Description Upload a JPEG, PNG, GIF or WebP image in the "image" form field. The returned URL goes into the room's image_url.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} response.Data[dto.UploadImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/uploads [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	maxSizeMB := handler.cfg.App.Upload.MaxSizeMB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxSizeMB*constant.BytesInMegabyte)+multipartOverhead)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WithError(w, failure.PayloadTooLarge(fmt.Sprintf("file must not exceed %g MB", maxSizeMB)))

			return
		}

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormImage)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image from form")

		response.WithError(w, failure.BadRequestFromString("image is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyAdminUsername).(string)
	scope.AddEvent("Image uploaded successfully by admin " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteImage removes a previously uploaded image.
// @Summary Delete an uploaded image
// @Tags Upload
// @Produce json
// @Param filename path string true "Stored file name"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/uploads/{filename} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	filename := chi.URLParam(r, constant.RequestParamFilename)
	if err := validator.ValidateVar(filename, "required"); err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteImage(ctx, filename); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("filename", filename).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyAdminUsername).(string)
	scope.AddEvent("Image deleted successfully by admin " + user)

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
