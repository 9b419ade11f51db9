package dto

import (
	"mime/multipart"
)

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

func (r *UploadImageResponse) FromUpload(url, filename string, size int64, mimeType string) {
	r.URL = url
	r.Filename = filename
	r.Size = size
	r.MimeType = mimeType
}
