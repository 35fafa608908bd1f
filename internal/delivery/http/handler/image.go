package handler

import (
	"errors"
	"net/http"

	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/request"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/response"
	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/catalog"
)

// multipartFormMemory caps how much of the multipart form is buffered in
// memory before spilling to temp files.
const multipartFormMemory = 8 << 20

// ImageHandler handles product image uploads and removals
type ImageHandler struct {
	service       *catalog.Service
	maxUploadSize int64
	logger        *logger.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(service *catalog.Service, maxUploadSize int64, log *logger.Logger) *ImageHandler {
	return &ImageHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        log,
	}
}

// RemoveImageRequest carries the index of the image to remove
type RemoveImageRequest struct {
	Index int `json:"index"`
}

// Upload handles POST /products/images/upload/:id
// @Summary Upload product images
// @Description Accepts one or more files in the multipart field "images" and appends their stored names to the product's image list.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param images formData file true "Image files"
// @Success 200 {object} response.Envelope "Updated product"
// @Failure 400 {object} response.Envelope "No files uploaded"
// @Failure 404 {object} response.Envelope "Product not found"
// @Security BearerAuth
// @Router /products/images/upload/{id} [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(multipartFormMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No files were uploaded")
		return
	}

	uploads := make([]catalog.Upload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		defer file.Close()

		uploads = append(uploads, catalog.Upload{
			Filename: header.Filename,
			Content:  file,
		})
	}

	product, err := h.service.UploadImages(r.Context(), id, uploads)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.ProductMessage(w, "Image(s) uploaded", productView(r, product))
}

// Remove handles DELETE /products/images/remove/:id
// @Summary Remove one product image by index
// @Description Deletes the file from the image store best-effort and removes the entry from the product's image list.
// @Tags Images
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param index body RemoveImageRequest true "Image index"
// @Success 200 {object} response.Envelope "Updated product, with a warning when the file was already missing"
// @Failure 400 {object} response.Envelope "Invalid image index"
// @Failure 404 {object} response.Envelope "Product not found"
// @Security BearerAuth
// @Router /products/images/remove/{id} [delete]
func (h *ImageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req RemoveImageRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, warnings, err := h.service.RemoveImage(r.Context(), id, req.Index)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Success:  true,
		Message:  "Image has been removed",
		Product:  productView(r, product),
		Warnings: warnings,
	})
}

func (h *ImageHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoFiles):
		response.Error(w, http.StatusBadRequest, "No files were uploaded")
	case errors.Is(err, domain.ErrInvalidImageIndex):
		response.Error(w, http.StatusBadRequest, "Invalid image index")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Error("Internal error in image handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
