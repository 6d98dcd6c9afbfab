package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/internal/middleware"
	"github.com/jauniforms/pricing-backend/internal/storage"
)

// maxImageSize caps style image uploads at 10MB
const maxImageSize = 10 * 1024 * 1024

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type UploadController struct {
	s3Storage    *storage.S3Storage
	styleService service.StyleService
}

func NewUploadController(s3Storage *storage.S3Storage, styleService service.StyleService) *UploadController {
	return &UploadController{
		s3Storage:    s3Storage,
		styleService: styleService,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size"`
}

type RegisterImageRequest struct {
	FileURL   string `json:"file_url" binding:"required"`
	FileKey   string `json:"file_key"`
	IsPrimary bool   `json:"is_primary"`
}

// Presign returns a presigned PUT URL for a style image upload
// POST /api/v1/uploads/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.s3Storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WebP images are allowed")
		return
	}
	if req.FileSize > 0 {
		if err := ctrl.s3Storage.ValidateFileSize(req.FileSize, maxImageSize); err != nil {
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Image exceeds the 10MB limit")
			return
		}
	}

	resp, err := ctrl.s3Storage.GeneratePresignedURL(req.Filename, req.ContentType, "styles")
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterImage records a completed upload against a style
// POST /api/v1/styles/:id/images
func (ctrl *UploadController) RegisterImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req RegisterImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	image, err := ctrl.styleService.AddImage(id, req.FileURL, req.FileKey, req.IsPrimary)
	if err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			apperrors.NotFound(c, apperrors.StyleNotFound, "Style not found")
			return
		}
		log.Error("Failed to register style image", err, map[string]interface{}{
			"style_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// DeleteImage removes an image record from a style
// DELETE /api/v1/styles/:id/images/:imageId
func (ctrl *UploadController) DeleteImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	imageID, ok := parseUintParam(c, log, "imageId")
	if !ok {
		return
	}

	if err := ctrl.styleService.DeleteImage(id, imageID); err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Image not found")
			return
		}
		log.Error("Failed to delete style image", err, map[string]interface{}{
			"style_id": id,
			"image_id": imageID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
