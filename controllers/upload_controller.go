package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/services"
	"github.com/kendall-kelly/marketplace-api/utils"
	"go.uber.org/zap"
)

var errImageTooLarge = &services.ValidationError{
	Code:    "FILE_TOO_LARGE",
	Message: "Image size must be less than 5MB",
}

// UploadController accepts listing images
type UploadController struct {
	images *services.ImageService
	logger *zap.Logger
}

// NewUploadController creates an upload controller
func NewUploadController(images *services.ImageService, logger *zap.Logger) *UploadController {
	return &UploadController{images: images, logger: logger}
}

// UploadImage handles POST /api/upload - stores the multipart "image" field
func (uc *UploadController) UploadImage(c *gin.Context) {
	// Reject oversized bodies before they are buffered; leave room for the multipart envelope
	const maxBody = utils.MaxFileSize + 1<<20
	if c.Request.ContentLength > maxBody {
		respondError(c, uc.logger, errImageTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	fileHeader, err := c.FormFile("image")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, uc.logger, errImageTooLarge)
		return
	}
	if err != nil {
		uc.logger.Debug("No image in upload request", zap.Error(err))
		respondError(c, uc.logger, &services.ValidationError{
			Code:    "NO_FILE",
			Message: "No file provided",
		})
		return
	}

	result, err := uc.images.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		respondError(c, uc.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
