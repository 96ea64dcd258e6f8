package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/aws/smithy-go"
	"github.com/kendall-kelly/marketplace-api/utils"
	"go.uber.org/zap"
)

// UploadResult is returned to the client after a successful image upload
type UploadResult struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	FileName string `json:"fileName"`
}

// ImageService validates listing images and stores them in object storage
type ImageService struct {
	store  ObjectStore
	logger *zap.Logger
	now    func() time.Time
}

// NewImageService creates an image service writing to store
func NewImageService(store ObjectStore, logger *zap.Logger) *ImageService {
	return &ImageService{store: store, logger: logger, now: time.Now}
}

// UploadImage validates fileHeader and stores it under a freshly generated name
func (s *ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadResult, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var fileErr *utils.FileUploadError
		if errors.As(err, &fileErr) {
			return nil, &ValidationError{Code: fileErr.Code, Message: fileErr.Message}
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, &BackendError{Code: "UPLOAD_ERROR", Message: "Failed to read uploaded file", Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Warn("failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	fileName := utils.GenerateFileName(fileHeader.Filename, s.now())
	contentType := fileHeader.Header.Get("Content-Type")

	if err := s.store.PutObject(ctx, fileName, file, contentType); err != nil {
		s.logger.Error("Upload error", zap.String("file_name", fileName), zap.Error(err))
		return nil, &BackendError{Code: "STORAGE_ERROR", Message: storageErrorMessage(err), Err: err}
	}

	s.logger.Info("Image uploaded",
		zap.String("file_name", fileName), zap.Int64("size", fileHeader.Size))

	return &UploadResult{
		Success:  true,
		ImageURL: s.store.PublicURL(fileName),
		FileName: fileName,
	}, nil
}

// storageErrorMessage turns a storage failure into a message safe to show users
func storageErrorMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return "Storage not configured. Please contact support."
		case "EntityTooLarge":
			return "Image file is too large. Please use a smaller image."
		case "PreconditionFailed", "ConditionalRequestConflict":
			return "An image with this name already exists. Please try again."
		}
	}
	return "Failed to upload image. Please try again."
}
