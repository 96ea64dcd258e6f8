package utils

import (
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxFileSize is 5MB in bytes
	MaxFileSize = 5 * 1024 * 1024
	// AllowedMIMEPrefix is the content type prefix every upload must carry
	AllowedMIMEPrefix = "image/"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file's content type and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return &FileUploadError{
			Code:    "NO_FILE",
			Message: "No file provided",
		}
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), AllowedMIMEPrefix) {
		return &FileUploadError{
			Code:    "INVALID_FILE_TYPE",
			Message: "File must be an image",
		}
	}

	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("Image size must be less than %dMB", MaxFileSize/(1024*1024)),
		}
	}

	return nil
}

// FileExtension returns the text after the last dot of a file name.
// A name without a dot is returned unchanged.
func FileExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}
	return filename
}

// GenerateFileName builds a collision-resistant storage name of the form
// {epoch-millis}-{random-base36}.{original-extension}
func GenerateFileName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s.%s",
		now.UnixMilli(),
		strconv.FormatUint(rand.Uint64(), 36),
		FileExtension(original))
}
