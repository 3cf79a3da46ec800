package form

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oreline/careers-api/internal/models"
)

// LoadAttachment reads a file from disk and detects its media type from the content.
// A non-PDF file still loads; the CV rule rejects it with an inline error.
func LoadAttachment(path string) (*models.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewAttachment(filepath.Base(path), data), nil
}

// NewAttachment wraps in-memory file content
func NewAttachment(fileName string, data []byte) *models.Attachment {
	contentType := mimetype.Detect(data)
	mediaType := contentType.String()
	if contentType.Is(models.CVContentType) {
		mediaType = models.CVContentType
	}
	return &models.Attachment{
		FileName:    fileName,
		ContentType: mediaType,
		Data:        data,
	}
}
