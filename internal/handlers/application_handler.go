package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/oreline/careers-api/internal/models"
	"github.com/oreline/careers-api/internal/services"
	apperrors "github.com/oreline/careers-api/pkg/errors"
	"github.com/oreline/careers-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	maxFormMemory = 32 << 20

	dataField = "data"
	cvField   = "cv"

	msgNoCV             = "No CV file uploaded"
	msgOnlyPDF          = "Only PDF files are allowed"
	msgInvalidData      = "Invalid application data"
	msgTooLarge         = "Request body too large"
	msgProcessingFailed = "Failed to process application"
)

// ApplicationHandler serves the careers upload endpoint
type ApplicationHandler struct {
	service services.ApplicationServiceInterface
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(service services.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /api/careers/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	// Any other parse failure surfaces below as a missing field
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && tooLarge(err) {
		respondError(c, http.StatusRequestEntityTooLarge, msgTooLarge, err)
		return
	}

	var app models.Application
	if err := json.Unmarshal([]byte(c.PostForm(dataField)), &app); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidData, err)
		return
	}

	header, err := c.FormFile(cvField)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgNoCV, err)
		return
	}

	if contentType := header.Header.Get("Content-Type"); contentType != models.CVContentType {
		respondError(c, http.StatusBadRequest, msgOnlyPDF, apperrors.UnsupportedMediaError(contentType))
		return
	}

	data, err := readPart(header)
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgProcessingFailed, err)
		return
	}

	// The declared type is client-controlled
	if detected := mimetype.Detect(data); !detected.Is(models.CVContentType) {
		logger.Warn("CV content does not match declared type",
			zap.String("declared", models.CVContentType),
			zap.String("detected", detected.String()),
			zap.String("file_name", header.Filename))
		respondError(c, http.StatusBadRequest, msgOnlyPDF, apperrors.UnsupportedMediaError(detected.String()))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), &app, &models.Attachment{
		FileName:    header.Filename,
		ContentType: models.CVContentType,
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnsupportedMedia):
			respondError(c, http.StatusBadRequest, msgOnlyPDF, err)
		case errors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, msgNoCV, err)
		default:
			respondError(c, http.StatusInternalServerError, msgProcessingFailed, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open CV part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV part: %w", err)
	}
	return data, nil
}
