package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/oreline/careers-api/internal/models"
	apperrors "github.com/oreline/careers-api/pkg/errors"
	"github.com/oreline/careers-api/pkg/httpclient"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	// ApplyPath is where the upload endpoint listens
	ApplyPath = "/api/careers/apply"

	dataField = "data"
	cvField   = "cv"

	fallbackMessage = "Failed to submit application"
	maxErrorBody    = 64 * 1024
)

// APIError is a non-2xx answer from the upload endpoint. Message is the server's text verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client sends applications to the upload endpoint
type Client struct {
	baseURL    string
	httpClient httpclient.Client
}

// NewClient creates a client for the careers API at baseURL
func NewClient(baseURL string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit performs exactly one request. It never retries.
func (c *Client) Submit(ctx context.Context, app *models.Application) (*models.ApplyResponse, error) {
	if err := CheckAttachment(app.CV); err != nil {
		return nil, err
	}

	body, contentType, err := Encode(app)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ApplyPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		logger.LogAPICall(ctx, "careers_api", "apply", "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to send application: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		logger.LogAPICall(ctx, "careers_api", "apply", "error", duration,
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	var ack models.ApplyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("failed to decode acknowledgement: %w", err)
	}

	logger.LogAPICall(ctx, "careers_api", "apply", "success", duration,
		zap.String("file_name", ack.FileName))

	return &ack, nil
}

// CheckAttachment rejects a missing or non-PDF CV before anything is sent
func CheckAttachment(cv *models.Attachment) error {
	if cv == nil || len(cv.Data) == 0 {
		return apperrors.InvalidInputError(cvField, "Please upload a CV file")
	}
	if !cv.IsPDF() {
		return apperrors.UnsupportedMediaError(cv.ContentType)
	}
	return nil
}

// Encode builds the multipart body: the application as JSON in "data" and the CV file in "cv"
func Encode(app *models.Application) (io.Reader, string, error) {
	payload, err := json.Marshal(app)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode application: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField(dataField, string(payload)); err != nil {
		return nil, "", fmt.Errorf("failed to write data field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, cvField, app.CV.FileName))
	header.Set("Content-Type", app.CV.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create cv part: %w", err)
	}
	if _, err := part.Write(app.CV.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write cv part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: fallbackMessage}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
