package services_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/oreline/careers-api/internal/models"
	"github.com/oreline/careers-api/internal/services"
	apperrors "github.com/oreline/careers-api/pkg/errors"
	"github.com/oreline/careers-api/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var storedNamePattern = regexp.MustCompile(`^Aysel_Nur_Mammadova_\d{13}\.pdf$`)

func TestStoredFileName(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	tests := []struct {
		name      string
		firstName string
		lastName  string
		expected  string
	}{
		{
			name:      "plain names",
			firstName: "Aysel",
			lastName:  "Mammadova",
			expected:  "Aysel_Mammadova_1700000000123.pdf",
		},
		{
			name:      "whitespace runs collapse",
			firstName: "Aysel \t Nur",
			lastName:  "Mammadova  Aliyeva",
			expected:  "Aysel_Nur_Mammadova_Aliyeva_1700000000123.pdf",
		},
		{
			name:      "path separators stripped",
			firstName: "../../etc",
			lastName:  `pass\wd`,
			expected:  "....etc_passwd_1700000000123.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, services.StoredFileName(tt.firstName, tt.lastName, at))
		})
	}
}

func TestApplicationService_Apply(t *testing.T) {
	store := newMockStore("disk")
	service := services.NewApplicationService(store, nil)
	ctx := context.Background()

	store.On("Save", mock.Anything, mock.MatchedBy(storedNamePattern.MatchString), pdfBytes, models.CVContentType).
		Return("uploads/stored.pdf", nil).Once()

	resp, err := service.Apply(ctx, testApplication(), pdfAttachment())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Application submitted successfully", resp.Message)
	assert.Regexp(t, storedNamePattern, resp.FileName)

	store.AssertExpectations(t)
}

func TestApplicationService_ApplyRejectsBadFiles(t *testing.T) {
	store := newMockStore("disk")
	service := services.NewApplicationService(store, nil)

	_, err := service.Apply(context.Background(), testApplication(), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = service.Apply(context.Background(), testApplication(), &models.Attachment{
		FileName:    "cv.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:        []byte("PK"),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnsupportedMedia))

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_ApplyStorageFailure(t *testing.T) {
	store := newMockStore("disk")
	service := services.NewApplicationService(store, nil)

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("disk full")).Once()

	resp, err := service.Apply(context.Background(), testApplication(), pdfAttachment())
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	store.AssertExpectations(t)
}

func TestApplicationService_ApplyRetriesNameCollision(t *testing.T) {
	store := newMockStore("disk")
	service := services.NewApplicationService(store, nil)

	var names []string
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { names = append(names, args.String(1)) }).
		Return("", fmt.Errorf("taken: %w", storage.ErrExists)).Once()
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { names = append(names, args.String(1)) }).
		Return("uploads/second.pdf", nil).Once()

	resp, err := service.Apply(context.Background(), testApplication(), pdfAttachment())
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.NotEqual(t, names[0], names[1])
	assert.Equal(t, names[1], resp.FileName)
	store.AssertExpectations(t)
}

func TestApplicationService_ApplyMirrorsToObjectStorage(t *testing.T) {
	store := newMockStore("disk")
	mirror := newMockStore("object")
	service := services.NewApplicationService(store, mirror)

	store.On("Save", mock.Anything, mock.Anything, pdfBytes, models.CVContentType).Return("uploads/x.pdf", nil).Once()
	mirror.On("Save", mock.Anything, mock.Anything, pdfBytes, models.CVContentType).Return("https://bucket/x.pdf", nil).Once()

	resp, err := service.Apply(context.Background(), testApplication(), pdfAttachment())
	require.NoError(t, err)
	service.Wait()

	mirror.AssertExpectations(t)
	assert.Equal(t, resp.FileName, mirror.Calls[0].Arguments.String(1))
}

func TestApplicationService_MirrorFailureDoesNotFailRequest(t *testing.T) {
	store := newMockStore("disk")
	mirror := newMockStore("object")
	service := services.NewApplicationService(store, mirror)

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("uploads/x.pdf", nil).Once()
	mirror.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable"))

	resp, err := service.Apply(context.Background(), testApplication(), pdfAttachment())
	require.NoError(t, err)
	assert.True(t, resp.Success)

	service.Wait()
	mirror.AssertNumberOfCalls(t, "Save", 4)
}
