package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oreline/careers-api/internal/models"
	apperrors "github.com/oreline/careers-api/pkg/errors"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"github.com/oreline/careers-api/pkg/retry"
	"github.com/oreline/careers-api/pkg/storage"
	"github.com/oreline/careers-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	applySuccessMessage = "Application submitted successfully"
	mirrorTimeout       = 2 * time.Minute
	maxNameCollisions   = 5
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ApplicationService stores uploaded CVs and records the submission in the operational log
type ApplicationService struct {
	store  storage.Store
	mirror storage.Store
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewApplicationService creates the service. mirror may be nil.
func NewApplicationService(store storage.Store, mirror storage.Store) *ApplicationService {
	return &ApplicationService{
		store:  store,
		mirror: mirror,
		now:    time.Now,
	}
}

// StoredFileName derives the on-disk name: first_last with whitespace runs
// turned into "_", path separators removed, then the unix millisecond timestamp.
func StoredFileName(firstName, lastName string, at time.Time) string {
	base := whitespaceRun.ReplaceAllString(firstName+"_"+lastName, "_")
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		}
		return r
	}, base)
	return fmt.Sprintf("%s_%d.pdf", base, at.UnixMilli())
}

// Apply writes the CV and acknowledges the submission
func (s *ApplicationService) Apply(ctx context.Context, app *models.Application, cv *models.Attachment) (*models.ApplyResponse, error) {
	if cv == nil || len(cv.Data) == 0 {
		metrics.ApplicationSubmissions.WithLabelValues("rejected").Inc()
		return nil, apperrors.InvalidInputError("cv", "no CV file uploaded")
	}
	if !cv.IsPDF() {
		metrics.ApplicationSubmissions.WithLabelValues("rejected").Inc()
		return nil, apperrors.UnsupportedMediaError(cv.ContentType)
	}

	submittedAt := s.now()
	fileName, err := s.save(ctx, app, cv, submittedAt)
	if err != nil {
		metrics.ApplicationSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to store CV",
			zap.Error(err),
			zap.String("email", app.Email))
		return nil, fmt.Errorf("failed to store CV: %w", err)
	}

	metrics.ApplicationSubmissions.WithLabelValues("success").Inc()
	metrics.ApplicationCVBytes.Observe(float64(cv.Size()))

	logger.Info("New job application received",
		zap.String("name", app.FullName()),
		zap.String("email", app.Email),
		zap.String("phone", app.Phone),
		zap.Int("languages", len(app.Languages)),
		zap.Int("experiences", len(app.Experiences)),
		zap.Int("higher_education", len(app.HigherEducation)),
		zap.Int("certificates", len(app.Certificates)),
		zap.Int("trainings", len(app.Trainings)),
		zap.Int("relatives", len(app.Relatives)),
		zap.Int("recommenders", len(app.Recommenders)),
		zap.String("cv_original_name", cv.FileName),
		zap.String("file_name", fileName),
		zap.Int("size_bytes", cv.Size()),
		zap.Time("submitted_at", submittedAt),
	)

	s.mirrorAsync(fileName, cv)

	return &models.ApplyResponse{
		Success:  true,
		Message:  applySuccessMessage,
		FileName: fileName,
	}, nil
}

// save writes under a fresh name, moving the timestamp forward if two
// applicants with the same name land in the same millisecond
func (s *ApplicationService) save(ctx context.Context, app *models.Application, cv *models.Attachment, at time.Time) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "careers.store_cv",
		attribute.String("storage.backend", s.store.Backend()),
		attribute.Int("cv.size_bytes", cv.Size()),
	)

	var err error
	for i := 0; i < maxNameCollisions; i++ {
		fileName := StoredFileName(app.FirstName, app.LastName, at.Add(time.Duration(i)*time.Millisecond))
		_, err = s.store.Save(ctx, fileName, cv.Data, models.CVContentType)
		if err == nil {
			span.SetAttributes(attribute.String("cv.file_name", fileName))
			tracing.EndSpan(span, nil)
			return fileName, nil
		}
		if !errors.Is(err, storage.ErrExists) {
			break
		}
	}

	tracing.EndSpan(span, err)
	return "", err
}

// mirrorAsync copies the stored CV to object storage without holding up the response
func (s *ApplicationService) mirrorAsync(fileName string, cv *models.Attachment) {
	if s.mirror == nil {
		return
	}

	data := cv.Data
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()

		ctx, span := tracing.StartSpan(ctx, "careers.mirror_cv",
			attribute.String("storage.backend", s.mirror.Backend()),
			attribute.String("cv.file_name", fileName),
		)

		err := retry.Do(ctx, retry.ObjectStorageConfig(), "mirror_cv", func(ctx context.Context) error {
			_, err := s.mirror.Save(ctx, fileName, data, models.CVContentType)
			return err
		})
		tracing.EndSpan(span, err)

		if err != nil {
			logger.Error("Failed to mirror CV to object storage",
				zap.Error(err),
				zap.String("file_name", fileName))
		}
	}()
}

// Wait blocks until pending mirror uploads finish
func (s *ApplicationService) Wait() {
	s.wg.Wait()
}
