package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"go.uber.org/zap"
)

const objectBackend = "object"

// ObjectConfig describes an S3-compatible bucket
type ObjectConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	Prefix          string
	UsePathStyle    bool
}

// ObjectStore mirrors files into an S3-compatible bucket
type ObjectStore struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
	prefix     string
}

// NewObjectStore creates a client using the S3 SDK
func NewObjectStore(cfg ObjectConfig) (*ObjectStore, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://storage.yandexcloud.net"
	}
	region := cfg.Region
	if region == "" {
		region = "ru-central1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: cfg.UsePathStyle,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &ObjectStore{
		s3Client:   s3Client,
		bucketName: cfg.BucketName,
		endpoint:   strings.TrimRight(endpoint, "/"),
		prefix:     strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *ObjectStore) Backend() string {
	return objectBackend
}

// Key returns the object key for name
func (s *ObjectStore) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Save uploads data and returns the object URL
func (s *ObjectStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	start := time.Now()
	operation := "putObject"
	key := s.Key(name)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(objectBackend, operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(objectBackend, operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload %s to object storage: %w", key, err)
	}

	metrics.StorageRequestDuration.WithLabelValues(objectBackend, operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(objectBackend, operation, "success").Inc()
	metrics.StoredBytes.WithLabelValues(objectBackend).Add(float64(len(data)))
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	// Format: {endpoint}/{bucket}/{key}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key), nil
}
