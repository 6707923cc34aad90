package minio_storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
)

const (
	// CourseImagesBucket is the bucket key in the minio config section.
	CourseImagesBucket = "course_images"

	defaultPresignTTL = 15 * time.Minute
)

// CourseImageStorage hands out presigned links to course card images.
type CourseImageStorage struct {
	client       *minio.Client
	bucket       string
	presignedTTL time.Duration
}

func NewCourseImageStorage(storage *MinioStorage) (*CourseImageStorage, error) {
	bc, ok := storage.Bucket(CourseImagesBucket)
	if !ok {
		return nil, errors.New("minio: bucket " + CourseImagesBucket + " is not configured")
	}
	return newCourseImageStorage(storage.client, bc.Name, bc.PresignTTL), nil
}

func newCourseImageStorage(client *minio.Client, bucket string, ttl time.Duration) *CourseImageStorage {
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &CourseImageStorage{client: client, bucket: bucket, presignedTTL: ttl}
}

// GetImageURL presigns a GET for objectKey. An empty key means the course has
// no image.
func (s *CourseImageStorage) GetImageURL(ctx context.Context, objectKey string) (string, error) {
	objectKey = strings.TrimPrefix(objectKey, "/")
	if objectKey == "" {
		return "", app_errors.ErrImageNotFound
	}

	reqParams := make(url.Values)
	presignedURL, err := s.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
