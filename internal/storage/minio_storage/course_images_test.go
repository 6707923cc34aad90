package minio_storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
)

func newTestImages(t *testing.T, ttl time.Duration) *CourseImageStorage {
	t.Helper()
	// a fixed region keeps presigning offline
	client, err := minio.New("minio.example.org:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return newCourseImageStorage(client, "snap-course-images", ttl)
}

func TestCourseImageStorage_GetImageURL(t *testing.T) {
	images := newTestImages(t, 5*time.Minute)

	raw, err := images.GetImageURL(context.Background(), "/courses/c1/image.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "minio.example.org:9000", u.Host)
	assert.Equal(t, "/snap-course-images/courses/c1/image.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestCourseImageStorage_DefaultTTL(t *testing.T) {
	images := newTestImages(t, 0)

	raw, err := images.GetImageURL(context.Background(), "a.jpg")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestCourseImageStorage_NoImage(t *testing.T) {
	images := newTestImages(t, time.Minute)

	_, err := images.GetImageURL(context.Background(), "")
	assert.ErrorIs(t, err, app_errors.ErrImageNotFound)
}
