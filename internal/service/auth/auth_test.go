package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

const testSecret = "test-secret"

type fakeUsers map[uuid.UUID]*models.User

func (f fakeUsers) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, app_errors.ErrUserNotFound
}

type brokenUsers struct{}

func (brokenUsers) UserByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func TestJWTManager_AccessClaims(t *testing.T) {
	m := NewJWTManager(testSecret, "lms")
	userID := uuid.New()

	token, err := m.Sign(userID, []string{models.StudentRole}, time.Minute)
	require.NoError(t, err)

	claims, err := m.AccessClaims(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{models.StudentRole}, claims.Roles)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager(testSecret, "lms")
	userID := uuid.New()

	expired, err := m.Sign(userID, nil, -time.Minute)
	require.NoError(t, err)
	_, err = m.AccessClaims(expired)
	assert.ErrorIs(t, err, app_errors.ErrTokenExpired)

	other, err := NewJWTManager("other-secret", "lms").Sign(userID, nil, time.Minute)
	require.NoError(t, err)
	_, err = m.AccessClaims(other)
	assert.ErrorIs(t, err, app_errors.ErrTokenInvalid)

	foreign, err := NewJWTManager(testSecret, "elsewhere").Sign(userID, nil, time.Minute)
	require.NoError(t, err)
	_, err = m.AccessClaims(foreign)
	assert.ErrorIs(t, err, app_errors.ErrTokenInvalid)

	refresh := jwt.NewWithClaims(signingMethod, AccessTokenClaims{
		TokenType: "refresh",
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lms",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := refresh.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.AccessClaims(signed)
	assert.ErrorIs(t, err, app_errors.ErrTokenInvalid)

	_, err = m.AccessClaims("garbage")
	assert.ErrorIs(t, err, app_errors.ErrTokenInvalid)
}

func TestAuthService_Viewer(t *testing.T) {
	m := NewJWTManager(testSecret, "")
	userID := uuid.New()
	users := fakeUsers{userID: {ID: userID, Roles: []string{models.EditingTeacherRole}}}
	svc := NewAuthService(logger.NewDiscard(), m, users)

	token, err := m.Sign(userID, []string{models.StudentRole}, time.Minute)
	require.NoError(t, err)

	viewer, err := svc.Viewer(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, viewer.UserID)
	assert.True(t, viewer.CanEdit())

	unknown, err := m.Sign(uuid.New(), []string{models.AdminRole}, time.Minute)
	require.NoError(t, err)
	_, err = svc.Viewer(context.Background(), unknown)
	assert.ErrorIs(t, err, app_errors.ErrTokenInvalid)
}

func TestAuthService_ViewerWithoutUserStore(t *testing.T) {
	m := NewJWTManager(testSecret, "")
	svc := NewAuthService(logger.NewDiscard(), m, nil)
	userID := uuid.New()

	token, err := m.Sign(userID, []string{models.AdminRole}, time.Minute)
	require.NoError(t, err)

	viewer, err := svc.Viewer(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, []string{models.AdminRole}, viewer.Roles)
}

func TestAuthService_ViewerStoreFailure(t *testing.T) {
	m := NewJWTManager(testSecret, "")
	svc := NewAuthService(logger.NewDiscard(), m, brokenUsers{})

	token, err := m.Sign(uuid.New(), nil, time.Minute)
	require.NoError(t, err)

	_, err = svc.Viewer(context.Background(), token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, app_errors.ErrTokenInvalid)
}
