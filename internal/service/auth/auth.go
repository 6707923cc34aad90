package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthService turns a bearer token into the Viewer a request runs as. Roles
// come from the user store when one is configured, so a demoted user loses
// editing rights before their token expires.
type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	users      userRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, users userRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		users:      users,
	}
}

func (u *AuthService) Viewer(ctx context.Context, token string) (models.Viewer, error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return models.Viewer{}, err
	}

	viewer := models.Viewer{UserID: claims.UserID, Roles: claims.Roles}
	if u.users == nil {
		return viewer, nil
	}

	user, err := u.users.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return models.Viewer{}, fmt.Errorf("%w: %w", app_errors.ErrTokenInvalid, err)
		}
		u.log.ErrorErr("Viewer: failed to load user", err, "user_id", claims.UserID.String())
		return models.Viewer{}, err
	}
	viewer.Roles = user.Roles
	return viewer, nil
}
