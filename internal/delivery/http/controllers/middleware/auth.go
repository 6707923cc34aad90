package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

const ViewerCtx = "viewer"

type AuthService interface {
	Viewer(ctx context.Context, token string) (models.Viewer, error)
}

type AuthMiddlewareProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthMiddlewareProvider(log logger.Log, s AuthService) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:     log,
		service: s,
	}
}

func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	viewer, err := h.service.Viewer(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
		case errors.Is(err, app_errors.ErrTokenInvalid):
			h.log.Info("rejected token", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
		default:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not resolve user"})
		}
		return
	}

	c.Set(ViewerCtx, viewer)
	c.Next()
}

// ViewerFrom returns the viewer stored by AuthMiddleware.
func ViewerFrom(c *gin.Context) (models.Viewer, bool) {
	raw, ok := c.Get(ViewerCtx)
	if !ok {
		return models.Viewer{}, false
	}
	viewer, ok := raw.(models.Viewer)
	return viewer, ok
}
