package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http/controllers"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http/controllers/course"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http/controllers/middleware"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type Options struct {
	AllowOrigins []string
	Checks       map[string]controllers.Pinger
}

func InitRoutes(l logger.Log, auth middleware.AuthService, courses course.CourseService, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     opts.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:5173"}
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler(opts.Checks)
	authProvider := middleware.NewAuthMiddlewareProvider(l, auth)
	courseController := course.NewCourseHandler(l, courses)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		c := v1.Group("/courses", authProvider.AuthMiddleware)
		{
			c.GET("/favorites", courseController.Favorites)
			c.GET("/my", courseController.MyCourses)
			c.GET("/search", courseController.Search)

			c.GET("/:shortname", courseController.CourseByShortname)
			c.GET("/:shortname/card", courseController.Card)
			c.GET("/:shortname/toc", courseController.TOC)
			c.GET("/:shortname/toc/chapters", courseController.TOCChapters)
			c.GET("/:shortname/favorite", courseController.Favorited)
			c.PUT("/:shortname/favorite", courseController.Favorite)
			c.DELETE("/:shortname/favorite", courseController.Unfavorite)
			c.GET("/:shortname/unavailable", courseController.Unavailable)
			c.POST("/:shortname/completion", courseController.Completion)

			c.PATCH("/:shortname/sections/:section/highlight", courseController.HighlightSection)
			c.PATCH("/:shortname/sections/:section/visibility", courseController.SetSectionVisibility)
		}
	}
	return r
}
