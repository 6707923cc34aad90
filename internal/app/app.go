package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/zenny/moodle-theme-snap/internal/app/server"
	"github.com/zenny/moodle-theme-snap/internal/config"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http/controllers"
	"github.com/zenny/moodle-theme-snap/internal/events"
	"github.com/zenny/moodle-theme-snap/internal/lms/availability"
	"github.com/zenny/moodle-theme-snap/internal/lms/format"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/internal/service"
	"github.com/zenny/moodle-theme-snap/internal/service/auth"
	"github.com/zenny/moodle-theme-snap/internal/service/course"
	"github.com/zenny/moodle-theme-snap/internal/storage/elastic"
	"github.com/zenny/moodle-theme-snap/internal/storage/minio_storage"
	"github.com/zenny/moodle-theme-snap/internal/storage/postgres"
	"github.com/zenny/moodle-theme-snap/internal/storage/redis"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

const reindexTimeout = 2 * time.Minute

type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	rdb, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.Redis.Addr,
		User:           cfg.Redis.User,
		Password:       cfg.Redis.Password,
		DB:             cfg.Redis.DB,
		ConnectTimeout: cfg.Redis.ConnectTimeout,
		RetryInterval:  cfg.Redis.RetryInterval,
		MaxWait:        cfg.Redis.MaxWait,
		PingTimeout:    cfg.Redis.PingTimeout,
		WarnThreshold:  3,
	}, log.With("component", "redis"))
	if err != nil {
		log.FatalErr("error connecting to redis", err)
	}
	defer rdb.Close()

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	structureRepo := postgres.NewStructurePostgres(pg.Pool)
	completionRepo := postgres.NewCompletionPostgres(pg.Pool)
	userRepo := postgres.NewUserPostgres(pg.Pool)

	structureCache := redis.NewCachedStructure(log, rdb, structureRepo, cfg.Theme.StructureCacheTTL)
	courseEvents := events.NewCourseChangedConsumer(log.With("component", "events"), rdb, cfg.Redis.CourseChannel, courseRepo, structureCache)

	deps := course.Deps{
		Courses:      courseRepo,
		Structure:    structureCache,
		Mutator:      structureRepo,
		Favorites:    postgres.NewFavoritesPostgres(pg.Pool),
		Enrolments:   postgres.NewEnrolmentPostgres(pg.Pool),
		Completion:   completionRepo,
		Availability: availability.NewEngine(log.With("component", "availability"), completionRepo),
		Formats:      format.NewRegistry(),
	}

	if len(cfg.Minio.Buckets) > 0 {
		storage, err := minio_storage.NewMinioStorage(cfg.Minio)
		if err != nil {
			log.FatalErr("error connecting to minio", err)
		}
		images, err := minio_storage.NewCourseImageStorage(storage)
		if err != nil {
			log.FatalErr("error configuring course images", err)
		}
		deps.Images = images
	} else {
		log.Warn("minio is not configured, course cards are served without images")
	}

	if len(cfg.ES.Hosts) > 0 {
		es, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
		if err != nil {
			log.FatalErr("error connecting to elasticsearch", err)
		}
		search := elastic.NewCourseSearchRepository(es, cfg.ES.Index)
		if err := search.CreateIndexIfNotExist(ctx); err != nil {
			log.FatalErr("error preparing course index", err)
		}
		go reindexCourses(ctx, log, courseRepo, search)
		deps.Search = search
		courseEvents.WithIndex(search)
	} else {
		log.Warn("elasticsearch is not configured, course search is disabled")
	}

	courseService := course.NewCourseService(log, course.Options{
		WWWRoot:            cfg.Theme.WWWRoot,
		ListLargeThreshold: cfg.Theme.ListLargeThreshold,
	}, deps)
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer)
	u := service.Collection{
		AuthService:   auth.NewAuthService(log, jwtManager, userRepo),
		CourseService: courseService,
	}

	userEvents := events.NewUserDeletedConsumer(log.With("component", "events"), rdb, cfg.Redis.EventsChannel, u.CourseService)
	go func() {
		if err := userEvents.Run(ctx); err != nil {
			log.ErrorErr("user event consumer stopped", err)
		}
	}()
	go func() {
		if err := courseEvents.Run(ctx); err != nil {
			log.ErrorErr("course event consumer stopped", err)
		}
	}()

	r := http.InitRoutes(log, u.AuthService, u.CourseService, http.Options{
		AllowOrigins: cfg.Theme.AllowOrigins,
		Checks: map[string]controllers.Pinger{
			"postgres": pg,
			"redis":    redisPinger{client: rdb},
		},
	})

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("listening", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server failed", err)
	}

	cancel()
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("http server shutdown", err)
	}
}

type courseLister interface {
	AllCourses(ctx context.Context) ([]models.Course, error)
}

type courseIndexer interface {
	IndexAll(ctx context.Context, courses []models.Course) error
}

// reindexCourses pushes every course into the search index once at startup.
func reindexCourses(ctx context.Context, log logger.Log, courses courseLister, index courseIndexer) {
	ctx, cancel := context.WithTimeout(ctx, reindexTimeout)
	defer cancel()

	all, err := courses.AllCourses(ctx)
	if err != nil {
		log.ErrorErr("reindexCourses: failed to list courses", err)
		return
	}
	if err := index.IndexAll(ctx, all); err != nil {
		log.ErrorErr("reindexCourses: failed to index courses", err, "count", len(all))
		return
	}
	log.Info("course search index rebuilt", "count", len(all))
}
