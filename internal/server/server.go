// Package server wires the HTTP surface of the feed backend: routes,
// middleware, and the handlers that bridge requests into the feed engine.
package server

import (
	"context"
	"time"

	"mockbook/internal/config"
	"mockbook/internal/feed"
	"mockbook/internal/middleware"
	"mockbook/internal/seed"
	"mockbook/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config     *config.Config
	store      *store.Store
	redis      *redis.Client
	engine     *feed.Engine
	resolver   *feed.Resolver
	prom       *fiberprometheus.FiberPrometheus
	snapshotFS afero.Fs
}

// NewServer creates a new server instance with all dependencies. The store
// starts from the seed fixture; a snapshot at cfg.SnapshotPath, if present,
// replaces it.
func NewServer(cfg *config.Config) (*Server, error) {
	st := store.New()
	st.Reset(seed.InitialData())

	fs := afero.NewOsFs()
	if cfg.SnapshotPath != "" {
		if ok, _ := afero.Exists(fs, cfg.SnapshotPath); ok {
			if err := st.Load(fs, cfg.SnapshotPath); err != nil {
				return nil, err
			}
			middleware.Logger.Info("loaded store snapshot", "path", cfg.SnapshotPath)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	}

	engine := feed.NewEngine(st)
	return &Server{
		config:     cfg,
		store:      st,
		redis:      rdb,
		engine:     engine,
		resolver:   engine.Resolver(),
		prom:       middleware.InitMetrics("mockbook-api"),
		snapshotFS: fs,
	}, nil
}

// NewServerWithStore creates a Server over an existing store, without the
// process-global Prometheus registration. Used by tests.
func NewServerWithStore(cfg *config.Config, st *store.Store) *Server {
	engine := feed.NewEngine(st)
	return &Server{
		config:     cfg,
		store:      st,
		engine:     engine,
		resolver:   engine.Resolver(),
		snapshotFS: afero.NewMemMapFs(),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.ContextMiddleware())

	if s.prom != nil {
		app.Use(middleware.Metrics(s.prom))
	}

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	app.Get("/user/:userid/feed", s.GetFeed)

	app.Post("/feeditem", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_item"), s.CreateFeedItem)
	app.Put("/feeditem/:feeditemid/content", s.UpdateFeedItemContent)
	app.Delete("/feeditem/:feeditemid", s.DeleteFeedItem)

	app.Put("/feeditem/:feeditemid/likelist/:userid", s.LikeFeedItem)
	app.Delete("/feeditem/:feeditemid/likelist/:userid", s.UnlikeFeedItem)

	app.Post("/feeditem/:feeditemid/CommentThread", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	app.Put("/feeditem/:feeditemid/CommentThread/:commentindex/likelist/:userid", s.LikeComment)
	app.Delete("/feeditem/:feeditemid/CommentThread/:commentindex/likelist/:userid", s.UnlikeComment)

	app.Post("/search", s.Search)
	app.Post("/resetdb", s.ResetDB)

	// Serve the browser client build when configured.
	if s.config.StaticDir != "" {
		app.Static("/", s.config.StaticDir)
	}
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional; when
// configured it participates in readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	redisStatus := "not configured"
	status := fiber.StatusOK
	overall := "healthy"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
			status = fiber.StatusServiceUnavailable
			overall = "unhealthy"
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"store": fiber.Map{
				"users":     s.store.Users.Len(),
				"feeds":     s.store.Feeds.Len(),
				"feedItems": s.store.FeedItems.Len(),
			},
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server resources and writes a final snapshot when one is
// configured.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.SnapshotPath != "" {
		if err := s.store.Save(s.snapshotFS, s.config.SnapshotPath); err != nil {
			middleware.Logger.Error("failed to save store snapshot", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err)
		}
	}
	return nil
}
