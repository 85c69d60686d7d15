package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jjbmsda/ott-mood-app/internal/config"
	"github.com/jjbmsda/ott-mood-app/internal/database"
	"github.com/jjbmsda/ott-mood-app/internal/handler"
	"github.com/jjbmsda/ott-mood-app/internal/logging"
	"github.com/jjbmsda/ott-mood-app/internal/middleware"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
	"github.com/jjbmsda/ott-mood-app/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(logging.New(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Favorites and preferences store
	kv, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	// Rate limiting shares the store's Redis connection when there is one,
	// otherwise it is enabled only if Redis is reachable.
	var rdb *redis.Client
	ownRedis := false
	if cfg.RateLimit.Max > 0 {
		if r, ok := kv.(*database.RedisKV); ok {
			rdb = r.Client()
		} else if client, err := database.NewRedis(ctx, cfg.Redis, 1); err != nil {
			slog.Warn("Redis unavailable, running without rate limiting", "error", err)
		} else {
			rdb, ownRedis = client, true
		}
	}

	// Initialize layers
	tmdbClient := tmdb.NewClient(cfg.TMDB)
	favorites := repository.NewFavoritesRepository(kv)
	prefs := repository.NewPreferencesRepository(kv)

	sessions, err := service.NewSessionManager(cfg.Recommendation.SessionCapacity, cfg.Recommendation.TrailerCacheSize)
	if err != nil {
		slog.Error("failed to create session registry", "error", err)
		os.Exit(1)
	}
	providers := service.NewProviderService(tmdbClient, service.DefaultProviderCatalog())
	recs := service.NewRecommendationService(tmdbClient, favorites, cfg.Recommendation)
	movies := service.NewMovieService(tmdbClient, providers, favorites)

	h := handler.Handlers{
		Quiz:            handler.NewQuizHandler(sessions, prefs),
		Recommendations: handler.NewRecommendationHandler(recs, sessions, prefs),
		Movies:          handler.NewMovieHandler(movies, providers, sessions, prefs),
		Preferences:     handler.NewPreferenceHandler(prefs, favorites),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "OTT Mood",
		ServerHeader: "OTT-Mood",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rdb != nil {
		app.Use(middleware.NewRateLimiter(rdb, cfg.Store.Namespace, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds).Handler())
	}
	if cfg.APIToken != "" {
		app.Use(middleware.AuthMiddleware(cfg.APIToken))
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	h.Register(app.Group("/api/v1"))

	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting ott mood service", "addr", addr, "store", cfg.Store.Driver)
		if err := app.Listen(addr); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down ott mood service...")

	// Stop accepting requests before closing the store.
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}

	if ownRedis {
		if err := rdb.Close(); err != nil {
			slog.Error("error closing Redis connection", "error", err)
		}
	}
	if err := kv.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}

	slog.Info("ott mood service shutdown complete")
}
