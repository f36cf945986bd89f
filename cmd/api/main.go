package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/streamhive/streams-ms-go/internal/config"
	"github.com/streamhive/streams-ms-go/internal/counter"
	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/handler/api"
	"github.com/streamhive/streams-ms-go/internal/logger"
	cMiddleware "github.com/streamhive/streams-ms-go/internal/middleware"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/repository/mariadb"
	"github.com/streamhive/streams-ms-go/internal/storage"
	"github.com/streamhive/streams-ms-go/internal/task"
	notificationSvc "github.com/streamhive/streams-ms-go/internal/usecase/notification"
	"github.com/streamhive/streams-ms-go/internal/usecase/presign"
	sessionSvc "github.com/streamhive/streams-ms-go/internal/usecase/session"
	vodSvc "github.com/streamhive/streams-ms-go/internal/usecase/vod"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, cfg.Buckets())

	sessionRepo := mariadb.NewSessionRepository(database.DB)
	vodRepo := mariadb.NewVODRepository(database.DB)
	followerRepo := mariadb.NewFollowerRepository(database.DB)

	var viewers port.ViewerCounter
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		viewers = counter.NewViewerCounter(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis counter store enabled")
	} else {
		viewers = counter.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, viewer counts and background jobs are disabled")
	}

	producer := notificationSvc.NewFanoutProducer(followerRepo, followerRepo, dispatcher)
	refresher := presign.NewRefresher(strg)

	createSessionSvc := sessionSvc.NewSessionCreator(sessionRepo, db.NewUUID)
	updateSessionSvc := sessionSvc.NewSessionUpdater(sessionRepo)
	getSessionSvc := sessionSvc.NewSessionGetter(sessionRepo, refresher, cfg.ThumbnailsBucket)
	starterSvc := sessionSvc.NewSessionStarter(sessionRepo, viewers, producer)
	enderSvc := sessionSvc.NewSessionEnder(sessionRepo, viewers, dispatcher)
	getVODSvc := vodSvc.NewVODGetter(vodRepo, refresher, cfg.VODBucket, cfg.ThumbnailsBucket)

	r.Route("/sessions", func(r chi.Router) {
		r.Use(cMiddleware.WithOwnerAuth(cfg.JWTPublicKey))
		r.Post("/", api.CreateSessionHandler(createSessionSvc))
		r.With(cMiddleware.WithResourceID()).
			Patch("/{id}", api.UpdateSessionHandler(updateSessionSvc))
		r.With(cMiddleware.WithResourceID()).
			Get("/{id}", api.GetSessionHandler(getSessionSvc))
	})

	r.With(cMiddleware.WithResourceID()).
		Get("/vods/{id}", api.GetVODHandler(getVODSvc))

	// callbacks from the media server, reachable on the internal network only
	r.Route("/internal/hooks", func(r chi.Router) {
		r.Post("/publish", api.PublishHookHandler(starterSvc))
		r.Post("/done", api.DoneHookHandler(enderSvc))
		r.Post("/recording", api.RecordingHookHandler(dispatcher))
		r.Post("/viewer_join", api.ViewerJoinHookHandler(viewers))
		r.Post("/viewer_leave", api.ViewerLeaveHookHandler(viewers))
	})

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
