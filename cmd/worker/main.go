package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/streamhive/streams-ms-go/internal/config"
	"github.com/streamhive/streams-ms-go/internal/counter"
	"github.com/streamhive/streams-ms-go/internal/db"
	workerHandler "github.com/streamhive/streams-ms-go/internal/handler/worker"
	"github.com/streamhive/streams-ms-go/internal/logger"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/realtime"
	"github.com/streamhive/streams-ms-go/internal/repository/mariadb"
	"github.com/streamhive/streams-ms-go/internal/storage"
	"github.com/streamhive/streams-ms-go/internal/task"
	"github.com/streamhive/streams-ms-go/internal/transcoder"
	ingestSvc "github.com/streamhive/streams-ms-go/internal/usecase/ingest"
	notificationSvc "github.com/streamhive/streams-ms-go/internal/usecase/notification"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	initBuckets(strg, cfg.Buckets())

	sessionRepo := mariadb.NewSessionRepository(database.DB)
	vodRepo := mariadb.NewVODRepository(database.DB)
	notificationRepo := mariadb.NewNotificationRepository(database.DB)
	followerRepo := mariadb.NewFollowerRepository(database.DB)

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	viewers := counter.NewViewerCounter(cfg.RedisAddr, cfg.RedisPassword)

	var push port.RealtimePush
	if cfg.RealtimeGatewayURL != "" {
		push = realtime.NewGatewayPush(cfg.RealtimeGatewayURL)
		logger.Info(ctx, "✅  Realtime gateway enabled")
	} else {
		push = realtime.NewNoopPush()
		logger.Warn(ctx, "⚠️  Realtime gateway not configured, notifications are stored only")
	}

	producer := notificationSvc.NewFanoutProducer(followerRepo, followerRepo, dispatcher)
	consumer := notificationSvc.NewFanoutConsumer(notificationRepo, push, db.NewUUID)

	proc := transcoder.NewFFmpegRunner(cfg.FFmpegPath, cfg.FFprobePath)
	ingester := ingestSvc.NewRecordingIngester(
		sessionRepo, vodRepo, strg, proc, producer, db.NewUUID,
		cfg.VODBucket, cfg.ThumbnailsBucket, cfg.TmpDir,
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeIngestRecording, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseIngestRecordingPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.IngestRecordingHandler(ctx, p, ingester)
	})
	mux.HandleFunc(task.TypeNotifyFollowers, func(ctx context.Context, t *asynq.Task) error {
		job, err := task.ParseNotifyFollowersPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.NotifyFollowersHandler(ctx, job, consumer)
	})
	mux.HandleFunc(task.TypeSessionEnded, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseSessionEndedPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.SessionEndedHandler(ctx, p, viewers)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:    10,
		RetryDelayFunc: task.RetryDelay(notificationSvc.DefaultFanoutRetry),
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
