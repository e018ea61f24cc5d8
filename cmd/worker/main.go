package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/adapters/event"
	"github.com/khoahotran/profile-playground/adapters/media_storage"
	"github.com/khoahotran/profile-playground/adapters/persistence"
	"github.com/khoahotran/profile-playground/adapters/store"
	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/application/usecase/archive"
	workerUC "github.com/khoahotran/profile-playground/internal/application/usecase/worker"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
	"github.com/khoahotran/profile-playground/pkg/tracing"
)

const consumerGroup = "profile-processor-group"

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting Profile Playground Worker...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-playground-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tp.Shutdown(context.Background())

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("config Kafka brokers not found", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	st, err := store.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open store", err)
	}
	defer st.Close()

	var skillCache service.SkillCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		skillCache = persistence.NewRedisSkillCache(redisClient, cfg.Redis.CacheTTL)
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}
	var archiver *archive.ArchiveUseCase
	if uploader != nil {
		archiver = archive.NewArchiveUseCase(st.Profiles, uploader, appLogger)
	}

	// Worker Use Case
	processProfileEventUC := workerUC.NewProcessProfileEventUseCase(st.Profiles, skillCache, archiver, appLogger)

	// Kafka Consumer
	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  consumerGroup,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents), zap.String("group", consumerGroup))

	for {
		msg, err := profileConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		e, err := event.DecodeProfileEvent(msg)
		if err != nil {
			appLogger.Error("Failed to decode event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(profileConsumer, msg, appLogger)
			continue
		}

		if err := processProfileEventUC.Execute(ctx, e); err != nil {
			appLogger.Error("Failed to process profile event", err,
				zap.String("event_id", e.ID.String()),
				zap.String("owner_id", e.OwnerID.String()),
			)
			continue
		}

		commitMessage(profileConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
