package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/kraftory/go-backend/internal/cfg"
	v1Http "github.com/kraftory/go-backend/internal/delivery/v1/http"
	"github.com/kraftory/go-backend/internal/infrastructure/kafka"
	"github.com/kraftory/go-backend/internal/infrastructure/mail"
	minioInfra "github.com/kraftory/go-backend/internal/infrastructure/minio"
	"github.com/kraftory/go-backend/internal/infrastructure/translator"
	s3Repo "github.com/kraftory/go-backend/internal/repository/minio"
	"github.com/kraftory/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/kraftory/go-backend/internal/repository/pgdb/converter/generated"
	"github.com/kraftory/go-backend/internal/repository/redis"
	redisConv "github.com/kraftory/go-backend/internal/repository/redis/converter/generated"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/clients"
	"github.com/kraftory/go-backend/pkg/closer"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
	"github.com/kraftory/go-backend/pkg/postgres"
	"github.com/kraftory/go-backend/pkg/tr"
)

//	@title			Kraftory Shop API
//	@version		1.0
//	@description	Бэкенд интернет-магазина Kraftory: каталог, заказы, админская панель.
//	@host			localhost:8080
//	@BasePath		/api/v1

//	@securityDefinitions.basic	BasicAuth

// Run собирает зависимости и запускает приложение до сигнала останова.
func Run(cfg *config.Config, logger logger.Logger) error {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	orConv := pgdbConv.NewOrderConverterImpl()
	itemConv := pgdbConv.NewOrderItemConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewProductConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orConv, itemConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	txManager := tr.NewManager(db.Pool)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, logger)
	securityRepo := redis.NewSecurityRepo(redisClient, cfg.Security)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, logger, appCtx)
	cl.Add(func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		outboxWorker.Stop()
		return nil
	})

	notifier := mail.NewNotifier(cfg.Smtp, logger)
	translatorSvc := translator.NewTranslatorService(cfg.Translator, logger)

	productUC := usecase.NewProductUC(
		productRepo,
		outboxRepo,
		cacheRepo,
		txManager,
		translatorSvc,
		imagesInfra,
		logger,
	)

	orderUC := usecase.NewOrderUC(
		orderRepo,
		productRepo,
		outboxRepo,
		cacheRepo,
		txManager,
		notifier,
		logger,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg, logger)
	router.Init(productUC, orderUC, securityRepo)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	appCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
