package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/resale-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/resale-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/resale-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure/gemini"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/resale-backend/internal/infrastructure/minio"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure/vinted"
	s3Repo "github.com/DRSN-tech/resale-backend/internal/repository/minio"
	"github.com/DRSN-tech/resale-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/resale-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/resale-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/resale-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/clients"
	"github.com/DRSN-tech/resale-backend/pkg/closer"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/DRSN-tech/resale-backend/pkg/postgres"
	"github.com/DRSN-tech/resale-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	cleanupWait     = 5 * time.Second
	healthInterval  = 15 * time.Second
	topicTimeout    = 10 * time.Second
)

// App держит собранные зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv     *v1Http.Server
	grpcSrv     *v1Grpc.GRPCServer
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure
	probes      []v1Grpc.Probe

	// отменяется при остановке, чтобы фоновая очистка фото перестала ретраить
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp подключается к внешним зависимостям и собирает слои приложения.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0, log),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	defer func() {
		if err != nil {
			a.bgCancel()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = a.closer.Close(ctx)
		}
	}()

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, err
	}
	a.closer.AddFunc("postgres", func() error {
		db.Close()
		return nil
	})

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer startCancel()

	if err := clients.EnsureBucket(startCtx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.AddFunc("redis", redisClient.Close)
	if err := redisClient.Ping(startCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	generator, err := gemini.NewClient(startCtx, cfg.Gemini, log)
	if err != nil {
		log.Errorf(err, "failed to initialize gemini client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddFunc("gemini", generator.Close)

	articleRepo := pgdb.NewArticleRepo(db.Pool, pgdbConv.NewArticleConverterImpl())
	saleRepo := pgdb.NewSaleRepo(db.Pool, pgdbConv.NewSaleConverterImpl())
	conversationRepo := pgdb.NewConversationRepo(db.Pool, pgdbConv.NewConversationConverterImpl())
	statsRepo := pgdb.NewStatsRepo(db.Pool, pgdbConv.NewStatsConverterImpl())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl())
	cacheRepo := redis.NewListingCacheRepo(redisClient, redisConv.NewListingConverterImpl(), cfg.Redis, log)
	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	txManager := tr.NewManager(db.Pool)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, a.bgCtx)
	ladder := vinted.NewLadder(vinted.NewDefaultStrategies(cfg.Import), cfg.Import, log)

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(log, cfg.Kafka)
		a.closer.AddFunc("kafka producer", producer.Close)
		if err := producer.EnsureTopic(topicTimeout); err != nil {
			log.Errorf(err, "failed to ensure kafka topic %s", cfg.Kafka.Topic)
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn, pgdb.OutboxChannel)
	} else {
		log.Infof("kafka is disabled, outbox events stay in the database")
	}

	mux := chi.NewRouter()
	router := v1Http.NewRouter(mux, cfg.Http, cfg.Minio.UploadMaxSize, log)
	router.Init(v1Http.UseCases{
		Articles:  usecase.NewArticleUC(articleRepo, outboxRepo, txManager, a.imagesInfra, log),
		Sales:     usecase.NewSaleUC(saleRepo, articleRepo, outboxRepo, txManager, log),
		Stats:     usecase.NewStatsUC(statsRepo, cfg.Stats.Location),
		Assistant: usecase.NewAssistantUC(generator, articleRepo, conversationRepo, log),
		Import:    usecase.NewImportUC(ladder, cacheRepo, articleRepo, outboxRepo, txManager, log),
	})
	a.httpSrv = v1Http.NewServer(mux, cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices()

	a.probes = []v1Grpc.Probe{
		{Name: "postgres", Check: db.Pool.Ping},
		{Name: "redis", Check: redisClient.Ping},
	}

	return a, nil
}

// Run запускает серверы и фоновые задачи и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	log := a.logger

	grpcErrCh := make(chan error, 1)
	go func() {
		log.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()

	if a.worker != nil {
		go a.worker.Start(a.bgCtx)
	}

	a.grpcSrv.Health().SetServing()
	go a.grpcSrv.Health().Monitor(a.bgCtx, healthInterval, a.probes...)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		log.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()

	log.Infof("Application shutdown complete")
	return appErr
}

func (a *App) stop() {
	log := a.logger

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.grpcSrv.Health().Shutdown()

	if err := a.httpSrv.Stop(ctx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("gRPC server shutdown timeout")
		} else {
			log.Errorf(err, "gRPC server shutdown error")
		}
	} else {
		log.Infof("gRPC server stopped")
	}

	if a.worker != nil {
		a.worker.Stop()
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(ctx, cleanupWait)
	defer cleanupCancel()
	if err := a.imagesInfra.WaitForCleanup(cleanupCtx); err != nil {
		log.Warnf("MinIO cleanup did not finish before shutdown, some objects may remain: %v", err)
	} else {
		log.Infof("MinIO cleanup completed")
	}
	a.bgCancel()

	if err := a.closer.Close(ctx); err != nil {
		log.Warnf("resources closed with errors: %v", err)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
