package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/inventory-backend/db"
	config "github.com/DRSN-tech/inventory-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/inventory-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/inventory-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/inventory-backend/internal/infrastructure/kafka"
	supplier_service "github.com/DRSN-tech/inventory-backend/internal/infrastructure/supplier-service"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/inventory-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/clients"
	"github.com/DRSN-tech/inventory-backend/pkg/closer"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/DRSN-tech/inventory-backend/pkg/metrics"
	"github.com/DRSN-tech/inventory-backend/pkg/postgres"
	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	healthCheckInterval = 10 * time.Second
	topicCreateTimeout  = 10 * time.Second
	redisPingTimeout    = 5 * time.Second
	forcedCloseTimeout  = 3 * time.Second
)

// App держит собранный граф зависимостей одного сервиса.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	health  *v1Grpc.HealthService
	closer  *closer.Closer

	// фоновые задачи, живущие до сигнала остановки
	background []func(ctx context.Context)
}

func newApp(cfg *config.Config, logger logger.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedCloseTimeout),
	}
}

// NewInventoryApp собирает inventory-service: товары, остатки, кэш, события и клиент supplier-service.
func NewInventoryApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := newApp(cfg, logger)

	if err := a.initInventory(); err != nil {
		a.abort()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

// NewSupplierApp собирает supplier-service.
func NewSupplierApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := newApp(cfg, logger)

	if err := a.initSupplier(); err != nil {
		a.abort()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) initInventory() error {
	database, err := a.initPGDB(db.InventoryMigrations, db.InventoryMigrationsDir)
	if err != nil {
		return err
	}

	productRepo := pgdb.NewProductRepo(database.Pool, pgdbConv.NewProductConverterImpl())
	txManager := tr.NewManager(database.Pool)
	m := metrics.New(a.cfg.ServiceName)

	// Интерфейсы остаются nil, если зависимость выключена.
	var cacheRepo usecase.CacheRepository
	if a.cfg.Redis.Enabled {
		repo, err := a.initCache()
		if err != nil {
			return err
		}
		cacheRepo = repo
	} else {
		a.logger.Infof("REDIS_ADDR is not set, product cache disabled")
	}

	var outboxRepo usecase.OutboxRepository
	if a.cfg.Kafka.Enabled {
		repo := pgdb.NewOutboxEventRepo(database.Pool, pgdbConv.NewOutboxEventConverterImpl())
		a.initOutbox(repo, database.Dsn)
		outboxRepo = repo
	} else {
		a.logger.Infof("KAFKA_BROKERS is not set, stock events disabled")
	}

	supplierClient := supplier_service.NewSupplierService(a.cfg.Supplier, a.logger)

	productUC := usecase.NewProductUC(
		productRepo,
		txManager,
		supplierClient,
		cacheRepo,
		outboxRepo,
		m,
		a.logger,
	)

	router := v1Http.NewRouter(chi.NewRouter(), a.cfg.ServiceName, m, database, a.logger)
	router.InitInventory(productUC)
	a.initServers(router, database)

	return nil
}

func (a *App) initSupplier() error {
	database, err := a.initPGDB(db.SupplierMigrations, db.SupplierMigrationsDir)
	if err != nil {
		return err
	}

	supplierRepo := pgdb.NewSupplierRepo(database.Pool, pgdbConv.NewSupplierConverterImpl())
	txManager := tr.NewManager(database.Pool)
	m := metrics.New(a.cfg.ServiceName)

	if !a.cfg.Policy.EnforceUnique {
		a.logger.Warnf("SUPPLIER_ENFORCE_UNIQUE=false, duplicate supplier names and emails are allowed")
	}

	supplierUC := usecase.NewSupplierUC(supplierRepo, txManager, a.cfg.Policy.EnforceUnique, a.logger)

	router := v1Http.NewRouter(chi.NewRouter(), a.cfg.ServiceName, m, database, a.logger)
	router.InitSupplier(supplierUC)
	a.initServers(router, database)

	return nil
}

func (a *App) initPGDB(migrations fs.FS, dir string) (*postgres.PgDatabase, error) {
	database, err := postgres.Connect(a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddFunc("postgres", database.Close)

	if err := database.RunMigrations(a.logger, migrations, dir); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return database, nil
}

func (a *App) initCache() (*redis.CacheRepo, error) {
	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddErrFunc("redis", redisClient.Close)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewCacheRepo(redisClient, redisConv.NewProductConverterImpl(), a.cfg.Redis, a.logger), nil
}

func (a *App) initOutbox(repo usecase.OutboxRepository, dsn string) {
	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.AddErrFunc("kafka producer", producer.Close)

	// Топик может создаваться брокером автоматически, поэтому ошибка не фатальна.
	if err := producer.EnsureTopic(topicCreateTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	worker := kafka.NewOutboxWorker(repo, a.logger, producer, dsn, pgdb.OutboxNotifyChannel, a.cfg.Kafka.BatchSize)
	a.closer.Add("outbox worker", worker.Stop)
	a.background = append(a.background, worker.Start)
}

func (a *App) initServers(router *v1Http.Router, pinger v1Grpc.Pinger) {
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.health = v1Grpc.NewHealthService(a.cfg.ServiceName, pinger, healthCheckInterval, a.logger)
	a.grpcSrv.RegisterHealth(a.health)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	a.httpSrv = v1Http.NewServer(router.Handler(), a.cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	// Закрывается первым: NOT_SERVING выставляется до остановки серверов.
	a.closer.Add("health", a.health.Shutdown)
	a.background = append(a.background, a.health.Run)
}

// Run запускает серверы и блокируется до сигнала остановки или падения сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	for _, start := range a.background {
		go start(bgCtx)
	}

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("%s HTTP server started on port %s", a.cfg.ServiceName, a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Http.ShutdownTimeout)
	defer cancel()

	bgCancel()
	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// abort освобождает ресурсы, успевшие открыться до ошибки сборки.
func (a *App) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), forcedCloseTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("cleanup after failed start: %v", err)
	}
}
