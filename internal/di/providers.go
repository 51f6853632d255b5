package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"TechAnalyst/internal/domain/repository"
	"TechAnalyst/internal/handler/api"
	internalrepo "TechAnalyst/internal/repository"
	icache "TechAnalyst/internal/service/cache"
	"TechAnalyst/internal/service/ratelimit"
	"TechAnalyst/internal/services/analytics"
	"TechAnalyst/internal/usecase"
	pkgch "TechAnalyst/pkg/clickhouse"
	"TechAnalyst/pkg/config"
	xhttp "TechAnalyst/pkg/http"
	pkgkafka "TechAnalyst/pkg/kafka"
	applogger "TechAnalyst/pkg/logger"
	"TechAnalyst/pkg/metrics"
	pkgpg "TechAnalyst/pkg/postgres"
	"TechAnalyst/pkg/server"
)

const initTimeout = 10 * time.Second

// BarBackend is the configured bar store together with the client that owns
// its connections. Closer is nil for the memory backend.
type BarBackend struct {
	Name   string
	Repo   repository.BarRepository
	Closer io.Closer
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the application logger and, when enabled, attaches
// the error collector that ships aggregated logs to Kafka.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Log.Collector.Enabled && producer != nil && cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.FlushInterval,
			CountThreshold: cfg.Log.Collector.CountThreshold,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEngine builds the analysis engine from the analysis section.
func ProvideEngine(cfg *config.Config) (*analytics.Engine, error) {
	ecfg, err := EngineConfig(cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	return analytics.NewEngine(analytics.WithConfig(ecfg))
}

// ProvideBarBackend opens the configured store and ensures its schema.
func ProvideBarBackend(cfg *config.Config, l *applogger.Logger) (*BarBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	switch cfg.Store.Backend {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		if err := client.InitSchema(ctx, internalrepo.CHSchema(client.Database())); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		l.Info("bar store ready", applogger.String("backend", "clickhouse"), applogger.String("database", client.Database()))
		return &BarBackend{Name: "clickhouse", Repo: internalrepo.NewCHBarStore(client, l), Closer: client}, nil

	case "postgres":
		client, err := pkgpg.NewClient(
			pkgpg.WithDSN(cfg.Postgres.DSN),
			pkgpg.WithPool(cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns, cfg.Postgres.ConnMaxLifetime),
		)
		if err != nil {
			return nil, fmt.Errorf("postgres client: %w", err)
		}
		if err := client.InitSchema(ctx, internalrepo.PGSchema); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		l.Info("bar store ready", applogger.String("backend", "postgres"))
		return &BarBackend{Name: "postgres", Repo: internalrepo.NewPGBarStore(client, l), Closer: client}, nil

	default:
		l.Info("bar store ready", applogger.String("backend", "memory"))
		return &BarBackend{Name: "memory", Repo: internalrepo.NewMemoryBarStore()}, nil
	}
}

// ProvideBytesCache returns the Redis cache when configured, else the
// in-process TTL cache swept once per TTL. Both are closed by ProvideApp.
func ProvideBytesCache(cfg *config.Config) (icache.BytesCache, error) {
	if cfg.Cache.Backend != "redis" {
		return icache.NewTTLCache(icache.WithSweepInterval(cfg.Cache.TTL)), nil
	}
	rc := icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rc, nil
}

func ProvideReportCache(cfg *config.Config, store icache.BytesCache) repository.ReportCache {
	return icache.NewReportCache(store, cfg.Cache.TTL)
}

// ProvideReportPublisher publishes to Kafka when a producer exists.
func ProvideReportPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.ReportPublisher {
	if producer == nil {
		return internalrepo.NoopReportPublisher{}
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

func ProvideAnalysisUseCase(
	engine *analytics.Engine,
	backend *BarBackend,
	publisher repository.ReportPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	cache repository.ReportCache,
) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(engine, backend.Repo, publisher, m, l, usecase.WithReportCache(cache))
}

func ProvideBarsUseCase(backend *BarBackend) *usecase.BarsUseCase {
	return usecase.NewBarsUseCase(backend.Repo, backend.Repo)
}

func ProvideStrategiesUseCase(engine *analytics.Engine) *usecase.StrategiesUseCase {
	return usecase.NewStrategiesUseCase(engine)
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

func ProvideHandler(
	l *applogger.Logger,
	analysis *usecase.AnalysisUseCase,
	bars *usecase.BarsUseCase,
	strategies *usecase.StrategiesUseCase,
	backend *BarBackend,
	limiter *ratelimit.Limiter,
) *api.AnalysisEchoHandler {
	return api.NewAnalysisEchoHandler(l, analysis, bars, strategies, backend.Repo, limiter)
}

func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, h *api.AnalysisEchoHandler) *xhttp.Server {
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithMetrics(cfg.Metrics.Enabled),
		xhttp.WithMetricsPath(cfg.Metrics.Path),
		xhttp.WithLogger(l),
	)
}

// ProvideApp assembles the application. Resources close after HTTP stops:
// the publisher, the bar store, the cache, the log collector and last the
// Kafka producer both of them share.
func ProvideApp(
	l *applogger.Logger,
	srv *xhttp.Server,
	publisher repository.ReportPublisher,
	backend *BarBackend,
	cache icache.BytesCache,
	producer *pkgkafka.Producer,
) *server.App {
	closers := []server.Closer{
		{Name: "report publisher", Closer: publisher},
		{Name: "bar store " + backend.Name, Closer: backend.Closer},
	}
	if c, ok := cache.(io.Closer); ok {
		closers = append(closers, server.Closer{Name: "cache", Closer: c})
	}
	closers = append(closers, server.Closer{Name: "log collector", Closer: server.CloserFunc(func() error {
		l.RemoveCollector()
		return nil
	})})
	if producer != nil {
		closers = append(closers, server.Closer{Name: "kafka producer", Closer: producer})
	}
	return server.New(l, srv, closers...)
}
