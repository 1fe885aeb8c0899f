package di

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"Jyotisa/internal/domain/repository"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/internal/handler/api"
	internalrepo "Jyotisa/internal/repository"
	apimetrics "Jyotisa/internal/service/metrics"
	"Jyotisa/internal/service/ratelimit"
	"Jyotisa/internal/services/ephemeris"
	"Jyotisa/internal/services/jyotisa"
	"Jyotisa/internal/usecase"
	pkgch "Jyotisa/pkg/clickhouse"
	"Jyotisa/pkg/config"
	xhttp "Jyotisa/pkg/http"
	"Jyotisa/pkg/http/middleware"
	pkgkafka "Jyotisa/pkg/kafka"
	applogger "Jyotisa/pkg/logger"
	"Jyotisa/pkg/metrics"
	"Jyotisa/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("service", "jyotisa"), applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideAPIMetrics creates the HTTP and stream metrics.
func ProvideAPIMetrics() *apimetrics.API {
	return apimetrics.NewAPI(prometheus.DefaultRegisterer)
}

// ProvideEphemeris creates the HTTP-backed ephemeris provider. A modal
// service is serialized behind a lock.
func ProvideEphemeris(cfg *config.Config) repository.Ephemeris {
	if cfg.Ephemeris.Mode == "modal" {
		return ephemeris.NewSerialized(ephemeris.NewModalHTTPProvider(cfg))
	}
	return ephemeris.NewHTTPProvider(cfg)
}

// ProvideChartBuilder creates the natal chart builder.
func ProvideChartBuilder(eph repository.Ephemeris, l *applogger.Logger, m repository.Metrics) domsvc.ChartBuilder {
	return jyotisa.NewChartBuilder(eph, jyotisa.WithLogger(l), jyotisa.WithMetrics(m))
}

// ProvideStrengthEstimator creates the planetary strength estimator.
func ProvideStrengthEstimator(eph repository.Ephemeris, l *applogger.Logger, m repository.Metrics) domsvc.StrengthEstimator {
	return jyotisa.NewStrengthEstimator(eph, jyotisa.WithLogger(l), jyotisa.WithMetrics(m))
}

// ProvideTransitAnalyzer creates the transit analyzer.
func ProvideTransitAnalyzer(eph repository.Ephemeris, l *applogger.Logger, m repository.Metrics) domsvc.TransitAnalyzer {
	return jyotisa.NewTransitAnalyzer(eph, jyotisa.WithLogger(l), jyotisa.WithMetrics(m))
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.ProducerOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideChartPublisher publishes chart events to Kafka when a producer exists.
func ProvideChartPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ChartPublisher {
	if producer == nil {
		return repository.NopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topics.Events, cfg.Kafka.Topics.Results)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ClickHouse.DialTimeout)
	defer cancel()
	client, err := pkgch.NewClient(ctx, pkgch.FromConfig(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideChartArchive archives computations to ClickHouse when a client exists.
func ProvideChartArchive(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.ChartArchive {
	if client == nil {
		return repository.NopArchive{}
	}
	return internalrepo.NewClickHouseArchive(client, l, cfg.ClickHouse.BatchSize, cfg.ClickHouse.FlushInterval)
}

// ProvideRateLimiter creates the request limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) middleware.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil
	}
	if rl.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     rl.Redis.Addr,
			Password: rl.Redis.Password,
			DB:       rl.Redis.DB,
		})
		return ratelimit.NewRedisLimiter(client, rl.Redis.Prefix, rl.Capacity, rl.Window)
	}
	return ratelimit.NewTokenBucket(rl.Capacity, rl.Window)
}

// ProvideChartReportUseCase creates the full report use case.
func ProvideChartReportUseCase(
	builder domsvc.ChartBuilder,
	strength domsvc.StrengthEstimator,
	publisher repository.ChartPublisher,
	archive repository.ChartArchive,
	cfg *config.Config,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.ChartReportUseCase {
	return usecase.NewChartReportUseCase(builder, strength, publisher, archive,
		cfg.Engine.DivisionalScheme, cfg.Engine.WesternOrb,
		usecase.WithLogger(l), usecase.WithMetrics(m))
}

// ProvideTransitsUseCase creates the transit use case.
func ProvideTransitsUseCase(builder domsvc.ChartBuilder, analyzer domsvc.TransitAnalyzer, cfg *config.Config, l *applogger.Logger, m repository.Metrics) *usecase.TransitsUseCase {
	return usecase.NewTransitsUseCase(builder, analyzer, cfg.Engine.TransitOrb, usecase.WithLogger(l), usecase.WithMetrics(m))
}

// ProvideEventsUseCase creates the life-event use case.
func ProvideEventsUseCase(builder domsvc.ChartBuilder, l *applogger.Logger, m repository.Metrics) *usecase.EventsUseCase {
	return usecase.NewEventsUseCase(builder, usecase.WithLogger(l), usecase.WithMetrics(m))
}

// ProvideTransitStream creates the websocket transit feed.
func ProvideTransitStream(transits *usecase.TransitsUseCase, cfg *config.Config, l *applogger.Logger, m *apimetrics.API) *api.TransitStream {
	return api.NewTransitStream(transits, cfg.Stream.Interval, l, m)
}

// ProvideChartHandler creates the HTTP handler.
func ProvideChartHandler(
	l *applogger.Logger,
	reports *usecase.ChartReportUseCase,
	transits *usecase.TransitsUseCase,
	events *usecase.EventsUseCase,
	stream *api.TransitStream,
	m *apimetrics.API,
) xhttp.Handler {
	return api.NewChartEchoHandler(l, reports, transits, events, stream, m)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger, limiter middleware.Limiter) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts = append(opts, xhttp.WithMetricsPath(metricsPath))
	if limiter != nil {
		opts = append(opts, xhttp.WithRateLimiter(limiter))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideKafkaConsumer creates a Kafka consumer, or nil when consumption is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	opts := append(pkgkafka.ConsumerOptions(cfg), pkgkafka.WithConsumerLogger(l))
	consumer, err := pkgkafka.NewConsumer(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideChartRequestsHandler answers chart requests from the requests topic.
func ProvideChartRequestsHandler(
	consumer *pkgkafka.Consumer,
	cfg *config.Config,
	reports *usecase.ChartReportUseCase,
	publisher repository.ChartPublisher,
	l *applogger.Logger,
) pkgkafka.MessageHandler {
	if consumer == nil {
		return nil
	}
	return usecase.NewChartRequestsHandler(cfg.Kafka.Topics.Requests, reports, publisher, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	producer *pkgkafka.Producer,
	publisher repository.ChartPublisher,
	archive repository.ChartArchive,
	limiter middleware.Limiter,
) *server.App {
	if producer != nil && cfg.Log.Collect {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.FlushInterval,
			CountThreshold: cfg.Log.FlushCount,
			Topic:          cfg.Kafka.Topics.Logs,
			Publisher:      producer,
		})
	}
	app := server.New(cfg, l, httpServer, consumer, kh, publisher, archive)
	if c, ok := limiter.(io.Closer); ok {
		app.OnShutdown(c)
	}
	return app
}
