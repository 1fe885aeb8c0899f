package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "Jyotisa/internal/domain/repository"
	"Jyotisa/pkg/config"
	xhttp "Jyotisa/pkg/http"
	pkgkafka "Jyotisa/pkg/kafka"
	applogger "Jyotisa/pkg/logger"
)

// App encapsulates the service lifecycle.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	http      *xhttp.Server
	consumer  *pkgkafka.Consumer
	kh        pkgkafka.MessageHandler
	publisher domrepo.ChartPublisher
	archive   domrepo.ChartArchive
	closers   []io.Closer
}

// New creates an App. consumer and kh may be nil when Kafka is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	publisher domrepo.ChartPublisher,
	archive domrepo.ChartArchive,
) *App {
	return &App{
		cfg:       cfg,
		log:       l,
		http:      httpServer,
		consumer:  consumer,
		kh:        kh,
		publisher: publisher,
		archive:   archive,
	}
}

// OnShutdown registers resources closed last, in registration order.
func (a *App) OnShutdown(c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, c)
	}
}

// Run starts every component and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Start initializes the archive, the consumer and the HTTP server.
func (a *App) Start(ctx context.Context) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.archive.Init(initCtx); err != nil {
		return fmt.Errorf("archive init: %w", err)
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.http.Start(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	a.log.Info("jyotisa started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("ephemeris", a.cfg.Ephemeris.URL))
	return nil
}

// Shutdown stops intake first, then flushes sinks.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.http.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	if err := a.archive.Close(); err != nil {
		a.log.Warn("archive close error", applogger.Error(err))
	}
	// flush aggregated logs while the producer is still open
	a.log.RemoveCollector()
	if err := a.publisher.Close(); err != nil {
		a.log.Warn("publisher close error", applogger.Error(err))
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}
	a.log.Info("shutdown complete")
	return nil
}
