//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"Jyotisa/pkg/config"
	"Jyotisa/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,
		ProvideAPIMetrics,

		// Engines
		ProvideEphemeris,
		ProvideChartBuilder,
		ProvideStrengthEstimator,
		ProvideTransitAnalyzer,

		// Infrastructure clients and sinks
		ProvideKafkaProducer,
		ProvideChartPublisher,
		ProvideClickHouseClient,
		ProvideChartArchive,
		ProvideRateLimiter,

		// Use cases
		ProvideChartReportUseCase,
		ProvideTransitsUseCase,
		ProvideEventsUseCase,

		// Transports
		ProvideTransitStream,
		ProvideChartHandler,
		ProvideHTTPServer,
		ProvideKafkaConsumer,
		ProvideChartRequestsHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
