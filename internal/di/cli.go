package di

import (
	"Jyotisa/internal/domain/repository"
	"Jyotisa/internal/usecase"
	"Jyotisa/pkg/config"
	applogger "Jyotisa/pkg/logger"
)

// Engines bundles the use cases for offline callers such as chartctl.
// Events and archive sinks are disabled.
type Engines struct {
	Log      *applogger.Logger
	Reports  *usecase.ChartReportUseCase
	Transits *usecase.TransitsUseCase
	Events   *usecase.EventsUseCase
}

// InitializeEngines builds the use cases on the configured ephemeris.
func InitializeEngines(cfg *config.Config) (*Engines, error) {
	l, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	m := repository.NopMetrics{}
	eph := ProvideEphemeris(cfg)
	builder := ProvideChartBuilder(eph, l, m)
	return &Engines{
		Log: l,
		Reports: ProvideChartReportUseCase(builder, ProvideStrengthEstimator(eph, l, m),
			repository.NopPublisher{}, repository.NopArchive{}, cfg, l, m),
		Transits: ProvideTransitsUseCase(builder, ProvideTransitAnalyzer(eph, l, m), cfg, l, m),
		Events:   ProvideEventsUseCase(builder, l, m),
	}, nil
}
