package repository

import (
	"context"
	"time"

	"Jyotisa/internal/domain/models"
)

// Ephemeris is the raw astronomical provider. The ayanamsa is explicit on
// every sidereal query so concurrent charts never share a global mode.
type Ephemeris interface {
	LongitudeAndSpeed(ctx context.Context, m models.Moment, body models.Body, ayanamsa models.Ayanamsa) (lon, speed float64, err error)
	HouseCusps(ctx context.Context, m models.Moment, lat, lon float64, ayanamsa models.Ayanamsa) (cusps [12]float64, ascendant float64, err error)
	Sunrise(ctx context.Context, m models.Moment, lon, lat float64) (models.Moment, error)
}

// ChartPublisher emits computed chart summaries and results.
type ChartPublisher interface {
	PublishComputed(ctx context.Context, ev *models.ChartComputed) error
	PublishResult(ctx context.Context, res *models.ChartResultMessage) error
	Close() error
}

// ChartArchive appends computation audit rows.
type ChartArchive interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, rec *models.ComputationRecord) error
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordComputation(op string, seconds float64, err error)
	RecordAyanamsaFallback(requested string)
	RecordSunriseFallback()
	RecordProviderError(op string)
}

// NopPublisher discards everything.
type NopPublisher struct{}

func (NopPublisher) PublishComputed(context.Context, *models.ChartComputed) error { return nil }
func (NopPublisher) PublishResult(context.Context, *models.ChartResultMessage) error { return nil }
func (NopPublisher) Close() error { return nil }

// NopArchive discards every record.
type NopArchive struct{}

func (NopArchive) Init(context.Context) error { return nil }
func (NopArchive) Store(context.Context, *models.ComputationRecord) error { return nil }
func (NopArchive) Health(context.Context) error { return nil }
func (NopArchive) Close() error { return nil }

// NopMetrics records nothing.
type NopMetrics struct{}

func (NopMetrics) RecordComputation(string, float64, error) {}
func (NopMetrics) RecordAyanamsaFallback(string) {}
func (NopMetrics) RecordSunriseFallback() {}
func (NopMetrics) RecordProviderError(string) {}

// Clock returns the current instant.
type Clock func() time.Time

var (
	_ ChartPublisher = NopPublisher{}
	_ ChartArchive   = NopArchive{}
	_ Metrics        = NopMetrics{}
)
