package usecase

import (
	"time"

	domrepo "Jyotisa/internal/domain/repository"
	applogger "Jyotisa/pkg/logger"
)

type deps struct {
	log     *applogger.Logger
	metrics domrepo.Metrics
	clock   domrepo.Clock
}

// Option configures the chart use cases.
type Option func(*deps)

func WithLogger(l *applogger.Logger) Option {
	return func(d *deps) { d.log = l }
}

func WithMetrics(m domrepo.Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

// WithClock overrides time.Now, for deterministic reports.
func WithClock(c domrepo.Clock) Option {
	return func(d *deps) { d.clock = c }
}

func newDeps(opts []Option) deps {
	d := deps{}
	for _, opt := range opts {
		opt(&d)
	}
	if d.log == nil {
		d.log = applogger.NewNop()
	}
	if d.metrics == nil {
		d.metrics = domrepo.NopMetrics{}
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	return d
}

// observe records one computation outcome.
func (d deps) observe(op string, start time.Time, err error) {
	d.metrics.RecordComputation(op, d.clock().Sub(start).Seconds(), err)
}
