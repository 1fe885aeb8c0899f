package jyotisa

import (
	"Jyotisa/internal/domain/repository"
	"Jyotisa/pkg/logger"
)

type options struct {
	log     *logger.Logger
	metrics repository.Metrics
}

// Option configures the provider-backed engines.
type Option func(*options)

// WithLogger sets the logger used for recovered conditions.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m repository.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.NewNop(), metrics: repository.NopMetrics{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	if o.metrics == nil {
		o.metrics = repository.NopMetrics{}
	}
	return o
}
