package kafka

import (
	"time"

	"Jyotisa/pkg/config"
)

// ProducerOption configures Producer.
type ProducerOption func(*ProducerConfig)

// ProducerConfig holds producer configuration.
type ProducerConfig struct {
	Brokers      []string
	RequiredAcks int
	Compression  string
	MaxAttempts  int
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	BatchSize    int
	BatchBytes   int
	BatchTimeout time.Duration
	Async        bool
	HashByKey    bool
}

// ProducerOptions maps the application kafka section onto producer options.
// Messages are keyed by request id, so the hash balancer keeps a request's
// messages on one partition.
func ProducerOptions(cfg *config.Config) []ProducerOption {
	k := cfg.Kafka
	return []ProducerOption{
		WithBrokers(k.Brokers),
		WithRequiredAcks(k.RequiredAcks),
		WithCompression(k.Compression),
		WithMaxAttempts(k.Producer.MaxAttempts),
		WithBatchSize(k.Producer.BatchSize),
		WithBatchBytes(k.Producer.BatchBytes),
		WithBatchTimeout(k.Producer.Linger),
		WithTimeouts(k.Producer.WriteTimeout, k.Producer.ReadTimeout),
		WithAsync(k.Producer.Async),
		WithHashByKey(true),
	}
}

// ConsumerOptions maps the application kafka consumer section onto options.
func ConsumerOptions(cfg *config.Config) []ConsumerOption {
	k := cfg.Kafka
	c := k.Consumer
	return []ConsumerOption{
		WithConsumerBrokers(k.Brokers),
		WithConsumerGroupID(c.GroupID),
		WithConsumerWorkers(c.Workers),
		WithConsumerBufferSize(c.BufferSize),
		WithConsumerRetry(c.RetryMax, c.BackoffMin, c.BackoffMax),
		WithConsumerDLQ(c.DLQTopic),
		WithConsumerFetch(c.MinBytes, c.MaxBytes),
	}
}

// WithBrokers sets Kafka brokers.
func WithBrokers(brokers []string) ProducerOption {
	return func(c *ProducerConfig) { c.Brokers = brokers }
}

// WithCompression sets compression type.
func WithCompression(compression string) ProducerOption {
	return func(c *ProducerConfig) { c.Compression = compression }
}

// WithRequiredAcks sets required acknowledgements (-1 = all).
func WithRequiredAcks(acks int) ProducerOption {
	return func(c *ProducerConfig) { c.RequiredAcks = acks }
}

// WithMaxAttempts sets max retry attempts by the writer.
func WithMaxAttempts(n int) ProducerOption {
	return func(c *ProducerConfig) { c.MaxAttempts = n }
}

func WithBatchSize(size int) ProducerOption {
	return func(c *ProducerConfig) { c.BatchSize = size }
}

func WithBatchTimeout(timeout time.Duration) ProducerOption {
	return func(c *ProducerConfig) { c.BatchTimeout = timeout }
}

// WithBatchBytes sets target aggregate batch bytes.
func WithBatchBytes(bytes int) ProducerOption {
	return func(c *ProducerConfig) { c.BatchBytes = bytes }
}

// WithTimeouts sets writer read/write timeouts.
func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		c.WriteTimeout = write
		c.ReadTimeout = read
	}
}

// WithAsync toggles fire-and-forget writes.
func WithAsync(async bool) ProducerOption {
	return func(c *ProducerConfig) { c.Async = async }
}

// WithHashByKey selects the hash balancer for per-key ordering.
func WithHashByKey(hash bool) ProducerOption {
	return func(c *ProducerConfig) { c.HashByKey = hash }
}
