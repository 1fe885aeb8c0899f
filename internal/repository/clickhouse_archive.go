package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	applogger "Jyotisa/pkg/logger"
)

const computationsTable = "chart_computations"

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + computationsTable + ` (
        ts             DateTime64(3, 'UTC'),
        operation      LowCardinality(String),
        birth_date     String,
        birth_time     String,
        utc_offset     Float64,
        lat            Float64,
        lon            Float64,
        ayanamsa       LowCardinality(String),
        ascendant_sign UInt8,
        nakshatra      LowCardinality(String),
        dasha_ruler    LowCardinality(String),
        duration_ms    Float64
    ) ENGINE = MergeTree
    PARTITION BY toYYYYMM(ts)
    ORDER BY (operation, ts)`,
}

const insertComputation = `INSERT INTO ` + computationsTable + ` (ts, operation, birth_date, birth_time, utc_offset, lat, lon, ayanamsa, ascendant_sign, nakshatra, dasha_ruler, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// batchClient is the subset of pkg/clickhouse.Client the archive needs.
type batchClient interface {
	InitSchema(ctx context.Context, stmts []string) error
	InsertBatch(ctx context.Context, query string, rows [][]any) error
	Health(ctx context.Context) error
	Close() error
}

// ClickHouseArchive buffers computation records and writes them in blocks.
type ClickHouseArchive struct {
	client    batchClient
	log       *applogger.Logger
	batchSize int
	interval  time.Duration

	mu      sync.Mutex
	pending []*models.ComputationRecord

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewClickHouseArchive(client batchClient, l *applogger.Logger, batchSize int, interval time.Duration) *ClickHouseArchive {
	if batchSize <= 0 {
		batchSize = 500
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &ClickHouseArchive{
		client:    client,
		log:       l,
		batchSize: batchSize,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Init creates the table and starts the periodic flush.
func (a *ClickHouseArchive) Init(ctx context.Context) error {
	if err := a.client.InitSchema(ctx, archiveSchema); err != nil {
		return err
	}
	go a.loop()
	return nil
}

// Store queues rec and flushes once a full batch is pending.
func (a *ClickHouseArchive) Store(ctx context.Context, rec *models.ComputationRecord) error {
	a.mu.Lock()
	a.pending = append(a.pending, rec)
	full := len(a.pending) >= a.batchSize
	a.mu.Unlock()

	if full {
		return a.Flush(ctx)
	}
	return nil
}

// Flush writes every pending record. Failed rows are dropped.
func (a *ClickHouseArchive) Flush(ctx context.Context) error {
	a.mu.Lock()
	batch := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(batch))
	for _, r := range batch {
		rows = append(rows, []any{
			r.Time.UTC(),
			r.Operation,
			r.BirthDate,
			r.BirthTime,
			r.UTCOffset,
			r.Latitude,
			r.Longitude,
			string(r.Ayanamsa),
			uint8(r.AscendantSign),
			r.Nakshatra,
			string(r.DashaRuler),
			float64(r.Duration) / float64(time.Millisecond),
		})
	}
	if err := a.client.InsertBatch(ctx, insertComputation, rows); err != nil {
		return fmt.Errorf("archive %d records: %w", len(rows), err)
	}
	return nil
}

func (a *ClickHouseArchive) loop() {
	defer close(a.done)
	t := time.NewTicker(a.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), a.interval)
			if err := a.Flush(ctx); err != nil {
				a.log.Error("archive flush", applogger.Error(err))
			}
			cancel()
		case <-a.stop:
			return
		}
	}
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

// Close stops the flush loop, writes what is pending and closes the client.
func (a *ClickHouseArchive) Close() error {
	var err error
	a.once.Do(func() {
		close(a.stop)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = a.Flush(ctx)
		if cerr := a.client.Close(); err == nil {
			err = cerr
		}
	})
	return err
}

var _ repository.ChartArchive = (*ClickHouseArchive)(nil)
