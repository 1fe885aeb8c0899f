package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"Jyotisa/internal/domain/models"
	domrepo "Jyotisa/internal/domain/repository"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/internal/services/jyotisa"
	applogger "Jyotisa/pkg/logger"
)

// sinkTimeout bounds best-effort publish and archive calls.
const sinkTimeout = 2 * time.Second

// ChartReportUseCase computes the full-chart aggregate.
type ChartReportUseCase struct {
	builder    domsvc.ChartBuilder
	strength   domsvc.StrengthEstimator
	publisher  domrepo.ChartPublisher
	archive    domrepo.ChartArchive
	scheme     []int
	westernOrb float64
	deps
}

func NewChartReportUseCase(
	builder domsvc.ChartBuilder,
	strength domsvc.StrengthEstimator,
	publisher domrepo.ChartPublisher,
	archive domrepo.ChartArchive,
	scheme []int,
	westernOrb float64,
	opts ...Option,
) *ChartReportUseCase {
	if publisher == nil {
		publisher = domrepo.NopPublisher{}
	}
	if archive == nil {
		archive = domrepo.NopArchive{}
	}
	if len(scheme) == 0 {
		scheme = jyotisa.DefaultScheme
	}
	return &ChartReportUseCase{
		builder:    builder,
		strength:   strength,
		publisher:  publisher,
		archive:    archive,
		scheme:     scheme,
		westernOrb: westernOrb,
		deps:       newDeps(opts),
	}
}

// Report builds the chart, then runs divisional, dasha, strength and aspect
// engines concurrently and detects yogas from the result. requestID is
// carried on the published summary and may be empty.
func (uc *ChartReportUseCase) Report(ctx context.Context, in models.BirthInput, requestID string) (rep *models.ChartReport, err error) {
	start := uc.clock()
	defer func() { uc.observe("chart", start, err) }()

	chart, err := uc.builder.Build(ctx, in)
	if err != nil {
		return nil, err
	}

	var (
		divisional []models.DivisionalChart
		dasha      *models.DashaTimeline
		strength   models.StrengthTable
		aspects    models.AspectSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		divisional, err = jyotisa.Divisionals(chart, uc.scheme)
		return err
	})
	g.Go(func() (err error) {
		dasha, err = jyotisa.Vimshottari(chart)
		return err
	})
	g.Go(func() (err error) {
		strength, err = uc.strength.Estimate(gctx, chart)
		return err
	})
	g.Go(func() error {
		aspects = jyotisa.Aspects(chart, uc.westernOrb)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep = &models.ChartReport{
		Ayanamsa:   chart.Ayanamsa,
		Chart:      chart,
		Divisional: divisional,
		Dasha:      dasha,
		Strength:   strength,
		Aspects:    aspects,
		Yogas:      jyotisa.DetectYogas(chart, aspects.Vedic),
		Warnings:   chart.Warnings,
	}
	uc.emit(ctx, in, requestID, rep, uc.clock().Sub(start))
	return rep, nil
}

// emit publishes the summary and archives the audit row. Failures are
// logged and never fail the computation.
func (uc *ChartReportUseCase) emit(ctx context.Context, in models.BirthInput, requestID string, rep *models.ChartReport, took time.Duration) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	now := uc.clock().UTC()
	ev := &models.ChartComputed{
		RequestID:     requestID,
		ComputedAt:    now,
		Birth:         in,
		Ayanamsa:      rep.Ayanamsa,
		AscendantSign: rep.Chart.AscendantSign(),
		Nakshatra:     rep.Dasha.Nakshatra,
		DashaRuler:    rep.Dasha.Ruler,
		Yogas:         rep.Yogas,
	}
	if err := uc.publisher.PublishComputed(ctx, ev); err != nil {
		uc.log.Warn("publish chart summary", applogger.String("request_id", requestID), applogger.Error(err))
	}

	rec := &models.ComputationRecord{
		Time:          now,
		Operation:     "chart",
		BirthDate:     in.Date,
		BirthTime:     in.Time,
		UTCOffset:     in.UTCOffset,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Ayanamsa:      rep.Ayanamsa,
		AscendantSign: ev.AscendantSign,
		Nakshatra:     ev.Nakshatra,
		DashaRuler:    ev.DashaRuler,
		Duration:      took,
	}
	if err := uc.archive.Store(ctx, rec); err != nil {
		uc.log.Warn("archive chart", applogger.String("request_id", requestID), applogger.Error(err))
	}
}
