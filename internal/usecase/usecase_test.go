package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/services/ephemeris/ephemeristest"
	"Jyotisa/internal/services/jyotisa"
)

var fixedNow = time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func birth() models.BirthInput {
	return models.BirthInput{
		Date:      "2000-01-01",
		Time:      "17:30",
		UTCOffset: 5.5,
		Latitude:  12.97,
		Longitude: 77.59,
		Ayanamsa:  "LAHIRI",
	}
}

// natalFake puts the Moon at the start of Rohini and Jupiter in a kendra from it.
func natalFake() *ephemeristest.Fake {
	return ephemeristest.New().
		With(models.Moon, 40, 13).
		With(models.Jupiter, 130, 0.1).
		With(models.Venus, 200, 1.2).
		WithAscendant(5)
}

type recordingPublisher struct {
	mu       sync.Mutex
	computed []*models.ChartComputed
	results  []*models.ChartResultMessage
	err      error
}

func (p *recordingPublisher) PublishComputed(_ context.Context, ev *models.ChartComputed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.computed = append(p.computed, ev)
	return p.err
}

func (p *recordingPublisher) PublishResult(_ context.Context, res *models.ChartResultMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, res)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingArchive struct {
	records []*models.ComputationRecord
	err     error
}

func (a *recordingArchive) Init(context.Context) error { return nil }

func (a *recordingArchive) Store(_ context.Context, rec *models.ComputationRecord) error {
	a.records = append(a.records, rec)
	return a.err
}

func (a *recordingArchive) Health(context.Context) error { return nil }
func (a *recordingArchive) Close() error                 { return nil }

type opMetrics struct {
	mu  sync.Mutex
	ops map[string][]error
}

func (m *opMetrics) RecordComputation(op string, _ float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ops == nil {
		m.ops = map[string][]error{}
	}
	m.ops[op] = append(m.ops[op], err)
}

func (m *opMetrics) RecordAyanamsaFallback(string) {}
func (m *opMetrics) RecordSunriseFallback()        {}
func (m *opMetrics) RecordProviderError(string)    {}

func newReports(fake *ephemeristest.Fake, pub *recordingPublisher, arch *recordingArchive, m *opMetrics) *ChartReportUseCase {
	return NewChartReportUseCase(
		jyotisa.NewChartBuilder(fake),
		jyotisa.NewStrengthEstimator(fake),
		pub, arch, nil, jyotisa.DefaultWesternOrb,
		WithClock(clock), WithMetrics(m),
	)
}

func TestChartReport(t *testing.T) {
	pub, arch, m := &recordingPublisher{}, &recordingArchive{}, &opMetrics{}
	uc := newReports(natalFake(), pub, arch, m)

	rep, err := uc.Report(context.Background(), birth(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, models.Lahiri, rep.Ayanamsa)
	assert.Len(t, rep.Chart.Bodies, 9)
	require.Len(t, rep.Divisional, len(jyotisa.DefaultScheme))
	assert.Equal(t, 1, rep.Divisional[0].Division)
	assert.Equal(t, models.Sign(1), rep.Divisional[0].Signs[models.Moon])

	require.NotNil(t, rep.Dasha)
	assert.Equal(t, "Rohini", rep.Dasha.Nakshatra)
	assert.Equal(t, models.Moon, rep.Dasha.Ruler)
	assert.Len(t, rep.Dasha.Antardashas, 9)

	assert.Len(t, rep.Strength, 7)
	assert.NotEmpty(t, rep.Aspects.Vedic)
	assert.Contains(t, rep.Yogas, "Gaja Kesari Yoga (Jupiter-Moon in mutual kendras)")
	assert.Empty(t, rep.Warnings)

	require.Len(t, pub.computed, 1)
	ev := pub.computed[0]
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, fixedNow, ev.ComputedAt)
	assert.Equal(t, models.Moon, ev.DashaRuler)
	assert.Equal(t, models.Sign(0), ev.AscendantSign)

	require.Len(t, arch.records, 1)
	assert.Equal(t, "chart", arch.records[0].Operation)
	assert.Equal(t, "Rohini", arch.records[0].Nakshatra)

	assert.Equal(t, []error{nil}, m.ops["chart"])
}

func TestChartReportSinkFailuresAreNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("kafka down")}
	arch := &recordingArchive{err: errors.New("clickhouse down")}
	uc := newReports(natalFake(), pub, arch, &opMetrics{})

	rep, err := uc.Report(context.Background(), birth(), "")
	require.NoError(t, err)
	assert.NotNil(t, rep)
	assert.Len(t, pub.computed, 1)
	assert.Len(t, arch.records, 1)
}

func TestChartReportUnknownAyanamsaWarns(t *testing.T) {
	uc := newReports(natalFake(), &recordingPublisher{}, &recordingArchive{}, &opMetrics{})
	in := birth()
	in.Ayanamsa = "FAGAN"

	rep, err := uc.Report(context.Background(), in, "")
	require.NoError(t, err)
	assert.Equal(t, models.Lahiri, rep.Ayanamsa)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "FAGAN")
}

func TestChartReportInputErrorSkipsProvider(t *testing.T) {
	fake := natalFake()
	m := &opMetrics{}
	uc := newReports(fake, &recordingPublisher{}, &recordingArchive{}, m)
	in := birth()
	in.Time = "25:99"

	_, err := uc.Report(context.Background(), in, "")
	var ie *models.InputError
	require.ErrorAs(t, err, &ie)
	assert.Empty(t, fake.Calls())
	require.Len(t, m.ops["chart"], 1)
	assert.Error(t, m.ops["chart"][0])
}

func TestChartReportProviderFailure(t *testing.T) {
	fake := natalFake()
	fake.Err = errors.New("ephemeris offline")
	pub := &recordingPublisher{}
	uc := newReports(fake, pub, &recordingArchive{}, &opMetrics{})

	_, err := uc.Report(context.Background(), birth(), "")
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.Empty(t, pub.computed)
}

func TestTransitsNow(t *testing.T) {
	fake := natalFake()
	uc := NewTransitsUseCase(jyotisa.NewChartBuilder(fake), jyotisa.NewTransitAnalyzer(fake), jyotisa.DefaultTransitOrb, WithClock(clock))

	snap, err := uc.Now(context.Background(), 12.97, 77.59)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, snap.ComputedAt)
	assert.Equal(t, models.MomentOf(fixedNow), snap.Transits.Moment)
	assert.Equal(t, models.Lahiri, snap.Transits.Ayanamsa)
	assert.Len(t, snap.Transits.Bodies, 8)

	_, err = uc.Now(context.Background(), 91, 0)
	var ie *models.InputError
	assert.ErrorAs(t, err, &ie)

	at := time.Date(2024, 3, 20, 3, 6, 0, 0, time.FixedZone("IST", 19800))
	snap, err = uc.At(context.Background(), 0, 0, at)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, snap.ComputedAt.Location())
	assert.Equal(t, models.MomentOf(at), snap.Transits.Moment)
}

func TestTransitHits(t *testing.T) {
	fake := natalFake()
	fake.Offsets[models.Raman] = 1.5
	uc := NewTransitsUseCase(jyotisa.NewChartBuilder(fake), jyotisa.NewTransitAnalyzer(fake), jyotisa.DefaultTransitOrb, WithClock(clock))

	in := birth()
	in.Ayanamsa = "RAMAN"
	rep, err := uc.Hits(context.Background(), in, jyotisa.DefaultTransitOrb)
	require.NoError(t, err)

	assert.Equal(t, "2000-01-01", rep.NatalDate)
	assert.Equal(t, len(rep.Hits), rep.TotalHits)
	require.NotEmpty(t, rep.Hits)
	for _, h := range rep.Hits {
		assert.Equal(t, models.Conjunction, h.Aspect)
		assert.LessOrEqual(t, h.Orb, jyotisa.DefaultTransitOrb)
	}
	// natal Moon is 1.5 degrees behind the transiting Moon
	assert.Contains(t, rep.Hits, models.TransitHit{
		TransitBody: models.Moon, NatalBody: models.Moon, Aspect: models.Conjunction, Orb: 1.5, Exact: false,
	})

	_, err = uc.Hits(context.Background(), in, -1)
	var ie *models.InputError
	assert.ErrorAs(t, err, &ie)
}

func TestTransitsDefaultOrb(t *testing.T) {
	fake := natalFake()
	uc := NewTransitsUseCase(jyotisa.NewChartBuilder(fake), jyotisa.NewTransitAnalyzer(fake), 0)
	assert.Zero(t, uc.DefaultOrb())

	uc = NewTransitsUseCase(jyotisa.NewChartBuilder(fake), jyotisa.NewTransitAnalyzer(fake), 5)
	assert.Equal(t, 5.0, uc.DefaultOrb())

	uc = NewTransitsUseCase(jyotisa.NewChartBuilder(fake), jyotisa.NewTransitAnalyzer(fake), -1)
	assert.Equal(t, jyotisa.DefaultTransitOrb, uc.DefaultOrb())
}

func TestEventAnalysis(t *testing.T) {
	fake := natalFake()
	uc := NewEventsUseCase(jyotisa.NewChartBuilder(fake), WithClock(clock))

	// 2026 falls in the Rahu Mahadasha for a Rohini-start 2000 birth.
	rep, err := uc.Analyze(context.Background(), birth(), "Health")
	require.NoError(t, err)
	assert.Equal(t, models.Rahu, rep.DashaLord)
	assert.Equal(t, []int{1, 6, 8, 12}, rep.RelevantHouses)
	assert.Equal(t, 1, rep.Analysis.LordHouse)
	assert.True(t, rep.Analysis.Favorable)

	rep, err = uc.Analyze(context.Background(), birth(), "children")
	require.NoError(t, err)
	assert.False(t, rep.Analysis.Favorable)
}

func TestEventAnalysisUnknownCategory(t *testing.T) {
	fake := natalFake()
	uc := NewEventsUseCase(jyotisa.NewChartBuilder(fake), WithClock(clock))

	_, err := uc.Analyze(context.Background(), birth(), "lottery")
	assert.ErrorIs(t, err, models.ErrUnknownEventCategory)
	assert.Empty(t, fake.Calls())
}

func TestChartRequestsHandler(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newReports(natalFake(), pub, &recordingArchive{}, &opMetrics{})
	h := NewChartRequestsHandler("requests", uc, pub, nil)
	assert.Equal(t, "requests", h.Topic())

	msg := `{"request_id":"r-42","chart":{"date":"2000-01-01","time":"17:30","timezone_offset":5.5,"lat":12.97,"lon":77.59}}`
	require.NoError(t, h.Handle(context.Background(), []byte(msg)))
	require.Len(t, pub.results, 1)
	assert.Equal(t, "r-42", pub.results[0].RequestID)
	require.NotNil(t, pub.results[0].Report)
	assert.Empty(t, pub.results[0].Error)

	bad := `{"request_id":"r-43","chart":{"date":"2000-13-40","time":"17:30"}}`
	require.NoError(t, h.Handle(context.Background(), []byte(bad)))
	require.Len(t, pub.results, 2)
	assert.Nil(t, pub.results[1].Report)
	assert.NotEmpty(t, pub.results[1].Error)

	assert.NoError(t, h.Handle(context.Background(), []byte("{not json")))
	assert.Len(t, pub.results, 2)

	noLat := `{"request_id":"r-44","chart":{"date":"2000-01-01","time":"17:30","timezone_offset":5.5,"lon":77.59}}`
	require.NoError(t, h.Handle(context.Background(), []byte(noLat)))
	require.Len(t, pub.results, 3)
	assert.Nil(t, pub.results[2].Report)
	assert.Contains(t, pub.results[2].Error, "lat")
}

func TestChartRequestsHandlerRetriesProviderFailure(t *testing.T) {
	fake := natalFake()
	fake.Err = errors.New("ephemeris offline")
	pub := &recordingPublisher{}
	h := NewChartRequestsHandler("requests", newReports(fake, pub, &recordingArchive{}, &opMetrics{}), pub, nil)

	err := h.Handle(context.Background(), []byte(`{"request_id":"r","chart":{"date":"2000-01-01","time":"17:30","timezone_offset":0,"lat":0,"lon":0}}`))
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.Empty(t, pub.results)
}
