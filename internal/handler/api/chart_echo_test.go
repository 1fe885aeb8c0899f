package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	"Jyotisa/internal/service/metrics"
	"Jyotisa/internal/service/ratelimit"
	"Jyotisa/internal/services/ephemeris/ephemeristest"
	"Jyotisa/internal/services/jyotisa"
	"Jyotisa/internal/usecase"
	xhttp "Jyotisa/pkg/http"
	xlogger "Jyotisa/pkg/logger"
)

const birthJSON = `{"date":"2000-01-01","time":"17:30","timezone_offset":5.5,"lat":12.97,"lon":77.59,"ayanamsa":"lahiri"}`

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, fake *ephemeristest.Fake, opts ...xhttp.ServerOption) *echo.Echo {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC) }
	builder := jyotisa.NewChartBuilder(fake)
	analyzer := jyotisa.NewTransitAnalyzer(fake)
	m := metrics.NewAPI(prometheus.NewRegistry())
	l := xlogger.NewNop()

	reports := usecase.NewChartReportUseCase(builder, jyotisa.NewStrengthEstimator(fake),
		repository.NopPublisher{}, repository.NopArchive{}, nil, jyotisa.DefaultWesternOrb, usecase.WithClock(clock))
	transits := usecase.NewTransitsUseCase(builder, analyzer, jyotisa.DefaultTransitOrb, usecase.WithClock(clock))
	events := usecase.NewEventsUseCase(builder, usecase.WithClock(clock))
	stream := NewTransitStream(transits, time.Hour, l, m)

	h := NewChartEchoHandler(l, reports, transits, events, stream, m)
	opts = append([]xhttp.ServerOption{xhttp.WithMetricsPath(""), xhttp.WithLogger(l)}, opts...)
	return xhttp.NewServer(h, opts...).Echo()
}

func natal() *ephemeristest.Fake {
	return ephemeristest.New().
		With(models.Moon, 40, 13).
		With(models.Jupiter, 130, 0.1).
		WithAscendant(5)
}

func do(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestInfo(t *testing.T) {
	e := newTestServer(t, natal())
	rec, env := do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info serviceInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "active", info.Status)
	assert.Len(t, info.Events, 15)
}

func TestChartEndpoint(t *testing.T) {
	e := newTestServer(t, natal())
	rec, env := do(e, http.MethodPost, "/api/chart", birthJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep struct {
		Ayanamsa    string                     `json:"ayanamsa"`
		Chart       map[string]json.RawMessage `json:"chart"`
		Divisional  []json.RawMessage          `json:"divisional"`
		Vimshottari struct {
			Nakshatra  string            `json:"nakshatra"`
			Table      []json.RawMessage `json:"table"`
			Antardasha []json.RawMessage `json:"antardasha"`
		} `json:"vimshottari"`
		Shadbala map[string]json.RawMessage `json:"shadbala"`
		Yogas    []string                   `json:"yogas"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, "LAHIRI", rep.Ayanamsa)
	assert.Len(t, rep.Divisional, 8)
	assert.Equal(t, "Rohini", rep.Vimshottari.Nakshatra)
	assert.Len(t, rep.Vimshottari.Table, 9)
	assert.Len(t, rep.Vimshottari.Antardasha, 9)
	assert.Len(t, rep.Shadbala, 7)
	assert.NotEmpty(t, rep.Yogas)
}

func TestChartEndpointValidation(t *testing.T) {
	e := newTestServer(t, natal())

	rec, _ := do(e, http.MethodPost, "/api/chart", `{"date":"2000-01-01","time":"17:30","lat":95,"lon":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(e, http.MethodPost, "/api/chart", `{"date":"01/01/2000","time":"17:30"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(e, http.MethodPost, "/api/chart", `{"date":"2000-01-01","time":"7pm","timezone_offset":0,"lat":0,"lon":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errs []xhttp.ValidationError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_CLOCK", errs[0].Code)
	assert.Equal(t, "time", errs[0].Field)
}

func TestChartEndpointRequiresLocation(t *testing.T) {
	fake := natal()
	e := newTestServer(t, fake)

	rec, env := do(e, http.MethodPost, "/api/chart", `{"date":"1984-06-22","time":"09:05","timezone_offset":5.5,"lon":77.59}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errs []xhttp.ValidationError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_REQUIRED", errs[0].Code)
	assert.Equal(t, "lat", errs[0].Field)

	rec, env = do(e, http.MethodPost, "/api/chart", `{"date":"1984-06-22","time":"09:05"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	assert.Len(t, errs, 3)
	assert.Empty(t, fake.Calls())

	// zero is a valid coordinate and offset
	rec, _ = do(e, http.MethodPost, "/api/chart", `{"date":"1984-06-22","time":"09:05","timezone_offset":0,"lat":0,"lon":0}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = do(e, http.MethodGet, "/api/transits?lon=77.59", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartEndpointProviderFailure(t *testing.T) {
	fake := natal()
	fake.Err = errors.New("offline")
	e := newTestServer(t, fake)

	rec, env := do(e, http.MethodPost, "/api/chart", birthJSON)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var errs []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	assert.Equal(t, "ERR_PROVIDER", errs[0].Code)
}

func TestTransitsEndpoint(t *testing.T) {
	e := newTestServer(t, natal())

	rec, env := do(e, http.MethodGet, "/api/transits?lat=12.97&lon=77.59", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var snap models.TransitSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Len(t, snap.Transits.Bodies, 8)
	assert.Equal(t, models.Lahiri, snap.Transits.Ayanamsa)

	rec, _ = do(e, http.MethodGet, "/api/transits?lat=120&lon=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(e, http.MethodGet, "/api/transits?lat=0&lon=0&at=2024-03-20T03:06:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.True(t, snap.ComputedAt.Equal(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)))

	rec, _ = do(e, http.MethodGet, "/api/transits?lat=0&lon=0&at=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitHitsEndpoint(t *testing.T) {
	e := newTestServer(t, natal())

	rec, env := do(e, http.MethodPost, "/api/transits/hits?orb=0", birthJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rep models.TransitReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, "2000-01-01", rep.NatalDate)
	assert.Equal(t, len(rep.Hits), rep.TotalHits)
	assert.NotEmpty(t, rep.Hits)

	rec, _ = do(e, http.MethodPost, "/api/transits/hits?orb=45", birthJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitHitsOrb(t *testing.T) {
	// Mars sits one degree past the Moon
	e := newTestServer(t, natal().With(models.Mars, 41, 0.5))
	moonMars := func(hits []models.TransitHit) bool {
		for _, h := range hits {
			if h.TransitBody == models.Mars && h.NatalBody == models.Moon {
				return true
			}
		}
		return false
	}

	rec, env := do(e, http.MethodPost, "/api/transits/hits?orb=0", birthJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rep models.TransitReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	require.NotEmpty(t, rep.Hits)
	for _, h := range rep.Hits {
		assert.Zero(t, h.Orb)
	}
	assert.False(t, moonMars(rep.Hits))

	rec, env = do(e, http.MethodPost, "/api/transits/hits", birthJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rep = models.TransitReport{}
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.True(t, moonMars(rep.Hits))
}

func TestAnalyzeEventEndpoint(t *testing.T) {
	e := newTestServer(t, natal())

	rec, env := do(e, http.MethodPost, "/api/events/analyze?event_type=Health", birthJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rep models.EventReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, models.Rahu, rep.DashaLord)
	assert.True(t, rep.Analysis.Favorable)

	rec, env = do(e, http.MethodPost, "/api/events/analyze?event_type=lottery", birthJSON)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errs []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	assert.Equal(t, "ERR_UNKNOWN_EVENT", errs[0].Code)

	rec, _ = do(e, http.MethodPost, "/api/events/analyze", birthJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	e := newTestServer(t, natal(), xhttp.WithRateLimiter(ratelimit.NewTokenBucket(1, time.Hour)))

	rec, _ := do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestTransitStream(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, natal()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/transits?lat=12.97&lon=77.59"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, http.StatusOK, env.Status)
	var snap models.TransitSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Len(t, snap.Transits.Bodies, 8)
}

func TestTransitStreamRejectsBadLocation(t *testing.T) {
	e := newTestServer(t, natal())
	rec, _ := do(e, http.MethodGet, "/ws/transits?lat=100&lon=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToAppError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, toAppError(models.NewInputError("lat", "91", "out of range")).Status)
	assert.Equal(t, "ERR_LORD_NOT_FOUND", toAppError(models.ErrLordNotInChart).Code)
	assert.Equal(t, http.StatusInternalServerError, toAppError(errors.New("x")).Status)
}
