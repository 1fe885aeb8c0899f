package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/service/metrics"
	"Jyotisa/internal/services/jyotisa"
	"Jyotisa/internal/usecase"
	xhttp "Jyotisa/pkg/http"
	xlogger "Jyotisa/pkg/logger"
)

// ChartEchoHandler serves the chart, transit and event endpoints.
type ChartEchoHandler struct {
	logger   *xlogger.Logger
	reports  *usecase.ChartReportUseCase
	transits *usecase.TransitsUseCase
	events   *usecase.EventsUseCase
	stream   *TransitStream
	metrics  *metrics.API
}

func NewChartEchoHandler(
	logger *xlogger.Logger,
	reports *usecase.ChartReportUseCase,
	transits *usecase.TransitsUseCase,
	events *usecase.EventsUseCase,
	stream *TransitStream,
	m *metrics.API,
) *ChartEchoHandler {
	return &ChartEchoHandler{logger: logger, reports: reports, transits: transits, events: events, stream: stream, metrics: m}
}

func (h *ChartEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Info)
	g := e.Group("/api")
	g.POST("/chart", h.Chart)
	g.GET("/transits", h.Transits)
	g.POST("/transits/hits", h.TransitHits)
	g.POST("/events/analyze", h.AnalyzeEvent)
	if h.stream != nil {
		e.GET("/ws/transits", h.stream.Serve)
	}
}

type serviceInfo struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Ayanamsas []models.Ayanamsa `json:"ayanamsas"`
	Events    []string          `json:"events"`
	Features  []string          `json:"features"`
	Endpoints map[string]string `json:"endpoints"`
}

func (h *ChartEchoHandler) Info(c echo.Context) error {
	return xhttp.SuccessResponse(c, serviceInfo{
		Service:   "jyotisa",
		Status:    "active",
		Ayanamsas: []models.Ayanamsa{models.Lahiri, models.Raman, models.Krishnamurti},
		Events:    jyotisa.EventCategories(),
		Features: []string{
			"Sidereal planetary positions",
			"Vimshottari Dasha & Antardasha",
			"Divisional charts",
			"Simplified Shad-Bala strengths",
			"Vedic & Western aspects",
			"Yoga detection",
			"Transit analysis",
			"Event timing analysis",
		},
		Endpoints: map[string]string{
			"POST /api/chart":          "Complete birth chart",
			"GET /api/transits":        "Current planetary transits",
			"POST /api/transits/hits":  "Transit conjunctions to natal chart",
			"POST /api/events/analyze": "Event timing analysis",
			"GET /ws/transits":         "Transit stream",
		},
	})
}

func (h *ChartEchoHandler) Chart(c echo.Context) error {
	start := time.Now()
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("chart", start, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	in, err := req.Birth()
	if err != nil {
		return h.fail(c, "chart", start, err)
	}
	res, err := h.reports.Report(c.Request().Context(), in, c.Request().Header.Get(echo.HeaderXRequestID))
	if err != nil {
		return h.fail(c, "chart", start, err)
	}
	h.metrics.Observe("chart", start, "")
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Transits(c echo.Context) error {
	start := time.Now()
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("transits", start, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	var (
		res *models.TransitSnapshot
		err error
	)
	if req.At == "" {
		res, err = h.transits.Now(ctx, *req.Lat, *req.Lon)
	} else {
		at, ok := xhttp.ParseTime(req.At)
		if !ok {
			h.metrics.Observe("transits", start, "ERR_BAD_REQUEST")
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("at must be RFC3339 or unix seconds"))
		}
		res, err = h.transits.At(ctx, *req.Lat, *req.Lon, at)
	}
	if err != nil {
		return h.fail(c, "transits", start, err)
	}
	h.metrics.Observe("transits", start, "")
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) TransitHits(c echo.Context) error {
	start := time.Now()
	req := &models.TransitHitsRequest{}
	if verr := xhttp.ReadAndValidateRequestWithQuery(c, req); verr != nil {
		h.metrics.Observe("transit_hits", start, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	in, err := req.Birth()
	if err != nil {
		return h.fail(c, "transit_hits", start, err)
	}
	orb := h.transits.DefaultOrb()
	if req.Orb != nil {
		orb = *req.Orb
	}
	res, err := h.transits.Hits(c.Request().Context(), in, orb)
	if err != nil {
		return h.fail(c, "transit_hits", start, err)
	}
	h.metrics.Observe("transit_hits", start, "")
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) AnalyzeEvent(c echo.Context) error {
	start := time.Now()
	req := &models.EventRequest{}
	if verr := xhttp.ReadAndValidateRequestWithQuery(c, req); verr != nil {
		h.metrics.Observe("event", start, "ERR_VALIDATION")
		return xhttp.BadRequestResponse(c, verr)
	}

	in, err := req.Birth()
	if err != nil {
		return h.fail(c, "event", start, err)
	}
	res, err := h.events.Analyze(c.Request().Context(), in, req.EventType)
	if err != nil {
		return h.fail(c, "event", start, err)
	}
	h.metrics.Observe("event", start, "")
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) fail(c echo.Context, endpoint string, start time.Time, err error) error {
	appErr := toAppError(err)
	h.metrics.Observe(endpoint, start, appErr.Code)
	if appErr.Status >= 500 {
		h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}
