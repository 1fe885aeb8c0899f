package ephemeris

import (
	"context"
	"fmt"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	"Jyotisa/pkg/config"
	xhttp "Jyotisa/pkg/http"
)

// Body and sidereal-mode identifiers understood by the ephemeris service.
var (
	bodyIDs = map[models.Body]int{
		models.Sun:     0,
		models.Moon:    1,
		models.Mercury: 2,
		models.Venus:   3,
		models.Mars:    4,
		models.Jupiter: 5,
		models.Saturn:  6,
		models.Rahu:    10, // mean node
	}
	siderealModes = map[models.Ayanamsa]int{
		models.Lahiri:       1,
		models.Raman:        3,
		models.Krishnamurti: 5,
	}
)

// BodyID returns the provider identifier of a queryable body.
func BodyID(b models.Body) (int, bool) {
	id, ok := bodyIDs[b]
	return id, ok
}

// SiderealMode returns the provider identifier of an ayanamsa, defaulting to Lahiri.
func SiderealMode(a models.Ayanamsa) int {
	if m, ok := siderealModes[a]; ok {
		return m
	}
	return siderealModes[models.DefaultAyanamsa]
}

// Sidereal is omitted by the modal provider, which sets it once per query
// through /sid_mode instead. Every known mode is non-zero.
type calcRequest struct {
	JD       float64 `json:"jd_ut"`
	Body     int     `json:"body"`
	Sidereal int     `json:"sid_mode,omitempty"`
}

type calcResponse struct {
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

type housesRequest struct {
	JD       float64 `json:"jd_ut"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Sidereal int     `json:"sid_mode,omitempty"`
}

type housesResponse struct {
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
}

type sunriseRequest struct {
	JD  float64 `json:"jd_ut"`
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type sunriseResponse struct {
	JD float64 `json:"jd_ut"`
}

// HTTPProvider reaches the ephemeris over JSON/HTTP. The sidereal mode is
// sent on every request.
type HTTPProvider struct {
	base     *HTTPServiceBase
	attempts int
}

func NewHTTPProvider(cfg *config.Config, opts ...xhttp.ClientOption) *HTTPProvider {
	return &HTTPProvider{
		base:     NewHTTPServiceBase(cfg.Ephemeris.URL, cfg.Ephemeris.Timeout, opts...),
		attempts: cfg.Ephemeris.Retries,
	}
}

func (p *HTTPProvider) LongitudeAndSpeed(ctx context.Context, m models.Moment, body models.Body, ayanamsa models.Ayanamsa) (float64, float64, error) {
	return p.calc(ctx, m, body, SiderealMode(ayanamsa))
}

func (p *HTTPProvider) HouseCusps(ctx context.Context, m models.Moment, lat, lon float64, ayanamsa models.Ayanamsa) ([12]float64, float64, error) {
	return p.houses(ctx, m, lat, lon, SiderealMode(ayanamsa))
}

// calc queries one body; mode 0 leaves the service's current mode in effect.
func (p *HTTPProvider) calc(ctx context.Context, m models.Moment, body models.Body, mode int) (float64, float64, error) {
	id, ok := BodyID(body)
	if !ok {
		return 0, 0, fmt.Errorf("body %s is not queryable", body)
	}
	var res calcResponse
	req := calcRequest{JD: float64(m), Body: id, Sidereal: mode}
	if err := p.base.PostJSON(ctx, "/calc", req, &res, p.attempts); err != nil {
		return 0, 0, fmt.Errorf("calc %s: %w", body, err)
	}
	return res.Longitude, res.Speed, nil
}

func (p *HTTPProvider) houses(ctx context.Context, m models.Moment, lat, lon float64, mode int) ([12]float64, float64, error) {
	var cusps [12]float64
	var res housesResponse
	req := housesRequest{JD: float64(m), Lat: lat, Lon: lon, Sidereal: mode}
	if err := p.base.PostJSON(ctx, "/houses", req, &res, p.attempts); err != nil {
		return cusps, 0, fmt.Errorf("houses: %w", err)
	}
	if len(res.Cusps) != 12 {
		return cusps, 0, fmt.Errorf("houses: expected 12 cusps, got %d", len(res.Cusps))
	}
	copy(cusps[:], res.Cusps)
	return cusps, res.Ascendant, nil
}

// Sunrise is not retried; an undefined rise event is a normal answer at
// extreme latitudes.
func (p *HTTPProvider) Sunrise(ctx context.Context, m models.Moment, lon, lat float64) (models.Moment, error) {
	var res sunriseResponse
	req := sunriseRequest{JD: float64(m), Lon: lon, Lat: lat}
	if err := p.base.PostJSON(ctx, "/sunrise", req, &res, 1); err != nil {
		return 0, fmt.Errorf("sunrise: %w", err)
	}
	return models.Moment(res.JD), nil
}

var _ repository.Ephemeris = (*HTTPProvider)(nil)
