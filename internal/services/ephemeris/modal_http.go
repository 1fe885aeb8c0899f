package ephemeris

import (
	"context"
	"fmt"

	"Jyotisa/internal/domain/models"
	"Jyotisa/pkg/config"
	xhttp "Jyotisa/pkg/http"
)

type sidModeRequest struct {
	Sidereal int `json:"sid_mode"`
}

// ModalHTTPProvider talks to an ephemeris service that keeps one global
// sidereal mode, set through /sid_mode. Wrap it in Serialized before use.
type ModalHTTPProvider struct {
	*HTTPProvider
}

func NewModalHTTPProvider(cfg *config.Config, opts ...xhttp.ClientOption) *ModalHTTPProvider {
	return &ModalHTTPProvider{HTTPProvider: NewHTTPProvider(cfg, opts...)}
}

func (p *ModalHTTPProvider) SetSiderealMode(ctx context.Context, ayanamsa models.Ayanamsa) error {
	if err := p.base.PostJSON(ctx, "/sid_mode", sidModeRequest{Sidereal: SiderealMode(ayanamsa)}, nil, p.attempts); err != nil {
		return fmt.Errorf("set sidereal mode %s: %w", ayanamsa, err)
	}
	return nil
}

func (p *ModalHTTPProvider) LongitudeAndSpeed(ctx context.Context, m models.Moment, body models.Body) (float64, float64, error) {
	return p.calc(ctx, m, body, 0)
}

func (p *ModalHTTPProvider) HouseCusps(ctx context.Context, m models.Moment, lat, lon float64) ([12]float64, float64, error) {
	return p.houses(ctx, m, lat, lon, 0)
}

var _ ModalEphemeris = (*ModalHTTPProvider)(nil)
