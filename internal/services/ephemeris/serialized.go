package ephemeris

import (
	"context"
	"sync"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
)

// ModalEphemeris is a provider whose sidereal mode is process-wide state
// that must be set before each sidereal query.
type ModalEphemeris interface {
	SetSiderealMode(ctx context.Context, ayanamsa models.Ayanamsa) error
	LongitudeAndSpeed(ctx context.Context, m models.Moment, body models.Body) (float64, float64, error)
	HouseCusps(ctx context.Context, m models.Moment, lat, lon float64) ([12]float64, float64, error)
	Sunrise(ctx context.Context, m models.Moment, lon, lat float64) (models.Moment, error)
}

// Serialized exposes a ModalEphemeris through the explicit-ayanamsa port,
// holding a lock across every mode switch and the query that depends on it.
type Serialized struct {
	mu    sync.Mutex
	inner ModalEphemeris
}

func NewSerialized(inner ModalEphemeris) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) LongitudeAndSpeed(ctx context.Context, m models.Moment, body models.Body, ayanamsa models.Ayanamsa) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.SetSiderealMode(ctx, ayanamsa); err != nil {
		return 0, 0, err
	}
	return s.inner.LongitudeAndSpeed(ctx, m, body)
}

func (s *Serialized) HouseCusps(ctx context.Context, m models.Moment, lat, lon float64, ayanamsa models.Ayanamsa) ([12]float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.SetSiderealMode(ctx, ayanamsa); err != nil {
		return [12]float64{}, 0, err
	}
	return s.inner.HouseCusps(ctx, m, lat, lon)
}

// Sunrise does not depend on the sidereal mode but still shares the lock,
// the inner provider is not assumed to be reentrant.
func (s *Serialized) Sunrise(ctx context.Context, m models.Moment, lon, lat float64) (models.Moment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Sunrise(ctx, m, lon, lat)
}

var _ repository.Ephemeris = (*Serialized)(nil)
