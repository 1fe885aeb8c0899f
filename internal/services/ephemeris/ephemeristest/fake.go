// Package ephemeristest provides an in-memory ephemeris for tests.
package ephemeristest

import (
	"context"
	"errors"
	"sync"

	"Jyotisa/internal/domain/models"
)

// ErrNoSunrise mimics a rise event that cannot be resolved.
var ErrNoSunrise = errors.New("no sunrise at this latitude")

// Position is a raw tropical-frame answer for one body.
type Position struct {
	Longitude float64
	Speed     float64
}

// Call is one recorded provider query.
type Call struct {
	Op       string
	Body     models.Body
	Ayanamsa models.Ayanamsa
	Moment   models.Moment
}

// Fake answers from fixed tables. Sidereal answers subtract the
// configured per-ayanamsa offset, so tests can observe which mode was used.
type Fake struct {
	mu sync.Mutex

	Positions  map[models.Body]Position
	Cusps      [12]float64
	Ascendant  float64
	Offsets    map[models.Ayanamsa]float64
	SunriseAt  models.Moment
	SunriseErr error
	// Err, when set, fails every position and house query.
	Err error

	calls []Call
}

// New returns a fake with every planet at 0 degrees and no ayanamsa offsets.
func New() *Fake {
	f := &Fake{Positions: make(map[models.Body]Position), Offsets: make(map[models.Ayanamsa]float64)}
	for _, b := range models.Planets {
		f.Positions[b] = Position{}
	}
	return f
}

// With sets one body and returns the fake for chaining.
func (f *Fake) With(b models.Body, lon, speed float64) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Positions[b] = Position{Longitude: lon, Speed: speed}
	return f
}

// WithAscendant sets the Ascendant and whole-sign cusps starting at its sign.
func (f *Fake) WithAscendant(asc float64) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ascendant = asc
	start := float64(models.SignOf(asc)) * 30
	for i := range f.Cusps {
		f.Cusps[i] = models.NormalizeLongitude(start + float64(i)*30)
	}
	return f
}

func (f *Fake) record(c Call) {
	f.calls = append(f.calls, c)
}

// Calls returns a copy of the recorded queries.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) LongitudeAndSpeed(_ context.Context, m models.Moment, body models.Body, ayanamsa models.Ayanamsa) (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "calc", Body: body, Ayanamsa: ayanamsa, Moment: m})
	if f.Err != nil {
		return 0, 0, f.Err
	}
	p := f.Positions[body]
	return p.Longitude - f.Offsets[ayanamsa], p.Speed, nil
}

func (f *Fake) HouseCusps(_ context.Context, m models.Moment, _, _ float64, ayanamsa models.Ayanamsa) ([12]float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "houses", Ayanamsa: ayanamsa, Moment: m})
	if f.Err != nil {
		return [12]float64{}, 0, f.Err
	}
	return f.Cusps, f.Ascendant - f.Offsets[ayanamsa], nil
}

func (f *Fake) Sunrise(_ context.Context, m models.Moment, _, _ float64) (models.Moment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "sunrise", Moment: m})
	if f.SunriseErr != nil {
		return 0, f.SunriseErr
	}
	return f.SunriseAt, nil
}
