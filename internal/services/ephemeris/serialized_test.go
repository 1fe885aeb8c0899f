package ephemeris

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
)

// modal answers with the longitude of whichever mode is currently set and
// yields between setting and reading to widen any race window.
type modal struct {
	mode models.Ayanamsa
}

func (m *modal) SetSiderealMode(_ context.Context, a models.Ayanamsa) error {
	m.mode = a
	return nil
}

func (m *modal) LongitudeAndSpeed(_ context.Context, _ models.Moment, _ models.Body) (float64, float64, error) {
	runtime.Gosched()
	return float64(SiderealMode(m.mode)), 0, nil
}

func (m *modal) HouseCusps(_ context.Context, _ models.Moment, _, _ float64) ([12]float64, float64, error) {
	runtime.Gosched()
	return [12]float64{}, float64(SiderealMode(m.mode)), nil
}

func (m *modal) Sunrise(_ context.Context, mo models.Moment, _, _ float64) (models.Moment, error) {
	return mo, nil
}

func TestSerializedKeepsModeAndQueryTogether(t *testing.T) {
	s := NewSerialized(&modal{})
	modes := []models.Ayanamsa{models.Lahiri, models.Raman, models.Krishnamurti}

	var wg sync.WaitGroup
	errs := make(chan error, 300)
	for i := 0; i < 300; i++ {
		a := modes[i%len(modes)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			lon, _, err := s.LongitudeAndSpeed(context.Background(), 0, models.Sun, a)
			if err != nil {
				errs <- err
				return
			}
			if int(lon) != SiderealMode(a) {
				errs <- fmt.Errorf("mode %s answered %v", a, lon)
			}
			_, asc, _ := s.HouseCusps(context.Background(), 0, 0, 0, a)
			if int(asc) != SiderealMode(a) {
				errs <- fmt.Errorf("houses mode %s answered %v", a, asc)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestSerializedSunrisePassesThrough(t *testing.T) {
	s := NewSerialized(&modal{})
	got, err := s.Sunrise(context.Background(), 2451545.25, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Moment(2451545.25), got)
}
