package ephemeris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
	"Jyotisa/pkg/config"
)

type recordedCall struct {
	path string
	body map[string]any
}

func newModalProvider(t *testing.T, h http.HandlerFunc) (*Serialized, func() []recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		calls = append(calls, recordedCall{path: r.URL.Path, body: body})
		mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	cfg := config.Default()
	cfg.Ephemeris.URL = srv.URL
	cfg.Ephemeris.Timeout = time.Second
	cfg.Ephemeris.Retries = 1
	cfg.Ephemeris.Mode = "modal"
	return NewSerialized(NewModalHTTPProvider(cfg)), func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func TestModalProviderSetsModeBeforeCalc(t *testing.T) {
	p, calls := newModalProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calc" {
			_ = json.NewEncoder(w).Encode(calcResponse{Longitude: 80, Speed: 1})
		}
	})

	lon, _, err := p.LongitudeAndSpeed(context.Background(), 2451545, models.Sun, models.Raman)
	require.NoError(t, err)
	assert.Equal(t, 80.0, lon)

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, "/sid_mode", got[0].path)
	assert.EqualValues(t, 3, got[0].body["sid_mode"])
	assert.Equal(t, "/calc", got[1].path)
	assert.NotContains(t, got[1].body, "sid_mode")
}

func TestModalProviderStopsWhenModeFails(t *testing.T) {
	p, calls := newModalProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, _, err := p.HouseCusps(context.Background(), 0, 12.9, 77.6, models.Lahiri)
	require.Error(t, err)
	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, "/sid_mode", got[0].path)
}
