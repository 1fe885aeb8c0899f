package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/pkg/http/middleware"
)

func TestClientRetriesTemporaryStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 7, in["body"])
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(time.Second), WithBackoff(time.Millisecond))
	var out struct{ OK bool }
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: http.MethodPost, URL: srv.URL, Body: map[string]int{"body": 7}, Attempts: 3,
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestClientDoesNotRetryDecodeOrClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			_, _ = w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBackoff(time.Millisecond))
	var out map[string]any
	err := c.SendAndParse(context.Background(), &RequestOptions{Method: http.MethodGet, URL: srv.URL, Attempts: 3}, &out)
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))

	err = c.SendAndParse(context.Background(), &RequestOptions{Method: http.MethodGet, URL: srv.URL, Attempts: 3}, &out)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.False(t, se.Temporary())
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestAppErrorResponse(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		err    error
		status int
		code   string
	}{
		{BadGatewayError("down"), http.StatusBadGateway, "ERR_PROVIDER"},
		{errors.New("plain"), http.StatusInternalServerError, "ERR_INTERNAL"},
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, AppErrorResponse(c, tc.err))
		assert.Equal(t, tc.status, rec.Code)

		var env struct {
			Status int        `json:"status"`
			Data   []AppError `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, tc.status, env.Status)
		require.Len(t, env.Data, 1)
		assert.Equal(t, tc.code, env.Data[0].Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(nil, WithMetricsPath(""))
	req := httptest.NewRequest(http.MethodOptions, "/api/chart", nil)
	req.Header.Set(echo.HeaderOrigin, "https://example.org")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.org", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderXRequestID)
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	e := echo.New()
	e.Use(middleware.CORS(middleware.CORSConfig{AllowOrigins: []string{"https://a.example"}}))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderOrigin, "https://b.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestReadAndValidateRequestClock(t *testing.T) {
	type birth struct {
		Time string  `json:"time" validate:"required,clock"`
		Orb  float64 `json:"orb" default:"3" validate:"gte=0,lte=30"`
	}
	e := echo.New()
	bind := func(body string) (*birth, interface{}) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())
		b := &birth{}
		return b, ReadAndValidateRequest(c, b)
	}

	b, verr := bind(`{"time":"06:45:10"}`)
	require.Nil(t, verr)
	assert.Equal(t, 3.0, b.Orb)

	_, verr = bind(`{"time":"6.45pm"}`)
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_CLOCK", errs[0].Code)
	assert.Equal(t, "time", errs[0].Field)
}
