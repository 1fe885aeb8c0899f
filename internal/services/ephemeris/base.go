package ephemeris

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	xhttp "Jyotisa/pkg/http"
)

// HTTPServiceBase posts JSON to the remote ephemeris under one base URL.
type HTTPServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL.
func NewHTTPServiceBase(baseURL string, timeout time.Duration, opts ...xhttp.ClientOption) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &HTTPServiceBase{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(opts...),
	}
}

// PostJSON posts payload to path and decodes the JSON reply into dest,
// trying up to attempts times. Client errors other than 429 are not retried.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload, dest interface{}, attempts int) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("ephemeris http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:   http.MethodPost,
		URL:      b.baseURL + path,
		Body:     payload,
		Attempts: attempts,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}
