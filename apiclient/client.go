package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-storefront/metrics"
	"go-storefront/models"

	"github.com/rs/zerolog"
)

// ErrUnavailable wraps transport failures: the commerce API could not be reached
var ErrUnavailable = errors.New("commerce api unavailable")

// APIError is a non-success answer from the commerce API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks JSON to the commerce API. It holds no shopper state: identities
// and bearer tokens are passed per call.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client. A zero timeout leaves the transport default in place.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "apiclient").Logger(),
	}
}

// call describes one round trip. endpoint is the route template used for metrics.
type call struct {
	method   string
	path     string
	endpoint string
	token    string
	body     any
}

func (c *Client) do(ctx context.Context, cl call, out any) (*models.Envelope, error) {
	var reader io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", cl.method, cl.endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", cl.method, cl.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.ObserveBackendCall(cl.method, cl.endpoint, "canceled", time.Since(start))
			return nil, ctxErr
		}
		metrics.ObserveBackendCall(cl.method, cl.endpoint, "transport_error", time.Since(start))
		c.log.Error().Err(err).Str("method", cl.method).Str("endpoint", cl.endpoint).Msg("commerce api request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBackendCall(cl.method, cl.endpoint, "transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var env models.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Status != models.StatusError
	if !ok {
		metrics.ObserveBackendCall(cl.method, cl.endpoint, "api_error", time.Since(start))
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("API Error: %d", resp.StatusCode)
		}
		c.log.Warn().
			Str("method", cl.method).
			Str("endpoint", cl.endpoint).
			Int("status", resp.StatusCode).
			Str("message", msg).
			Msg("commerce api returned an error")
		return &env, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		metrics.ObserveBackendCall(cl.method, cl.endpoint, "decode_error", time.Since(start))
		return nil, fmt.Errorf("decode %s %s: %w", cl.method, cl.endpoint, decodeErr)
	}
	metrics.ObserveBackendCall(cl.method, cl.endpoint, "ok", time.Since(start))

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &env, fmt.Errorf("decode %s %s data: %w", cl.method, cl.endpoint, err)
		}
	}
	return &env, nil
}

// StatusOf maps an error from this package onto an HTTP status
func StatusOf(err error) int {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
