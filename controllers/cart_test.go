package controllers

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-storefront/apiclient"
	"go-storefront/cart"
	"go-storefront/checkout"
	"go-storefront/events"
	"go-storefront/identity"
	"go-storefront/middleware"
	"go-storefront/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsStreamsCartSignals(t *testing.T) {
	bus := events.NewBus()
	cc := NewCartController(nil, bus, zerolog.Nop())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.IdentityContextKey, identity.Identity{Email: "a@b.co"})
		cc.Events(w, r.WithContext(ctx))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewReader(resp.Body)
	first, err := lines.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", first)

	require.Eventually(t, func() bool { return bus.Subscribers("a@b.co") == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, bus.Publish("a@b.co"))
	assert.Equal(t, 0, bus.Publish("other@b.co"))

	for {
		line, err := lines.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event:") {
			assert.Equal(t, "event: cart\n", line)
			break
		}
	}

	cancel()
	require.Eventually(t, func() bool { return bus.Subscribers("a@b.co") == 0 }, time.Second, 10*time.Millisecond)
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", utils.Invalid("Please select a size before adding to cart"), http.StatusBadRequest, "Please select a size before adding to cart"},
		{"fields", utils.FieldErrors{"phone": "Invalid phone number"}.Err("Please fix the highlighted fields"), http.StatusUnprocessableEntity, "Please fix the highlighted fields"},
		{"quantity", cart.ErrQuantityTooLow, http.StatusBadRequest, cart.ErrQuantityTooLow.Error()},
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest, "Your cart is empty"},
		{"api", &apiclient.APIError{Status: http.StatusConflict, Message: "Insufficient stock"}, http.StatusConflict, "Insufficient stock"},
		{"unavailable", errors.Join(apiclient.ErrUnavailable, errors.New("dial tcp")), http.StatusBadGateway, "Service unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, zerolog.Nop(), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}
