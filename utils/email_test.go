package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-storefront/models"

	"github.com/keighl/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postmarkServer(t *testing.T, sent *postmark.Email) *EmailService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(sent))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK","MessageID":"m1"}`))
	}))
	t.Cleanup(srv.Close)

	es := NewEmailService("server-token", "shop@b.co")
	es.client.BaseURL = srv.URL
	return es
}

func TestOrderEmailEscapesShopperInput(t *testing.T) {
	var sent postmark.Email
	es := postmarkServer(t, &sent)

	order := models.Order{
		OrderNumber: "ORD-1001",
		TotalAmount: 2400,
		OrderStatus: "Pending",
		ShippingAddress: models.ShippingAddress{
			FullName: `<a href="https://evil">click</a>`,
		},
		Items: []models.OrderItem{{Title: "Tee <script>", Size: "M", Color: "Red", Quantity: 2}},
	}
	require.NoError(t, es.OrderPlaced(context.Background(), "a@b.co", order))

	assert.Equal(t, "shop@b.co", sent.From)
	assert.Equal(t, "a@b.co", sent.To)
	assert.Equal(t, "Order #ORD-1001 confirmed", sent.Subject)

	assert.NotContains(t, sent.HtmlBody, `<a href="https://evil">`)
	assert.NotContains(t, sent.HtmlBody, "<script>")
	assert.Contains(t, sent.HtmlBody, "&lt;a href=")
	assert.Contains(t, sent.HtmlBody, "<li>Tee &lt;script&gt; (M, Red) x 2</li>")

	assert.NotContains(t, sent.TextBody, "<strong>")
	assert.Contains(t, sent.TextBody, "Your order #ORD-1001 has been placed.")
	assert.Contains(t, sent.TextBody, "- Tee <script> (M, Red) x 2")
	assert.Contains(t, sent.TextBody, "Total Amount: 2400")
}
