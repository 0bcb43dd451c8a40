package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront/adminguard"
	"go-storefront/middleware"
	"go-storefront/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditNamesActingAdmin(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Email:          "root@shop.co",
		IsAdmin:        true,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	hint, err := adminguard.Hint(tok)
	require.NoError(t, err)

	tests := map[string]struct {
		ctx   context.Context
		actor string
	}{
		"with hint":    {ctx: context.WithValue(context.Background(), middleware.AdminContextKey, hint), actor: "root@shop.co"},
		"without hint": {ctx: context.Background(), actor: "unknown"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			ac := NewAdminController(nil, zerolog.New(&buf))
			r := httptest.NewRequest("DELETE", "/api/admin/products/p1", nil).WithContext(tt.ctx)

			ac.audit(r, "product.delete", "p1")

			var line map[string]string
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.actor, line["actor"])
			assert.Equal(t, "product.delete", line["action"])
			assert.Equal(t, "p1", line["target"])
		})
	}
}
