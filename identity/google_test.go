package identity

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "storefront.apps.googleusercontent.com"

var googleNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func rsaKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func googleToken(t *testing.T, key *rsa.PrivateKey, edit func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            testClientID,
		"sub":            "1100",
		"iat":            googleNow.Add(-time.Minute).Unix(),
		"exp":            googleNow.Add(time.Hour).Unix(),
		"email":          "g@b.co",
		"email_verified": true,
		"name":           "G User",
		"picture":        "https://lh3/pic.jpg",
	}
	if edit != nil {
		edit(claims)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func testVerifier(key *rsa.PrivateKey) *GoogleVerifier {
	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	return newGoogleVerifier(keys, testClientID, func() time.Time { return googleNow })
}

func TestGoogleVerifierAcceptsSignedToken(t *testing.T) {
	key := rsaKey(t)

	profile, err := testVerifier(key).Verify(context.Background(), googleToken(t, key, nil))
	require.NoError(t, err)

	assert.Equal(t, "g@b.co", profile.Email)
	assert.Equal(t, "G User", profile.Name)
	assert.Equal(t, "https://lh3/pic.jpg", profile.Image)
	assert.Equal(t, "google", profile.Provider)
}

func TestGoogleVerifierAcceptsBareIssuer(t *testing.T) {
	key := rsaKey(t)
	tok := googleToken(t, key, func(c jwt.MapClaims) { c["iss"] = "accounts.google.com" })

	_, err := testVerifier(key).Verify(context.Background(), tok)
	assert.NoError(t, err)
}

func TestGoogleVerifierRejects(t *testing.T) {
	key := rsaKey(t)
	other := rsaKey(t)

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not-a-jwt",
		"forged signature": googleToken(t, other, nil),
		"wrong audience":   googleToken(t, key, func(c jwt.MapClaims) { c["aud"] = "someone-else" }),
		"expired":          googleToken(t, key, func(c jwt.MapClaims) { c["exp"] = googleNow.Add(-time.Minute).Unix() }),
		"wrong issuer":     googleToken(t, key, func(c jwt.MapClaims) { c["iss"] = "https://evil.example" }),
		"unverified email": googleToken(t, key, func(c jwt.MapClaims) { c["email_verified"] = false }),
		"no email":         googleToken(t, key, func(c jwt.MapClaims) { delete(c, "email") }),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testVerifier(key).Verify(context.Background(), tok)
			assert.ErrorIs(t, err, ErrProviderCredential)
		})
	}
}
