package utils

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrMalformedToken is returned when a stored bearer token cannot be decoded
var ErrMalformedToken = errors.New("malformed token")

// Claims represents the payload of a bearer token issued by the commerce API.
// The storefront never holds the signing key, so claims are only ever decoded,
// never verified.
type Claims struct {
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// DecodeUnverified reads the claims of a bearer token without checking its signature.
// Tokens the strict parser refuses, such as an alg it does not know or a
// fractional exp, are decoded leniently; fractional times round down.
func DecodeUnverified(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err == nil {
		return claims, nil
	}
	return decodeLenient(token)
}

// looseClaims accepts any JSON number for the registered time claims
type looseClaims struct {
	Email     string  `json:"email"`
	IsAdmin   bool    `json:"isAdmin"`
	Subject   string  `json:"sub"`
	Issuer    string  `json:"iss"`
	ExpiresAt float64 `json:"exp"`
	IssuedAt  float64 `json:"iat"`
	NotBefore float64 `json:"nbf"`
}

func decodeLenient(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	var header map[string]any
	raw, err := jwt.DecodeSegment(parts[0])
	if err != nil || json.Unmarshal(raw, &header) != nil {
		return nil, ErrMalformedToken
	}

	var lc looseClaims
	raw, err = jwt.DecodeSegment(parts[1])
	if err != nil || json.Unmarshal(raw, &lc) != nil {
		return nil, ErrMalformedToken
	}

	return &Claims{
		Email:   lc.Email,
		IsAdmin: lc.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   lc.Subject,
			Issuer:    lc.Issuer,
			ExpiresAt: int64(math.Floor(lc.ExpiresAt)),
			IssuedAt:  int64(math.Floor(lc.IssuedAt)),
			NotBefore: int64(math.Floor(lc.NotBefore)),
		},
	}, nil
}

// ExpiredAt reports whether the exp claim lies before now. Tokens without exp never expire.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == 0 {
		return false
	}
	return time.Unix(c.ExpiresAt, 0).Before(now)
}
