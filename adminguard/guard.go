package adminguard

import (
	"context"
	"strings"
	"time"

	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// State of an admin view's guard
type State int

const (
	Checking State = iota
	Authorized
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "checking"
	}
}

const (
	LoginPath     = "/admin/login"
	HomePath      = "/"
	AccessDenied  = "Access denied. Admin privileges required."
	SessionLapsed = "Session expired. Please log in again."
	LoginRequired = "Please log in as admin"
)

// ClientHintOnly holds claims read from a token whose signature was never
// checked. It is a navigation hint; the backend authorizes every admin call.
type ClientHintOnly struct {
	email   string
	isAdmin bool
	expires time.Time
}

func (h ClientHintOnly) Email() string        { return h.email }
func (h ClientHintOnly) ClaimsAdmin() bool    { return h.isAdmin }
func (h ClientHintOnly) ExpiresAt() time.Time { return h.expires }

// Hint decodes token into a ClientHintOnly
func Hint(token string) (ClientHintOnly, error) {
	claims, err := utils.DecodeUnverified(token)
	if err != nil {
		return ClientHintOnly{}, err
	}
	return hintFrom(claims), nil
}

func hintFrom(claims *utils.Claims) ClientHintOnly {
	h := ClientHintOnly{email: claims.Email, isAdmin: claims.IsAdmin}
	if claims.ExpiresAt != 0 {
		h.expires = time.Unix(claims.ExpiresAt, 0)
	}
	return h
}

// Decision is the outcome of one guard evaluation
type Decision struct {
	State       State
	Redirect    string
	Message     string
	ClearStored bool
	Hint        ClientHintOnly
}

// Evaluate decides whether a stored admin token lets the holder into admin views
func Evaluate(token string, now time.Time) Decision {
	if strings.TrimSpace(token) == "" {
		return Decision{State: Unauthorized, Redirect: LoginPath, Message: LoginRequired}
	}

	claims, err := utils.DecodeUnverified(token)
	if err != nil {
		return Decision{State: Unauthorized, Redirect: LoginPath, Message: LoginRequired, ClearStored: true}
	}
	if claims.ExpiredAt(now) {
		return Decision{State: Unauthorized, Redirect: LoginPath, Message: SessionLapsed, ClearStored: true}
	}

	hint := hintFrom(claims)
	if !claims.IsAdmin {
		return Decision{State: Unauthorized, Redirect: HomePath, Message: AccessDenied, Hint: hint}
	}
	return Decision{State: Authorized, Hint: hint}
}

// Exempt reports whether path is the admin login view, which is never guarded
func Exempt(path string) bool {
	p := strings.TrimSuffix(path, "/")
	return p == LoginPath || strings.HasSuffix(p, "/api"+LoginPath)
}

// Guard evaluates the session's admin token and applies the decision to it
type Guard struct {
	now func() time.Time
	log zerolog.Logger
}

func New(log zerolog.Logger) *Guard {
	return &Guard{now: time.Now, log: log.With().Str("component", "adminguard").Logger()}
}

// Check runs Evaluate against the stored token, dropping stored admin state
// when the token is unusable
func (g *Guard) Check(ctx context.Context, sess *session.Session) Decision {
	d := Evaluate(sess.AdminToken(ctx), g.now())
	if d.ClearStored {
		if err := sess.ClearAdmin(ctx); err != nil {
			g.log.Warn().Err(err).Msg("clearing admin session failed")
		}
	}
	if d.State != Authorized {
		g.log.Debug().Str("state", d.State.String()).Str("redirect", d.Redirect).Msg("admin access refused")
	}
	return d
}
