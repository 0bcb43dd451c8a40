package controllers

import (
	"net/http"
	"time"

	"go-storefront/adminguard"
	"go-storefront/cart"
	"go-storefront/identity"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// UserController handles shopper sign-in flows
type UserController struct {
	Identity *identity.Service
	Resolver *identity.Resolver
	Mirror   *cart.Mirror
	log      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(svc *identity.Service, resolver *identity.Resolver, mirror *cart.Mirror, log zerolog.Logger) *UserController {
	return &UserController{Identity: svc, Resolver: resolver, Mirror: mirror, log: log}
}

func authResult(res models.AuthResponse, email string) map[string]any {
	out := map[string]any{"email": email, "redirect": "/"}
	if res.User != nil {
		out["user"] = res.User
	}
	return out
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var reg models.Registration
	if err := decodeJSON(r, &reg); err != nil {
		respondError(w, uc.log, err)
		return
	}

	res, err := uc.Identity.Register(r.Context(), sess, reg)
	if err != nil {
		respondError(w, uc.log, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, authResult(res, reg.Email))
}

// Login handles email and password sign-in
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, uc.log, err)
		return
	}

	res, err := uc.Identity.Login(r.Context(), sess, creds)
	if err != nil {
		respondError(w, uc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, authResult(res, creds.Email))
}

// GoogleSignIn verifies a Google ID token and signs its owner in
func (uc *UserController) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var req models.ProviderSignIn
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, uc.log, err)
		return
	}

	profile, err := uc.Identity.SignInWithProvider(r.Context(), sess, req.Credential)
	if err != nil {
		respondError(w, uc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, map[string]string{"email": profile.Email, "redirect": "/"})
}

// Logout forgets the shopper and the cart badge
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if err := uc.Identity.Logout(r.Context(), sess); err != nil {
		respondError(w, uc.log, err)
		return
	}
	if err := uc.Mirror.Clear(r.Context(), sess); err != nil {
		uc.log.Warn().Err(err).Msg("clearing cart mirror failed")
	}
	utils.WriteData(w, http.StatusOK, map[string]string{"redirect": "/"})
}

// Me describes the caller for the navigation bar
func (uc *UserController) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	ctx := r.Context()

	me := models.Me{}
	if id, ok := uc.Resolver.Resolve(ctx, sess); ok {
		me.Authenticated = true
		me.Email = id.Email
		me.Source = string(id.Source)
		me.CartCount = sess.CartCount(ctx)
	}
	me.IsAdmin = adminguard.Evaluate(sess.AdminToken(ctx), time.Now()).State == adminguard.Authorized
	utils.WriteData(w, http.StatusOK, me)
}
