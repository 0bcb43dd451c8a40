package identity

import (
	"context"
	"errors"
	"strings"

	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// ErrNoToken means the backend accepted the request but issued no token
var ErrNoToken = errors.New("no token issued")

const minPasswordLength = 6

// AuthAPI is the part of the commerce API that issues shopper tokens
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error)
	ProviderSignIn(ctx context.Context, profile models.ProviderProfile) (models.AuthResponse, error)
}

// Service runs the sign-in flows. It is the only writer of the authToken,
// userEmail and providerEmail session keys.
type Service struct {
	api      AuthAPI
	provider ProviderVerifier
	log      zerolog.Logger
}

// NewService builds the sign-in flows. A nil provider disables provider sign-in.
func NewService(api AuthAPI, provider ProviderVerifier, log zerolog.Logger) *Service {
	return &Service{api: api, provider: provider, log: log.With().Str("component", "identity").Logger()}
}

func validateCredentials(email, password string, errs utils.FieldErrors) {
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !utils.IsEmail(email):
		errs["email"] = "Invalid email"
	}
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case len(password) < minPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}
}

// ValidateLogin checks the login form
func ValidateLogin(c models.Credentials) error {
	errs := utils.FieldErrors{}
	validateCredentials(strings.TrimSpace(c.Email), c.Password, errs)
	return errs.Err("Please fix the highlighted fields")
}

// ValidateRegistration checks the sign-up form
func ValidateRegistration(r models.Registration) error {
	errs := utils.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	validateCredentials(strings.TrimSpace(r.Email), r.Password, errs)
	if r.Password != r.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs.Err("Please fix the highlighted fields")
}

// Login authenticates with email and password and remembers the shopper
func (s *Service) Login(ctx context.Context, sess *session.Session, creds models.Credentials) (models.AuthResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := ValidateLogin(creds); err != nil {
		return models.AuthResponse{}, err
	}

	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if res.Token == "" {
		return models.AuthResponse{}, ErrNoToken
	}
	if err := sess.SetShopper(ctx, creds.Email, res.Token); err != nil {
		return models.AuthResponse{}, err
	}
	s.log.Info().Str("email", creds.Email).Msg("shopper logged in")
	return res, nil
}

// Register creates an account and signs the shopper in
func (s *Service) Register(ctx context.Context, sess *session.Session, reg models.Registration) (models.AuthResponse, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	if err := ValidateRegistration(reg); err != nil {
		return models.AuthResponse{}, err
	}

	res, err := s.api.Register(ctx, reg)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if res.Token != "" {
		if err := sess.SetShopper(ctx, reg.Email, res.Token); err != nil {
			return models.AuthResponse{}, err
		}
	}
	s.log.Info().Str("email", reg.Email).Bool("signed_in", res.Token != "").Msg("shopper registered")
	return res, nil
}

// SignInWithProvider verifies a provider credential and records the shopper it
// names. Nothing is written to the session unless the credential verifies;
// failing to sync the user to the backend only costs the backend token.
func (s *Service) SignInWithProvider(ctx context.Context, sess *session.Session, credential string) (models.ProviderProfile, error) {
	if s.provider == nil {
		return models.ProviderProfile{}, ErrProviderUnavailable
	}
	profile, err := s.provider.Verify(ctx, credential)
	if err != nil {
		s.log.Warn().Err(err).Msg("provider credential rejected")
		return models.ProviderProfile{}, err
	}
	profile.Email = strings.TrimSpace(profile.Email)
	if !utils.IsEmail(profile.Email) {
		return models.ProviderProfile{}, ErrProviderCredential
	}

	var token string
	res, err := s.api.ProviderSignIn(ctx, profile)
	if err != nil {
		s.log.Error().Err(err).Str("email", profile.Email).Msg("saving provider user failed")
	} else {
		token = res.Token
	}
	if err := sess.SetProviderShopper(ctx, profile.Email, token); err != nil {
		return models.ProviderProfile{}, err
	}
	return profile, nil
}

// Logout forgets the shopper identity
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	return sess.ClearShopper(ctx)
}
