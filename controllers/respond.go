package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-storefront/admin"
	"go-storefront/adminguard"
	"go-storefront/apiclient"
	"go-storefront/cart"
	"go-storefront/checkout"
	"go-storefront/identity"
	"go-storefront/models"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// statusClientClosed is logged when the caller went away mid-request
const statusClientClosed = 499

var errInvalidInput = utils.Invalid("Invalid input")

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidInput
	}
	return nil
}

// respondError maps a flow error onto a JSON error envelope
func respondError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var (
		verr   *utils.ValidationError
		apiErr *apiclient.APIError
	)

	switch {
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, models.Envelope{
				Status:  models.StatusError,
				Message: verr.Message,
				Errors:  verr.Fields,
			})
			return
		}
		utils.WriteError(w, http.StatusBadRequest, verr.Error(), "")
	case errors.Is(err, apiclient.ErrInvalidProductID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID", "")
	case errors.Is(err, cart.ErrQuantityTooLow), errors.Is(err, checkout.ErrEmptyCart):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, admin.ErrNoAdminSession):
		utils.WriteError(w, http.StatusUnauthorized, adminguard.LoginRequired, adminguard.LoginPath)
	case errors.Is(err, identity.ErrProviderCredential):
		utils.WriteError(w, http.StatusUnauthorized, "Failed to sign in with Google", "/login")
	case errors.Is(err, identity.ErrProviderUnavailable):
		utils.WriteError(w, http.StatusServiceUnavailable, "Google sign-in is not available", "")
	case errors.Is(err, identity.ErrNoToken), errors.Is(err, admin.ErrNoToken):
		log.Error().Err(err).Msg("login accepted without token")
		utils.WriteError(w, http.StatusBadGateway, "Login failed. Please try again.", "")
	case errors.As(err, &apiErr):
		utils.WriteError(w, apiclient.StatusOf(err), apiErr.Message, "")
	case errors.Is(err, apiclient.ErrUnavailable):
		log.Warn().Err(err).Msg("commerce api unavailable")
		utils.WriteError(w, http.StatusBadGateway, "Service unavailable", "")
	case errors.Is(err, context.Canceled):
		log.Debug().Msg("client went away")
		w.WriteHeader(statusClientClosed)
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, http.StatusGatewayTimeout, "Service unavailable", "")
	default:
		log.Error().Err(err).Msg("request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong", "")
	}
}
