package utils

import (
	"encoding/json"
	"net/http"

	"go-storefront/models"
)

// WriteJSON writes env with status
func WriteJSON(w http.ResponseWriter, status int, env models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteData wraps data in a success envelope
func WriteData(w http.ResponseWriter, status int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, models.Envelope{Status: models.StatusError, Message: "Something went wrong"})
		return
	}
	WriteJSON(w, status, models.Envelope{Status: models.StatusSuccess, Data: raw})
}

// WriteError writes an error envelope
func WriteError(w http.ResponseWriter, status int, message, redirect string) {
	WriteJSON(w, status, models.Envelope{Status: models.StatusError, Message: message, Redirect: redirect})
}
