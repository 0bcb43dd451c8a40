package models

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the response shape shared by the commerce API and the storefront
type Envelope struct {
	Status   string            `json:"status"`
	Data     json.RawMessage   `json:"data,omitempty"`
	Message  string            `json:"message,omitempty"`
	Token    string            `json:"token,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}
