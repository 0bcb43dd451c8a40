package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"go-storefront/models"
)

// Login exchanges credentials for a shopper token
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return c.authCall(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/login",
		endpoint: "/auth/login",
		body:     creds,
	})
}

// Register creates a shopper account
func (c *Client) Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error) {
	reg.ConfirmPassword = ""
	return c.authCall(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/register",
		endpoint: "/auth/register",
		body:     reg,
	})
}

// ProviderSignIn records a shopper that signed in with an identity provider
func (c *Client) ProviderSignIn(ctx context.Context, profile models.ProviderProfile) (models.AuthResponse, error) {
	return c.authCall(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/google",
		endpoint: "/auth/google",
		body:     profile,
	})
}

// authCall accepts the token either at the top level or inside data
func (c *Client) authCall(ctx context.Context, cl call) (models.AuthResponse, error) {
	env, err := c.do(ctx, cl, nil)
	if err != nil {
		return models.AuthResponse{}, err
	}

	res := models.AuthResponse{Status: env.Status, Message: env.Message, Token: env.Token}
	if len(env.Data) > 0 {
		var data struct {
			Token string       `json:"token"`
			User  *models.User `json:"user"`
		}
		if json.Unmarshal(env.Data, &data) == nil {
			if res.Token == "" {
				res.Token = data.Token
			}
			res.User = data.User
		}
	}
	return res, nil
}
