package api

import (
	"context"
	"net/http"

	"github.com/as4584/Vendora/internal/model"
)

// RegisterRequest creates a new seller account.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name,omitempty"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account. It does not sign the client in; call
// Login afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &token); err != nil {
		return nil, err
	}
	c.SetToken(token.AccessToken)
	return &token, nil
}

// Me returns the signed-in seller.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
