package rest

import (
	"context"

	"memorymap/internal/backend"
)

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Account   struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	} `json:"account"`
}

// CurrentUser returns the identity of the active session, or nil when
// no valid session exists.
func (c *Client) CurrentUser(ctx context.Context) (*backend.Identity, error) {
	c.ensureFreshSession(ctx)
	session := c.currentSession()
	if session == nil {
		return nil, nil
	}
	identity := session.Identity
	return &identity, nil
}

// SignIn authenticates with email and password and stores the session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*backend.Identity, error) {
	var out authResponse
	err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false, &out)
	if err != nil {
		return nil, err
	}

	identity := backend.Identity{ID: out.Account.ID, Email: out.Account.Email}
	c.setSession(out.Token, out.ExpiresAt, identity)
	return &identity, nil
}

// SignUp registers a new account and stores the session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	var out authResponse
	err := c.postJSON(ctx, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": password,
	}, false, &out)
	if err != nil {
		return nil, err
	}

	identity := backend.Identity{ID: out.Account.ID, Email: out.Account.Email}
	c.setSession(out.Token, out.ExpiresAt, identity)
	return &identity, nil
}
