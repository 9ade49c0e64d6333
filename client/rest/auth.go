package rest

import (
	"context"

	"github.com/example/taskflow/client/session"
	"github.com/example/taskflow/domain/user"
)

// Auth adapts Client to the session AuthBackend port. On every successful
// call the client's Bearer token is updated, so the remote task store built
// on the same Client is authenticated as a side effect.
type Auth struct {
	c *Client
}

var _ session.AuthBackend = (*Auth)(nil)

// NewAuth creates an AuthBackend adapter over the given client.
func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

// Login authenticates against POST /auth/login.
func (a *Auth) Login(ctx context.Context, email, password string) (user.User, string, error) {
	result, err := a.c.Login(ctx, email, password)
	if err != nil {
		return user.User{}, "", err
	}
	a.c.SetToken(result.Token)
	return result.User, result.Token, nil
}

// Register creates an account against POST /auth/register.
func (a *Auth) Register(ctx context.Context, email, password, name string) (user.User, string, error) {
	result, err := a.c.Register(ctx, email, password, name)
	if err != nil {
		return user.User{}, "", err
	}
	a.c.SetToken(result.Token)
	return result.User, result.Token, nil
}

// Validate checks the token against GET /auth/me.
func (a *Auth) Validate(ctx context.Context, token string) (user.User, error) {
	u, err := a.c.Me(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	a.c.SetToken(token)
	return u, nil
}
