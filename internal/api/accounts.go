package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Register creates an account. Duplicate usernames and similar
// rejections come back as *ValidationError.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/accounts/register/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for session cookies. The tokens live in
// the client's jar; the caller only learns success or failure.
func (c *Client) Login(ctx context.Context, creds models.Credentials) error {
	return c.do(ctx, http.MethodPost, "/accounts/token/", creds, nil)
}

// Refresh rotates the session cookies using the refresh token already
// in the jar.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/accounts/token/refresh/", nil, nil)
}

// Me returns the current user. On a 401 it attempts exactly one silent
// token refresh and exactly one retry of the lookup; if either fails
// the caller gets ErrUnauthenticated.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	user, err := c.fetchMe(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUnauthenticated) {
		return nil, err
	}
	if err := c.Refresh(ctx); err != nil {
		c.log.Debug("token refresh failed", "error", err)
		return nil, ErrUnauthenticated
	}
	user, err = c.fetchMe(ctx)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (c *Client) fetchMe(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/accounts/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the server-side session. Local identity state is the
// session gate's concern; it forgets the user whether or not this
// call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/accounts/logout/", nil, nil)
}
