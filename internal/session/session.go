// Package session is the gate deciding whether protected views may
// render. It owns the current identity for the whole UI tree: created
// once at startup, passed down explicitly, torn down never.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Identity is the narrow slice of the API client the gate needs.
type Identity interface {
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
}

// Gate tracks the current user. A nil user means unauthenticated; the
// loading flag covers the initial identity lookup so views can hold
// rendering until it settles.
type Gate struct {
	client  Identity
	log     *slog.Logger
	user    *models.User
	loading bool
}

func New(client Identity, log *slog.Logger) *Gate {
	return &Gate{client: client, log: log, loading: true}
}

// User returns the current user, or nil when unauthenticated.
func (g *Gate) User() *models.User { return g.user }

// Loading reports whether the initial identity lookup is still
// outstanding.
func (g *Gate) Loading() bool { return g.loading }

// Load resolves the current identity. Authentication failures (after
// the client's one-shot refresh and retry) and transport failures both
// degrade to "no user"; nothing is surfaced to the UI.
func (g *Gate) Load(ctx context.Context) {
	defer func() { g.loading = false }()

	user, err := g.client.Me(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnauthenticated) {
			g.log.Warn("identity lookup failed", "error", err)
		}
		g.user = nil
		return
	}
	g.user = user
}

// Login authenticates and resolves the new identity. The returned
// error is for the login form to display; the gate's user is only set
// on full success.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	creds := models.Credentials{Username: username, Password: password}
	if err := g.client.Login(ctx, creds); err != nil {
		return err
	}
	user, err := g.client.Me(ctx)
	if err != nil {
		return err
	}
	g.user = user
	return nil
}

// Register creates an account. Validation failures carry field
// messages for the form.
func (g *Gate) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	return g.client.Register(ctx, reg)
}

// Forget drops the local identity without touching the server.
func (g *Gate) Forget() { g.user = nil }

// Logout forgets the user locally regardless of whether the server
// call succeeds; a failure is logged, never reported.
func (g *Gate) Logout(ctx context.Context) {
	g.Forget()
	if err := g.client.Logout(ctx); err != nil {
		g.log.Warn("server-side logout failed", "error", err)
	}
}
