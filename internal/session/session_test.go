package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
)

type fakeIdentity struct {
	meUser    *models.User
	meErr     error
	loginErr  error
	logoutErr error

	meCalls     int
	logoutCalls int
}

func (f *fakeIdentity) Me(context.Context) (*models.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeIdentity) Login(_ context.Context, creds models.Credentials) error {
	return f.loginErr
}

func (f *fakeIdentity) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	return &models.User{Username: reg.Username}, nil
}

func (f *fakeIdentity) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_SetsUser(t *testing.T) {
	fake := &fakeIdentity{meUser: &models.User{ID: 1, Username: "alice"}}
	g := New(fake, testLogger())
	assert.True(t, g.Loading())

	g.Load(context.Background())

	assert.False(t, g.Loading())
	require.NotNil(t, g.User())
	assert.Equal(t, "alice", g.User().Username)
}

func TestLoad_UnauthenticatedDegradesToNoUser(t *testing.T) {
	fake := &fakeIdentity{meErr: api.ErrUnauthenticated}
	g := New(fake, testLogger())

	g.Load(context.Background())

	assert.Nil(t, g.User())
	assert.False(t, g.Loading())
}

func TestLoad_TransportFailureDegradesToNoUser(t *testing.T) {
	fake := &fakeIdentity{meErr: errors.New("connection refused")}
	g := New(fake, testLogger())

	g.Load(context.Background())

	assert.Nil(t, g.User())
}

func TestLogin_Success(t *testing.T) {
	fake := &fakeIdentity{meUser: &models.User{ID: 2, Username: "bob"}}
	g := New(fake, testLogger())

	err := g.Login(context.Background(), "bob", "pw")

	require.NoError(t, err)
	require.NotNil(t, g.User())
	assert.Equal(t, "bob", g.User().Username)
}

func TestLogin_BadCredentialsLeaveUserUnset(t *testing.T) {
	fake := &fakeIdentity{loginErr: api.ErrUnauthenticated}
	g := New(fake, testLogger())

	err := g.Login(context.Background(), "bob", "wrong")

	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Nil(t, g.User())
	assert.Zero(t, fake.meCalls)
}

func TestForget_DropsUserWithoutServerCall(t *testing.T) {
	fake := &fakeIdentity{meUser: &models.User{ID: 4, Username: "dave"}}
	g := New(fake, testLogger())
	g.Load(context.Background())
	require.NotNil(t, g.User())

	g.Forget()

	assert.Nil(t, g.User())
	assert.Zero(t, fake.logoutCalls)
}

func TestLogout_ForgetsLocallyEvenWhenServerFails(t *testing.T) {
	fake := &fakeIdentity{
		meUser:    &models.User{ID: 3, Username: "carol"},
		logoutErr: errors.New("server exploded"),
	}
	g := New(fake, testLogger())
	g.Load(context.Background())
	require.NotNil(t, g.User())

	g.Logout(context.Background())

	assert.Nil(t, g.User())
	assert.Equal(t, 1, fake.logoutCalls)
}
