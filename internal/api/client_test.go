package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second, discardLogger())
	require.NoError(t, err)
	return c, srv
}

func TestLogin_StoresSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Username != "alice" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access", Value: "tok-1"})
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"success": true}`)
	})
	mux.HandleFunc("GET /accounts/me/", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("access"); err != nil || c.Value != "tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: 7, Username: "alice"})
	})

	c, _ := newClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, models.Credentials{Username: "alice", Password: "secret"}))

	user, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestMe_RefreshesOnceAndRetriesOnce(t *testing.T) {
	var meCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/me/", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		if c, err := r.Cookie("access"); err == nil && c.Value == "fresh" {
			json.NewEncoder(w).Encode(models.User{ID: 1, Username: "bob"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /accounts/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		http.SetCookie(w, &http.Cookie{Name: "access", Value: "fresh"})
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newClient(t, mux)

	user, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, 2, meCalls)
	assert.Equal(t, 1, refreshCalls)
}

func TestMe_SecondFailureDegradesToUnauthenticated(t *testing.T) {
	var meCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/me/", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /accounts/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newClient(t, mux)

	user, err := c.Me(context.Background())

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	// Exactly one refresh and one retried lookup, then give up.
	assert.Equal(t, 2, meCalls)
	assert.Equal(t, 1, refreshCalls)
}

func TestMe_RefreshFailureShortCircuits(t *testing.T) {
	var meCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/me/", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /accounts/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, _ := newClient(t, mux)

	_, err := c.Me(context.Background())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 1, meCalls)
}

func TestRegister_DuplicateUsernameSurfacesFieldError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/register/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"username": ["A user with that username already exists."]}`)
	})

	c, _ := newClient(t, mux)

	_, err := c.Register(context.Background(), models.Registration{Username: "alice", Password: "x"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "A user with that username already exists.", verr.FieldError("username"))
}

func TestTasks_CRUDAdoptsServerRepresentation(t *testing.T) {
	stored := map[int64]models.Task{}
	nextID := int64(0)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/", func(w http.ResponseWriter, r *http.Request) {
		out := make([]models.Task, 0, len(stored))
		for id := int64(1); id <= nextID; id++ {
			if task, ok := stored[id]; ok {
				out = append(out, task)
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /tasks/create/", func(w http.ResponseWriter, r *http.Request) {
		var fields models.TaskFields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		nextID++
		created := models.Task{
			ID:          nextID,
			Title:       fields.Title,
			Description: fields.Description,
			DueDate:     fields.DueDate,
			Category:    fields.Category,
			Status:      models.StatusPending, // server default, not the submitted payload
		}
		stored[created.ID] = created
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	})
	mux.HandleFunc("PUT /tasks/{id}/", func(w http.ResponseWriter, r *http.Request) {
		var fields models.TaskFields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		require.NoError(t, err)
		task, ok := stored[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		task.Title = fields.Title
		task.Description = fields.Description
		task.DueDate = fields.DueDate
		task.Category = fields.Category
		task.Status = fields.Status
		stored[id] = task
		json.NewEncoder(w).Encode(task)
	})
	mux.HandleFunc("DELETE /tasks/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		require.NoError(t, err)
		delete(stored, id)
		w.WriteHeader(http.StatusNoContent)
	})

	c, _ := newClient(t, mux)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, models.TaskFields{Title: "write report", Category: "work"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, models.StatusPending, created.Status)

	fields := created.Fields()
	fields.Status = models.StatusCompleted
	updated, err := c.UpdateTask(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "write report", updated.Title)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, *updated, tasks[0])

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDo_ServerErrorIsStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	})

	c, _ := newClient(t, mux)

	_, err := c.ListTasks(context.Background())

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
}

func TestDo_TransportFailureWrapped(t *testing.T) {
	c, err := New("http://127.0.0.1:1", time.Second, discardLogger())
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestDo_SetsRequestID(t *testing.T) {
	var got string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]models.Task{})
	})

	c, _ := newClient(t, mux)

	_, err := c.ListTasks(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
