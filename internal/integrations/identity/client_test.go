package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/200", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 200, "email": "client@example.com", "name": "Alex"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nopLogger{})

	user, err := client.GetUser(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, int64(200), user.ID)
	assert.Equal(t, "client@example.com", user.Email)
	assert.Equal(t, "Alex", user.Name)
}

func TestGetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nopLogger{})

	_, err := client.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nopLogger{})

	_, err := client.GetUser(context.Background(), 200)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
