package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

func staticPrompt(username, password string) CredentialPrompt {
	return func(context.Context) (string, []byte, error) {
		return username, []byte(password), nil
	}
}

func TestHTTPProvider_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth/token", r.URL.Path)

		var req tokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "password", req.GrantType)
		require.Equal(t, "ada@example.com", req.Username)
		require.Equal(t, "hunter2", req.Password)

		json.NewEncoder(w).Encode(tokenResponse{IDToken: "idt", AccessToken: "act"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "cli", staticPrompt("ada@example.com", "hunter2"), logging.NewNop())

	creds, err := p.Login(context.Background())
	require.NoError(t, err)
	require.Equal(t, "idt", creds.IDToken)
	require.Equal(t, "act", creds.AccessToken)
}

func TestHTTPProvider_Login_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("wrong credentials"))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "cli", staticPrompt("ada@example.com", "nope"), logging.NewNop())

	_, err := p.Login(context.Background())
	var authErr *common.AuthError
	require.True(t, errors.As(err, &authErr))
	require.Contains(t, authErr.Reason, "wrong credentials")
}

func TestHTTPProvider_Login_PromptCancelled(t *testing.T) {
	cancelled := errors.New("ctrl-c")
	p := NewHTTPProvider("http://127.0.0.1:0", "cli", func(context.Context) (string, []byte, error) {
		return "", nil, cancelled
	}, logging.NewNop())

	_, err := p.Login(context.Background())
	var authErr *common.AuthError
	require.True(t, errors.As(err, &authErr))
	require.ErrorIs(t, err, cancelled)
}

func TestHTTPProvider_Login_MissingIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "act"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "cli", staticPrompt("a", "b"), logging.NewNop())

	_, err := p.Login(context.Background())
	var authErr *common.AuthError
	require.True(t, errors.As(err, &authErr))
}

func TestHTTPProvider_ClearRemoteSession(t *testing.T) {
	var status = http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/logout", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "cli", staticPrompt("a", "b"), logging.NewNop())
	require.NoError(t, p.ClearRemoteSession(context.Background()))

	status = http.StatusBadGateway
	require.Error(t, p.ClearRemoteSession(context.Background()))
}
