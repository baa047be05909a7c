package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// IdentityProvider is the identity-provider capability consumed by the
// Manager: an interactive login flow plus advisory remote session teardown.
type IdentityProvider interface {
	// Login runs the interactive authentication flow and blocks until it
	// completes. Cancellation or provider failure yields an *common.AuthError.
	Login(ctx context.Context) (*Credentials, error)

	// ClearRemoteSession asks the provider to end the browser session.
	// Session end is advisory; callers swallow failures.
	ClearRemoteSession(ctx context.Context) error
}

// CredentialPrompt collects the user's login input. Returning an error aborts
// the flow (user cancellation included). The password is wiped after use.
type CredentialPrompt func(ctx context.Context) (username string, password []byte, err error)

// HTTPProvider exchanges user credentials for tokens against an OAuth-style
// token endpoint (`POST {base}/oauth/token`), the flow the backend's identity
// provider exposes for trusted first-party clients.
type HTTPProvider struct {
	baseURL    string
	clientID   string
	prompt     CredentialPrompt
	httpClient *http.Client
	log        logging.Logger
}

func NewHTTPProvider(baseURL, clientID string, prompt CredentialPrompt, log logging.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		prompt:     prompt,
		httpClient: &http.Client{},
		log:        log,
	}
}

type tokenRequest struct {
	GrantType string `json:"grant_type"`
	ClientID  string `json:"client_id,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type tokenResponse struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

func (p *HTTPProvider) Login(ctx context.Context) (*Credentials, error) {
	username, password, err := p.prompt(ctx)
	if err != nil {
		return nil, &common.AuthError{Reason: "login cancelled", Err: err}
	}
	defer wipe(password)

	body, err := json.Marshal(tokenRequest{
		GrantType: "password",
		ClientID:  p.clientID,
		Username:  username,
		Password:  string(password),
	})
	if err != nil {
		return nil, &common.AuthError{Reason: "cannot encode token request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return nil, &common.AuthError{Reason: "cannot build token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &common.AuthError{Reason: "identity provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		reason := strings.TrimSpace(string(msg))
		if reason == "" {
			reason = fmt.Sprintf("identity provider returned %d", resp.StatusCode)
		}
		return nil, &common.AuthError{Reason: reason}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &common.AuthError{Reason: "cannot decode token response", Err: err}
	}
	if tr.IDToken == "" {
		return nil, &common.AuthError{Reason: "identity provider returned no identity token"}
	}

	return &Credentials{IDToken: tr.IDToken, AccessToken: tr.AccessToken}, nil
}

func (p *HTTPProvider) ClearRemoteSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/logout", nil)
	if err != nil {
		return err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout returned %d", resp.StatusCode)
	}
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
