package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Enfoirer/3D-building-generator/internal/client/credstore"
	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// State is the manager's credential lifecycle state.
type State string

const (
	StateSignedOut      State = "signedOut"
	StateAuthenticating State = "authenticating"
	StateSignedIn       State = "signedIn"
	StateSigningOut     State = "signingOut"
)

// Manager owns the credential lifecycle: interactive login, secure storage
// and retrieval, session teardown, and token selection for outgoing requests.
// Only one login/logout transition can be in flight at a time.
type Manager struct {
	provider IdentityProvider
	store    credstore.Store
	log      logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
	creds *Credentials
}

func NewManager(provider IdentityProvider, store credstore.Store, log logging.Logger) *Manager {
	return &Manager{
		provider: provider,
		store:    store,
		log:      log,
		now:      time.Now,
		state:    StateSignedOut,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Login runs the interactive flow, stores the resulting credentials, and
// returns them. While a flow is already running, a second call is a no-op and
// returns ErrLoginInProgress immediately. On provider failure or cancellation
// the state is left unchanged.
func (m *Manager) Login(ctx context.Context) (*Credentials, error) {
	m.mu.Lock()
	if m.state == StateAuthenticating || m.state == StateSigningOut {
		m.mu.Unlock()
		return nil, common.ErrLoginInProgress
	}
	prev := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	// The interactive flow can block on user input; never hold the lock here.
	creds, err := m.provider.Login(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.state = prev
		return nil, err
	}

	if err := m.store.PutAll(ctx, map[string]string{
		credstore.KeyIDToken:     creds.IDToken,
		credstore.KeyAccessToken: creds.AccessToken,
	}); err != nil {
		m.state = prev
		return nil, fmt.Errorf("store credentials: %w", err)
	}

	m.creds = creds
	m.state = StateSignedIn
	return creds, nil
}

// StoredCredentials retrieves previously stored credentials without any user
// interaction. Missing or expired credentials yield (nil, nil).
func (m *Manager) StoredCredentials(ctx context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.creds != nil && !tokenExpired(m.creds.IDToken, m.now()) {
		return m.creds, nil
	}

	idToken, err := m.store.Get(ctx, credstore.KeyIDToken)
	if err != nil {
		return nil, fmt.Errorf("read stored credentials: %w", err)
	}
	if idToken == "" {
		return nil, nil
	}
	if tokenExpired(idToken, m.now()) {
		m.log.Debug(ctx, "stored identity token expired")
		return nil, nil
	}

	accessToken, err := m.store.Get(ctx, credstore.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read stored credentials: %w", err)
	}

	m.creds = &Credentials{IDToken: idToken, AccessToken: accessToken}
	m.state = StateSignedIn
	return m.creds, nil
}

// Token returns the bearer token for an outgoing request, preferring the
// access token and falling back to the identity token. Without usable
// credentials it returns common.ErrMissingCredentials.
func (m *Manager) Token(ctx context.Context) (string, error) {
	creds, err := m.StoredCredentials(ctx)
	if err != nil {
		return "", err
	}
	if creds == nil {
		return "", common.ErrMissingCredentials
	}
	return creds.BearerToken()
}

// SignOut purges local credential storage and best-effort ends the remote
// session. Remote failures are logged and swallowed: session end is advisory.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateAuthenticating || m.state == StateSigningOut {
		m.mu.Unlock()
		return common.ErrLoginInProgress
	}
	prevState := m.state
	m.state = StateSigningOut
	m.mu.Unlock()

	if err := m.provider.ClearRemoteSession(ctx); err != nil {
		m.log.Warn(ctx, "cannot end remote session", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Storage is purged before the state transition commits; a failed purge
	// keeps the session signed in.
	if err := m.store.Clear(ctx); err != nil {
		m.state = prevState
		return fmt.Errorf("clear credentials: %w", err)
	}

	m.creds = nil
	m.state = StateSignedOut
	return nil
}
