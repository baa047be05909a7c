package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Enfoirer/3D-building-generator/internal/client/api"
	"github.com/Enfoirer/3D-building-generator/internal/client/auth"
	"github.com/Enfoirer/3D-building-generator/internal/client/config"
	"github.com/Enfoirer/3D-building-generator/internal/client/credstore"
	"github.com/Enfoirer/3D-building-generator/internal/client/services"
	"github.com/Enfoirer/3D-building-generator/internal/client/snapshot"
	"github.com/Enfoirer/3D-building-generator/internal/filex"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// App owns the wired client stack and the interactive session.
type App struct {
	config *config.Config
	sync   *services.SyncService
	creds  *credstore.SQLiteStore
	log    logging.Logger
	reader *bufio.Reader
}

// NewApp wires the full client stack from configuration: the data directory,
// the sqlite credential store, the snapshot file, the backend API client,
// the identity provider, and the sync engine on top of them.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	credStore, err := credstore.Open(ctx, filepath.Join(dataDir, "credentials.db"))
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	app := &App{
		config: cfg,
		creds:  credStore,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}

	provider := auth.NewHTTPProvider(cfg.AuthBaseURL, cfg.ClientID, app.promptCredentials, log)
	manager := auth.NewManager(provider, credStore, log)
	store := snapshot.NewFileStore(filepath.Join(dataDir, "snapshot.json"), log)
	client := api.NewHTTPClient(cfg.APIBaseURL, log)

	app.sync = services.NewSyncService(client, manager, store, log)
	return app, nil
}

// promptCredentials collects the email and password interactively.
func (a *App) promptCredentials(ctx context.Context) (string, []byte, error) {
	username, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

// Run restores the previous session, starts the background refresh loop, and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.creds.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.sync.LoadCached(ctx)
	if err := a.sync.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	go a.StartAutoRefresh(ctx, a.config.RefreshInterval)

	printlnFn("Building3D CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// StartAutoRefresh re-syncs a signed-in session on every tick. Failures are
// recorded by the engine and surfaced in the prompt status; the loop keeps
// running until ctx is cancelled.
func (a *App) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			tctx, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := a.sync.Refresh(tctx); err != nil {
				a.log.Warn(ctx, "background refresh failed", "error", err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.sync.State().Identity != nil
}

// status builds the prompt suffix: the signed-in user plus a sync warning
// marker when the last background refresh failed.
func (a *App) status() string {
	state := a.sync.State()
	s := ""
	if state.Identity != nil {
		s = state.Identity.DisplayName
	}
	if state.SyncError != "" {
		s += " !sync"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
