// Package cli provides the interactive reconstruction command-line client.
//
// It wires configuration, the durable snapshot, the credential store, the
// backend API client, and an interactive REPL. Typical flow: restore the
// previous session, start a background refresh loop, and execute user
// commands.
//
// Key features:
//   - Login / Logout / Whoami
//   - Submit a photo set for reconstruction
//   - List jobs and upload history
//   - Download finished artifacts
//   - Manual sync with the backend
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartAutoRefresh, and runREPL for details.
package cli
