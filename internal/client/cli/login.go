package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Enfoirer/3D-building-generator/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in. Use 'logout' first.")
		return nil
	}

	if err := a.sync.Login(ctx); err != nil {
		var authErr *common.AuthError
		if errors.As(err, &authErr) {
			printlnFn("Login failed:", authErr.Reason)
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	if id := a.sync.State().Identity; id != nil {
		printlnFn(fmt.Sprintf("Signed in as %s", id.DisplayName))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sync.SignOut(ctx); err != nil {
		printlnFn("Signed out (remote session may still be active):", err.Error())
		return err
	}
	printlnFn("Signed out. Local history discarded.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id := a.sync.State().Identity
	if id == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> (%s)", id.DisplayName, id.Email, id.ID))
	return nil
}
