package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// asAdmin confirms the role with the server before run. The cached profile
// can predate a role change, so a refusal also refreshes it.
func (a *App) asAdmin(run func(ctx context.Context, args []string) error) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		u, err := a.authService.RequireAdmin(ctx)
		if errors.Is(err, services.ErrForbidden) {
			if me, merr := a.authService.Me(ctx); merr == nil {
				a.user = me
			}
		}
		if err != nil {
			return err
		}
		a.user = u
		return run(ctx, args)
	}
}

func (a *App) Register(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := a.authService.Register(ctx, req); err != nil {
		return err
	}
	a.success("Account created, you can log in now")
	return nil
}

// Login asks for credentials, stores the issued token pair and loads the
// profile so the prompt can show who is logged in.
func (a *App) Login(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, username, password); err != nil {
		a.logger.Info(ctx, "login failed", "username", username, "error", err)
		return err
	}

	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u
	a.competitionService.Invalidate()
	a.success("Welcome, " + u.Username + "!")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	a.competitionService.Invalidate()
	a.println("Logged out")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u

	role := "player"
	if u.IsAdmin() {
		role = "admin"
	}
	table(a.out, "FIELD\tVALUE", [][]string{
		{"username", u.Username},
		{"email", u.Email},
		{"role", role},
	})
	return nil
}

// Status prints what the local session knows without asking the server.
func (a *App) Status(ctx context.Context, _ []string) error {
	keys, err := a.store.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		a.printf("Stored locally: %s\n", strings.Join(keys, ", "))
	}

	claims, err := a.authService.Claims(ctx)
	if err != nil {
		a.println("Not logged in")
		return nil
	}

	a.printf("Logged in")
	if a.user != nil {
		a.printf(" as %s", a.user.Username)
	}
	a.println()
	if claims.UserID != "" {
		a.printf("User id: %s\n", claims.UserID)
	}
	if left, ok := claims.ExpiresIn(time.Now()); ok {
		if left == 0 {
			a.println("Access token: expired, will be refreshed on next request")
		} else {
			a.printf("Access token: valid for %s\n", left.Round(time.Second))
		}
	}
	return nil
}

func (a *App) ResetPassword(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter the e-mail of your account", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	a.success("If the account exists, a reset link is on its way")
	return nil
}

// ConfirmReset takes the uid and token from the reset link.
func (a *App) ConfirmReset(ctx context.Context, _ []string) error {
	uid, err := getSimpleText(a.reader, "Enter uid from the reset link", a.out)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader, "Enter token from the reset link", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter new password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.ConfirmPasswordReset(ctx, uid, token, password, confirm); err != nil {
		return err
	}
	a.success("Password changed, you can log in now")
	return nil
}
