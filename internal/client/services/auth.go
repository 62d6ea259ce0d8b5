// Package services holds the client-side use cases: authentication,
// competitions, matches, guesses, bonus questions and the leaderboard. Each
// one is a thin layer over client.Client.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
)

// AuthService covers login state and account management.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RequireAdmin(ctx context.Context) (*models.User, error)
	Claims(ctx context.Context) (*session.Claims, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uid, token, password, confirm string) error
}

type authService struct {
	client client.Client
	store  *session.Store
}

func NewAuthService(c client.Client, store *session.Store) AuthService {
	return &authService{client: c, store: store}
}

// Login exchanges credentials for a token pair and stores it. Old tokens are
// dropped first so a failed login is reported as such instead of triggering
// a refresh.
func (a *authService) Login(ctx context.Context, username, password string) error {
	req := models.LoginRequest{Username: username, Password: password}
	if err := checkInput(req); err != nil {
		return err
	}
	if err := a.store.ClearTokens(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	var pair models.TokenPair
	if err := sendJSON(ctx, a.client, http.MethodPost, "auth/login/", req, &pair); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return errors.New("login: server returned an incomplete token pair")
	}
	if err := a.store.SetTokens(ctx, pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := sendJSON(ctx, a.client, http.MethodPost, "auth/register/", req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout forgets the whole local session, selection included.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Reset(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) LoggedIn(ctx context.Context) (bool, error) {
	return a.store.LoggedIn(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := getJSON(ctx, a.client, "auth/me/", &u); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &u, nil
}

// CurrentUser loads the profile of the stored session. It returns (nil, nil)
// when nobody is logged in. A session the server refuses is discarded; an
// unreachable server leaves it in place.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	ok, err := a.store.LoggedIn(ctx)
	if err != nil || !ok {
		return nil, err
	}

	u, err := a.Me(ctx)
	if err == nil {
		return u, nil
	}
	if errors.Is(err, client.ErrUnavailable) {
		return nil, err
	}
	if cerr := a.store.ClearTokens(ctx); cerr != nil {
		return nil, errors.Join(err, cerr)
	}
	return nil, err
}

func (a *authService) RequireAdmin(ctx context.Context) (*models.User, error) {
	u, err := a.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrForbidden
	}
	return u, nil
}

func (a *authService) Claims(ctx context.Context) (*session.Claims, error) {
	token, err := a.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return session.ParseClaims(token)
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	req := models.PasswordResetRequest{Email: email}
	if err := sendJSON(ctx, a.client, http.MethodPost, "auth/password-reset/", req, nil); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, uid, token, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	req := models.PasswordResetConfirmRequest{UID: uid, Token: token, NewPassword: password}
	if err := sendJSON(ctx, a.client, http.MethodPost, "auth/password-reset-confirm/", req, nil); err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}
	return nil
}
