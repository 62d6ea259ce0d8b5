package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/peyjabanki/internal/buildinfo"
	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/config"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/peyjabanki/internal/client/services"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
	"github.com/dmitrijs2005/peyjabanki/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	authService        services.AuthService
	competitionService services.CompetitionService
	matchService       services.MatchService
	guessService       services.GuessService
	bonusService       services.BonusService
	scoreService       services.ScoreService

	store *session.Store

	// user is the profile of the logged-in user, nil when logged out.
	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	store := session.NewStore(metadata.NewSQLiteRepository(db))

	a := &App{
		config: c,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	apiClient, err := client.NewHTTPClient(c.BaseURL, c.RefreshURL, store,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithRefreshTimeout(c.RefreshTimeout),
		client.WithUserAgent(buildinfo.UserAgent()),
		client.WithLogger(logger.With("component", "api")),
		client.WithSessionInvalidated(a.onSessionInvalidated),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.wire(apiClient, store)
	return a, nil
}

func (a *App) wire(c client.Client, store *session.Store) {
	a.store = store
	a.authService = services.NewAuthService(c, store)
	a.competitionService = services.NewCompetitionService(c, store)
	a.matchService = services.NewMatchService(c, store)
	a.guessService = services.NewGuessService(c, store)
	a.bonusService = services.NewBonusService(c, store)
	a.scoreService = services.NewScoreService(c)
}

// Run restores the previous session, if any, and serves the REPL until the
// user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to peyjabanki CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(context.Background(), "close database", "error", err)
	}
	a.db = nil
}

func (a *App) restoreSession(ctx context.Context) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
		a.printErr(err)
		return
	}
	if u != nil {
		a.user = u
		a.printf("Logged in as %s\n", u.Username)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) isAdmin() bool {
	return a.user.IsAdmin()
}

// onSessionInvalidated is the terminal equivalent of sending the user to the
// login page: local state is dropped and the prompt returns to guest mode.
func (a *App) onSessionInvalidated(ctx context.Context, err error) {
	a.logger.Info(ctx, "session invalidated", "error", err)
	a.user = nil
	a.competitionService.Invalidate()
	a.warnf("Your session has expired. Please log in again.\n")
}

func (a *App) status() string {
	if a.user == nil {
		return "guest"
	}
	s := a.user.Username
	if a.isAdmin() {
		s += " [admin]"
	}
	return s
}
