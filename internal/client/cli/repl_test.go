package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShell struct {
	loggedIn bool
	admin    bool

	calls []string
	errs  []error
	out   bytes.Buffer
}

func (f *fakeShell) isLoggedIn() bool { return f.loggedIn }
func (f *fakeShell) isAdmin() bool { return f.admin }
func (f *fakeShell) printErr(err error) { f.errs = append(f.errs, err) }
func (f *fakeShell) output() io.Writer { return &f.out }
func (f *fakeShell) commands() []command {
	record := func(name string) func(context.Context, []string) error {
		return func(_ context.Context, args []string) error {
			f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
			return nil
		}
	}
	return []command{
		{name: "login", usage: "login", access: guestOnly, run: func(context.Context, []string) error {
			f.calls = append(f.calls, "login")
			f.loggedIn = true
			return nil
		}},
		{name: "matches", usage: "matches", access: userOnly, run: record("matches")},
		{name: "guess", usage: "guess <match> <home> <away>", args: 3, access: userOnly, run: record("guess")},
		{name: "admin-score", usage: "admin-score", args: 3, access: adminOnly, run: record("admin-score")},
		{name: "status", usage: "status", access: anyone, run: record("status")},
		{name: "boom", usage: "boom", access: anyone, run: func(context.Context, []string) error {
			return errors.New("boom")
		}},
	}
}

func runLines(sh *fakeShell, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), sh, func() string { return "status" }, r)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	sh := &fakeShell{}
	runLines(sh,
		"matches",
		"login",
		"",
		"matches",
		"guess 1 2 0",
		"guess 1",
		"status",
		"foobar",
		"exit",
		"matches",
	)

	assert.Equal(t, []string{"login", "matches", "guess 1 2 0", "status"}, sh.calls)
	out := sh.out.String()
	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Usage: guess <match> <home> <away>")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "pb (status)> ")
}

func TestRunREPL_Access(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		admin    bool
		line     string
		wantCall bool
		wantMsg  string
	}{
		{"guest cannot score", false, false, "admin-score 1 1 1", false, "Please log in first"},
		{"player cannot score", true, false, "admin-score 1 1 1", false, "for administrators"},
		{"admin scores", true, true, "admin-score 1 1 1", true, ""},
		{"logged in cannot login", true, false, "login", false, "Already logged in"},
		{"anyone status", false, false, "status", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := &fakeShell{loggedIn: tt.loggedIn, admin: tt.admin}
			runLines(sh, tt.line)

			assert.Equal(t, tt.wantCall, len(sh.calls) == 1)
			if tt.wantMsg != "" {
				assert.Contains(t, sh.out.String(), tt.wantMsg)
			}
		})
	}
}

func TestRunREPL_ErrorsDoNotStopLoop(t *testing.T) {
	sh := &fakeShell{}
	runLines(sh, "boom", "status", "quit")

	require.Len(t, sh.errs, 1)
	assert.EqualError(t, sh.errs[0], "boom")
	assert.Equal(t, []string{"status"}, sh.calls)
}

func TestRunREPL_HelpFollowsLoginState(t *testing.T) {
	guest := &fakeShell{}
	runLines(guest, "help")
	assert.Contains(t, guest.out.String(), "login")
	assert.NotContains(t, guest.out.String(), "matches")

	admin := &fakeShell{loggedIn: true, admin: true}
	runLines(admin, "help")
	assert.Contains(t, admin.out.String(), "matches")
	assert.Contains(t, admin.out.String(), "admin-score")
	assert.NotContains(t, admin.out.String(), "  login")
}

func TestAppCommands_Unique(t *testing.T) {
	a := newTestApp(t)
	seen := map[string]bool{}
	for _, c := range a.commands() {
		require.False(t, seen[c.name], "duplicate command %q", c.name)
		seen[c.name] = true
		assert.NotNil(t, c.run, c.name)
		assert.True(t, strings.HasPrefix(c.usage, c.name), c.name)
	}
}
