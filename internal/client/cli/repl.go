package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// access says who may run a command.
type access int

const (
	anyone access = iota
	guestOnly
	userOnly
	adminOnly
)

type command struct {
	name  string
	usage string
	help  string
	// args is the exact number of positional arguments.
	args   int
	access access
	run    func(ctx context.Context, args []string) error
}

// shell is what the REPL needs from the application. App satisfies it; tests
// provide a stub.
type shell interface {
	isLoggedIn() bool
	isAdmin() bool
	commands() []command
	printErr(err error)
	output() io.Writer
}

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them. Handlers prompt for more input on the same reader.
// Handler errors are reported through printErr and never end the loop.
func runREPL(ctx context.Context, sh shell, statusFn func() string, reader *bufio.Reader) {
	w := sh.output()
	cmds := make(map[string]command)
	for _, c := range sh.commands() {
		cmds[c.name] = c
	}

	for {
		fmt.Fprintf(w, "pb (%s)> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, sh)
			continue
		}

		c, ok := cmds[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if msg := denied(sh, c); msg != "" {
			fmt.Fprintln(w, msg)
			continue
		}
		if len(args) != c.args {
			fmt.Fprintln(w, "Usage:", c.usage)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			sh.printErr(err)
		}
	}
}

func denied(sh shell, c command) string {
	switch c.access {
	case guestOnly:
		if sh.isLoggedIn() {
			return "Already logged in, use 'logout' first"
		}
	case userOnly:
		if !sh.isLoggedIn() {
			return "Please log in first"
		}
	case adminOnly:
		if !sh.isLoggedIn() {
			return "Please log in first"
		}
		if !sh.isAdmin() {
			return "This command is for administrators"
		}
	}
	return ""
}

func printHelp(w io.Writer, sh shell) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range sh.commands() {
		if denied(sh, c) != "" {
			continue
		}
		fmt.Fprintf(w, "  %-36s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(w, "  %-36s %s\n", "exit", "leave the program")
}

func (a *App) output() io.Writer { return a.out }

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register", help: "create an account", access: guestOnly, run: a.Register},
		{name: "login", usage: "login", help: "log in", access: guestOnly, run: a.Login},
		{name: "reset-password", usage: "reset-password", help: "request a password reset e-mail", access: guestOnly, run: a.ResetPassword},
		{name: "reset-confirm", usage: "reset-confirm", help: "set a new password from a reset link", access: guestOnly, run: a.ConfirmReset},
		{name: "logout", usage: "logout", help: "log out and forget the session", access: userOnly, run: a.Logout},
		{name: "me", usage: "me", help: "show your profile", access: userOnly, run: a.Me},
		{name: "status", usage: "status", help: "show session details", access: anyone, run: a.Status},
		{name: "competitions", usage: "competitions", help: "list competitions", access: userOnly, run: a.Competitions},
		{name: "use", usage: "use <competition>", help: "switch competition", args: 1, access: userOnly, run: a.Use},
		{name: "matches", usage: "matches", help: "list matches", access: userOnly, run: a.Matches},
		{name: "guess", usage: "guess <match> <home> <away>", help: "predict a score", args: 3, access: userOnly, run: a.Guess},
		{name: "guesses", usage: "guesses", help: "list your predictions", access: userOnly, run: a.Guesses},
		{name: "bonus", usage: "bonus", help: "list bonus questions and your answers", access: userOnly, run: a.Bonus},
		{name: "answer", usage: "answer <question> <choice>", help: "answer a bonus question", args: 2, access: userOnly, run: a.Answer},
		{name: "scores", usage: "scores", help: "show the leaderboard", access: userOnly, run: a.Scores},
		{name: "admin-score", usage: "admin-score <match> <home|-> <away|->", help: "set or clear a final score", args: 3, access: adminOnly, run: a.asAdmin(a.AdminScore)},
		{name: "add-question", usage: "add-question", help: "create a bonus question", access: adminOnly, run: a.asAdmin(a.AddQuestion)},
		{name: "add-choice", usage: "add-choice <question>", help: "add a choice to a bonus question", args: 1, access: adminOnly, run: a.asAdmin(a.AddChoice)},
		{name: "set-correct", usage: "set-correct <question> <choice>", help: "mark the correct bonus answer", args: 2, access: adminOnly, run: a.asAdmin(a.SetCorrect)},
	}
}
