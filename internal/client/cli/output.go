package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/services"
	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) warnf(format string, args ...any) {
	warnColor.Fprintf(a.out, format, args...)
}

func (a *App) success(msg string) {
	okColor.Fprintln(a.out, msg)
}

// printErr turns an error into a message for the user.
func (a *App) printErr(err error) {
	errColor.Fprintln(a.out, describe(err))
}

func describe(err error) string {
	var httpErr *client.HTTPError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return "Session expired, log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, services.ErrForbidden):
		return "Admin rights required"
	case errors.Is(err, services.ErrInvalidInput):
		return "Invalid input: " + err.Error()
	case errors.As(err, &httpErr):
		switch {
		case httpErr.Status == http.StatusUnauthorized:
			return "Not authorized"
		case httpErr.Status == http.StatusForbidden:
			return "Not allowed"
		case httpErr.Status == http.StatusNotFound:
			return "Not found"
		case len(httpErr.Body) > 0:
			return fmt.Sprintf("Request rejected (%d): %s", httpErr.Status, strings.TrimSpace(string(httpErr.Body)))
		}
		return fmt.Sprintf("Request rejected (%d)", httpErr.Status)
	}
	return "Error: " + err.Error()
}

// table writes tab-separated rows aligned in columns under header.
func table(w io.Writer, header string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func score(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func parseID(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", services.ErrInvalidInput, what, s)
	}
	return n, nil
}

func parseGoals(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: score must be a non-negative number, got %q", services.ErrInvalidInput, s)
	}
	return n, nil
}

// parseOptionalGoals accepts "-" for "no score yet".
func parseOptionalGoals(s string) (*int, error) {
	if s == "-" {
		return nil, nil
	}
	n, err := parseGoals(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
