package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
)

const dateLayout = "2006-01-02 15:04"

// Matches lists the fixtures next to the user's own prediction.
func (a *App) Matches(ctx context.Context, _ []string) error {
	matches, err := a.matchService.List(ctx)
	if err != nil {
		return err
	}
	guesses, err := a.guessService.List(ctx)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		a.println("No matches yet")
		return nil
	}

	byMatch := make(map[int]models.Guess, len(guesses))
	for _, g := range guesses {
		byMatch[g.Match.ID] = g
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		guess := ""
		if g, ok := byMatch[m.ID]; ok {
			guess = fmt.Sprintf("%s-%s", score(g.GuessHome), score(g.GuessAway))
		}
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			m.MatchDate.Local().Format(dateLayout),
			m.Group,
			m.TeamHome.Name + " vs " + m.TeamAway.Name,
			fmt.Sprintf("%s-%s", score(m.ScoreHome), score(m.ScoreAway)),
			guess,
		})
	}
	table(a.out, "ID\tDATE\tGROUP\tMATCH\tSCORE\tYOUR GUESS", rows)
	return nil
}

func (a *App) Guess(ctx context.Context, args []string) error {
	matchID, err := parseID(args[0], "match")
	if err != nil {
		return err
	}
	home, err := parseGoals(args[1])
	if err != nil {
		return err
	}
	away, err := parseGoals(args[2])
	if err != nil {
		return err
	}

	if err := a.guessService.Submit(ctx, matchID, home, away); err != nil {
		return err
	}
	a.success(fmt.Sprintf("Guess saved: %d-%d", home, away))
	return nil
}

func (a *App) Guesses(ctx context.Context, _ []string) error {
	guesses, err := a.guessService.List(ctx)
	if err != nil {
		return err
	}
	if len(guesses) == 0 {
		a.println("You have not guessed any match yet")
		return nil
	}

	rows := make([][]string, 0, len(guesses))
	for _, g := range guesses {
		m := g.Match
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			m.TeamHome.Name + " vs " + m.TeamAway.Name,
			fmt.Sprintf("%s-%s", score(g.GuessHome), score(g.GuessAway)),
			fmt.Sprintf("%s-%s", score(m.ScoreHome), score(m.ScoreAway)),
		})
	}
	table(a.out, "MATCH\tTEAMS\tGUESS\tRESULT", rows)
	return nil
}

// AdminScore sets the final score of a match; "-" clears a side.
func (a *App) AdminScore(ctx context.Context, args []string) error {
	matchID, err := parseID(args[0], "match")
	if err != nil {
		return err
	}
	home, err := parseOptionalGoals(args[1])
	if err != nil {
		return err
	}
	away, err := parseOptionalGoals(args[2])
	if err != nil {
		return err
	}

	if err := a.matchService.UpdateScore(ctx, matchID, home, away); err != nil {
		return err
	}
	a.success(fmt.Sprintf("Match %d updated: %s-%s", matchID, score(home), score(away)))
	return nil
}
