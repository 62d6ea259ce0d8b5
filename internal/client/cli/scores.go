package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) Scores(ctx context.Context, _ []string) error {
	rows, err := a.scoreService.Leaderboard(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		a.println("No scores yet")
		return nil
	}

	out := make([][]string, 0, len(rows))
	for i, r := range rows {
		out = append(out, []string{
			strconv.Itoa(i + 1),
			r.User,
			strconv.Itoa(r.Points),
			strconv.Itoa(r.Exact),
			strconv.Itoa(r.OneScore),
			strconv.Itoa(r.TotalGuesses),
			fmt.Sprintf("%.1f%%", r.WinPercentage),
			fmt.Sprintf("%.2f", r.AvgPoints),
		})
	}
	table(a.out, "#\tUSER\tPOINTS\tEXACT\tONE SCORE\tGUESSES\tWIN %\tAVG", out)
	return nil
}
