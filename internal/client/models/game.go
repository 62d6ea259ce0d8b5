package models

import "time"

// Competition dates are plain calendar dates ("2026-06-11"), kept as sent.
type Competition struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type Team struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	FlagURL     string `json:"flag_url"`
}

// Match is a game between two teams. Scores stay nil until the result is in.
type Match struct {
	ID          int       `json:"id"`
	TeamHome    Team      `json:"team_home"`
	TeamAway    Team      `json:"team_away"`
	MatchDate   time.Time `json:"match_date"`
	ScoreHome   *int      `json:"score_home"`
	ScoreAway   *int      `json:"score_away"`
	Group       string    `json:"group"`
	Venue       string    `json:"venue,omitempty"`
	Competition int       `json:"competition,omitempty"`
}

// Finished reports whether both scores are known.
func (m *Match) Finished() bool {
	return m.ScoreHome != nil && m.ScoreAway != nil
}

type MatchScoreUpdate struct {
	ScoreHome *int `json:"score_home" validate:"omitnil,gte=0"`
	ScoreAway *int `json:"score_away" validate:"omitnil,gte=0"`
}

// Guess is a user's prediction as listed by guesses/; the match is expanded.
type Guess struct {
	ID        int       `json:"id"`
	Match     Match     `json:"match"`
	GuessHome *int      `json:"guess_home"`
	GuessAway *int      `json:"guess_away"`
	CreatedAt time.Time `json:"created_at"`
}

type GuessCreate struct {
	Match     int  `json:"match" validate:"required,gt=0"`
	GuessHome *int `json:"guess_home" validate:"required,gte=0"`
	GuessAway *int `json:"guess_away" validate:"required,gte=0"`
}

type GuessUpdate struct {
	GuessHome *int `json:"guess_home,omitempty" validate:"omitnil,gte=0"`
	GuessAway *int `json:"guess_away,omitempty" validate:"omitnil,gte=0"`
}

// Score is one leaderboard row.
type Score struct {
	User          string  `json:"user"`
	Points        int     `json:"points"`
	Exact         int     `json:"exact"`
	OneScore      int     `json:"one_score"`
	TotalGuesses  int     `json:"total_guesses"`
	WinPercentage float64 `json:"win_percentage"`
	Accuracy      float64 `json:"accuracy"`
	AvgPoints     float64 `json:"avg_points"`
}
