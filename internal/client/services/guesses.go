package services

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
)

type GuessService interface {
	// List returns the user's guesses on matches of the selected competition.
	List(ctx context.Context) ([]models.Guess, error)
	// Submit records a prediction for a match, updating the existing guess
	// when there is one.
	Submit(ctx context.Context, matchID, home, away int) error
}

type guessService struct {
	client client.Client
	store  *session.Store
}

func NewGuessService(c client.Client, store *session.Store) GuessService {
	return &guessService{client: c, store: store}
}

func (s *guessService) List(ctx context.Context) ([]models.Guess, error) {
	id, ok, err := s.store.SelectedCompetition(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.list(ctx, id, ok)
	if err != nil {
		return nil, err
	}
	if ok {
		list = slices.DeleteFunc(list, func(g models.Guess) bool {
			return g.Match.Competition != 0 && g.Match.Competition != id
		})
	}
	return list, nil
}

func (s *guessService) list(ctx context.Context, competitionID int, scope bool) ([]models.Guess, error) {
	var list []models.Guess
	if err := getJSON(ctx, s.client, scoped("guesses/", competitionID, scope), &list); err != nil {
		return nil, fmt.Errorf("list guesses: %w", err)
	}
	return list, nil
}

// Submit looks for an existing guess across all competitions, so a match
// outside the selection is updated rather than guessed twice.
func (s *guessService) Submit(ctx context.Context, matchID, home, away int) error {
	existing, err := s.list(ctx, 0, false)
	if err != nil {
		return err
	}

	for _, g := range existing {
		if g.Match.ID != matchID {
			continue
		}
		req := models.GuessUpdate{GuessHome: &home, GuessAway: &away}
		if err := sendJSON(ctx, s.client, http.MethodPatch, fmt.Sprintf("guesses/%d/", g.ID), req, nil); err != nil {
			return fmt.Errorf("update guess %d: %w", g.ID, err)
		}
		return nil
	}

	req := models.GuessCreate{Match: matchID, GuessHome: &home, GuessAway: &away}
	if err := sendJSON(ctx, s.client, http.MethodPost, "guesses/", req, nil); err != nil {
		return fmt.Errorf("create guess for match %d: %w", matchID, err)
	}
	return nil
}
