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

type MatchService interface {
	// List returns the matches of the selected competition, or every match
	// when nothing is selected.
	List(ctx context.Context) ([]models.Match, error)
	// UpdateScore sets the final score; nil clears a side. Admin only.
	UpdateScore(ctx context.Context, matchID int, home, away *int) error
}

type matchService struct {
	client client.Client
	store  *session.Store
}

func NewMatchService(c client.Client, store *session.Store) MatchService {
	return &matchService{client: c, store: store}
}

func (s *matchService) List(ctx context.Context) ([]models.Match, error) {
	id, ok, err := s.store.SelectedCompetition(ctx)
	if err != nil {
		return nil, err
	}

	var list []models.Match
	if err := getJSON(ctx, s.client, scoped("matches/", id, ok), &list); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if ok {
		list = slices.DeleteFunc(list, func(m models.Match) bool {
			return m.Competition != 0 && m.Competition != id
		})
	}
	return list, nil
}

func (s *matchService) UpdateScore(ctx context.Context, matchID int, home, away *int) error {
	req := models.MatchScoreUpdate{ScoreHome: home, ScoreAway: away}
	if err := sendJSON(ctx, s.client, http.MethodPatch, fmt.Sprintf("matches/%d/", matchID), req, nil); err != nil {
		return fmt.Errorf("update score of match %d: %w", matchID, err)
	}
	return nil
}
