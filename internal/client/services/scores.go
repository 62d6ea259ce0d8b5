package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
)

type ScoreService interface {
	Leaderboard(ctx context.Context) ([]models.Score, error)
}

type scoreService struct {
	client client.Client
}

func NewScoreService(c client.Client) ScoreService {
	return &scoreService{client: c}
}

// Leaderboard returns the rows in the order the server ranked them.
func (s *scoreService) Leaderboard(ctx context.Context) ([]models.Score, error) {
	var rows []models.Score
	if err := getJSON(ctx, s.client, "scores/", &rows); err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return rows, nil
}
