package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
	"github.com/patrickmn/go-cache"
)

const (
	competitionsCacheKey = "competitions"
	competitionsTTL      = 5 * time.Minute
)

// CompetitionService lists competitions and remembers which one the user
// is looking at.
type CompetitionService interface {
	List(ctx context.Context) ([]models.Competition, error)
	Selected(ctx context.Context) (*models.Competition, error)
	Select(ctx context.Context, id int) (*models.Competition, error)
	Invalidate()
}

type competitionService struct {
	client client.Client
	store  *session.Store
	cache  *cache.Cache
}

func NewCompetitionService(c client.Client, store *session.Store) CompetitionService {
	return &competitionService{
		client: c,
		store:  store,
		cache:  cache.New(competitionsTTL, 2*competitionsTTL),
	}
}

func (s *competitionService) List(ctx context.Context) ([]models.Competition, error) {
	if v, ok := s.cache.Get(competitionsCacheKey); ok {
		return v.([]models.Competition), nil
	}

	var list []models.Competition
	if err := getJSON(ctx, s.client, "competitions/", &list); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	s.cache.SetDefault(competitionsCacheKey, list)
	return list, nil
}

// Selected returns the persisted selection. With nothing selected, or a
// selection the server no longer knows, the first competition is chosen and
// persisted.
func (s *competitionService) Selected(ctx context.Context) (*models.Competition, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoCompetitions
	}

	id, ok, err := s.store.SelectedCompetition(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		if c := find(list, id); c != nil {
			return c, nil
		}
	}

	first := list[0]
	if err := s.store.SetSelectedCompetition(ctx, first.ID); err != nil {
		return nil, fmt.Errorf("save selected competition: %w", err)
	}
	return &first, nil
}

func (s *competitionService) Select(ctx context.Context, id int) (*models.Competition, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	c := find(list, id)
	if c == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompetition, id)
	}
	if err := s.store.SetSelectedCompetition(ctx, id); err != nil {
		return nil, fmt.Errorf("save selected competition: %w", err)
	}
	return c, nil
}

func (s *competitionService) Invalidate() {
	s.cache.Delete(competitionsCacheKey)
}

func find(list []models.Competition, id int) *models.Competition {
	for i := range list {
		if list[i].ID == id {
			c := list[i]
			return &c
		}
	}
	return nil
}
