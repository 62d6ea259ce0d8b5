// Package session keeps the client's login state in the local metadata
// store: the credential pair and the selected competition.
package session

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/peyjabanki/internal/client/repositories/metadata"
)

// Keys of the persisted session state.
const (
	KeyAccessToken         = "accessToken"
	KeyRefreshToken        = "refreshToken"
	KeySelectedCompetition = "selectedCompetition"
)

// Store implements client.TokenStore on top of a metadata.Repository.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// AccessToken returns the stored access token or "" when there is none.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh token or "" when there is none.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRefreshToken)
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyAccessToken, []byte(token))
}

// SetTokens stores a freshly issued pair in one write.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	return s.repo.SetMany(ctx, map[string][]byte{
		KeyAccessToken:  []byte(access),
		KeyRefreshToken: []byte(refresh),
	})
}

// ClearTokens removes both tokens together.
func (s *Store) ClearTokens(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAccessToken, KeyRefreshToken)
}

// LoggedIn reports whether an access token is stored.
func (s *Store) LoggedIn(ctx context.Context) (bool, error) {
	t, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return t != "", nil
}

// SelectedCompetition returns the persisted competition id; ok is false when
// nothing was selected yet.
func (s *Store) SelectedCompetition(ctx context.Context) (id int, ok bool, err error) {
	v, err := s.get(ctx, KeySelectedCompetition)
	if err != nil || v == "" {
		return 0, false, err
	}
	id, err = strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("stored competition id %q: %w", v, err)
	}
	return id, true, nil
}

func (s *Store) SetSelectedCompetition(ctx context.Context, id int) error {
	return s.repo.Set(ctx, KeySelectedCompetition, []byte(strconv.Itoa(id)))
}

// Keys lists the names of the persisted entries, sorted.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(all)), nil
}

// Reset forgets everything, as a full logout does.
func (s *Store) Reset(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
