package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/peyjabanki/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_TokensRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(metadata.NewMemoryRepository())

	at, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, at)

	loggedIn, err := s.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	require.NoError(t, s.SetTokens(ctx, "A1", "R1"))

	at, err = s.AccessToken(ctx)
	require.NoError(t, err)
	rt, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", at)
	assert.Equal(t, "R1", rt)

	require.NoError(t, s.SetAccessToken(ctx, "A2"))
	at, _ = s.AccessToken(ctx)
	rt, _ = s.RefreshToken(ctx)
	assert.Equal(t, "A2", at)
	assert.Equal(t, "R1", rt, "refresh token is not rotated")
}

func TestStore_ClearTokensKeepsSelection(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	s := NewStore(repo)

	require.NoError(t, s.SetTokens(ctx, "A1", "R1"))
	require.NoError(t, s.SetSelectedCompetition(ctx, 7))
	require.NoError(t, s.ClearTokens(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{KeySelectedCompetition: []byte("7")}, all)

	id, ok, err := s.SelectedCompetition(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestStore_SelectedCompetition(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	s := NewStore(repo)

	_, ok, err := s.SelectedCompetition(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, KeySelectedCompetition, []byte("abc")))
	_, _, err = s.SelectedCompetition(ctx)
	require.Error(t, err)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	s := NewStore(repo)

	require.NoError(t, s.SetTokens(ctx, "A1", "R1"))
	require.NoError(t, s.SetSelectedCompetition(ctx, 1))
	require.NoError(t, s.Reset(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := NewStore(metadata.NewMemoryRepository())

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.SetSelectedCompetition(ctx, 4))
	require.NoError(t, s.SetTokens(ctx, "A1", "R1"))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyAccessToken, KeyRefreshToken, KeySelectedCompetition}, keys)
}
