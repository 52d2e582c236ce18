package usecase

import (
	"context"
	"errors"
	"testing"

	"fun123/services/social/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CastAndTitles(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCatalogUseCase(env.catalog, env.log)
	ctx := context.Background()

	movie, err := uc.Create(ctx, entity.KindMovie, " Ran ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ran", movie.Name)

	novel, err := uc.Create(ctx, entity.KindNovel, "Kokoro", "")
	require.NoError(t, err)

	actor, err := uc.CreateActor(ctx, "Tatsuya Nakadai", "")
	require.NoError(t, err)

	require.NoError(t, uc.AddToCast(ctx, entity.KindMovie, movie.ID, actor.ID))

	cast, err := uc.Cast(ctx, entity.KindMovie, movie.ID)
	require.NoError(t, err)
	require.Len(t, cast, 1)
	assert.Equal(t, actor.ID, cast[0].ID)

	titles, err := uc.Titles(ctx, actor.ID)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Ran", titles[0].Name)

	assert.True(t, errors.Is(uc.AddToCast(ctx, entity.KindNovel, novel.ID, actor.ID), entity.ErrNoCast))
	assert.True(t, errors.Is(uc.AddToCast(ctx, entity.KindMovie, movie.ID, 999), entity.ErrNotFound))

	_, err = uc.Create(ctx, entity.KindMovie, "Ran", "")
	assert.True(t, errors.Is(err, entity.ErrConflict))

	list, err := uc.List(ctx, entity.KindMovie, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
