package usecase

import (
	"context"
	"errors"
	"testing"

	"fun123/services/social/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	uc := NewMarkUseCase(env.marks, env.catalog, nil, env.log)
	alice := env.register(t, "alice")
	ctx := context.Background()

	for _, kind := range entity.Kinds() {
		item := &entity.CatalogItem{Kind: kind, Name: "entry-" + kind.String()}
		require.NoError(t, env.catalog.Create(ctx, item))

		marked, err := uc.HasMarked(ctx, alice.ID, kind, item.ID)
		require.NoError(t, err)
		assert.False(t, marked)

		require.NoError(t, uc.Mark(ctx, alice.ID, kind, item.ID))
		marked, err = uc.HasMarked(ctx, alice.ID, kind, item.ID)
		require.NoError(t, err)
		assert.True(t, marked)

		require.NoError(t, uc.Mark(ctx, alice.ID, kind, item.ID))
		marked, err = uc.HasMarked(ctx, alice.ID, kind, item.ID)
		require.NoError(t, err)
		assert.True(t, marked)

		n, err := uc.MarkCount(ctx, kind, item.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, kind.String())

		items, err := uc.Marked(ctx, alice.ID, kind)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
}

func TestMark_Errors(t *testing.T) {
	env := newTestEnv(t)
	uc := NewMarkUseCase(env.marks, env.catalog, nil, env.log)
	alice := env.register(t, "alice")
	ctx := context.Background()

	assert.True(t, errors.Is(uc.Mark(ctx, alice.ID, entity.Kind(0), 1), entity.ErrUnknownKind))
	assert.True(t, errors.Is(uc.Mark(ctx, alice.ID, entity.KindMovie, 404), entity.ErrNotFound))

	_, err := uc.HasMarked(ctx, alice.ID, entity.Kind(99), 1)
	assert.True(t, errors.Is(err, entity.ErrUnknownKind))

	_, err = uc.MarkCount(ctx, entity.Kind(99), 1)
	assert.True(t, errors.Is(err, entity.ErrUnknownKind))
}
