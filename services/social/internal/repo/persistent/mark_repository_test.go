package persistent

import (
	"context"
	"errors"
	"testing"

	"fun123/services/social/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRepository_KindsAreSeparate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	catalog := NewCatalogRepository(db)
	marks := NewMarkRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "alice")
	movie := &entity.CatalogItem{Kind: entity.KindMovie, Name: "Alien"}
	require.NoError(t, catalog.Create(ctx, movie))

	require.NoError(t, marks.Create(ctx, &entity.Mark{UserID: user.ID, Kind: entity.KindMovie, TargetID: movie.ID}))

	ok, err := marks.Exists(ctx, user.ID, entity.KindMovie, movie.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = marks.Exists(ctx, user.ID, entity.KindNovel, movie.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	items, err := marks.ListByUser(ctx, user.ID, entity.KindMovie)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alien", items[0].Name)

	n, err := marks.CountByTarget(ctx, entity.KindMovie, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = marks.Exists(ctx, user.ID, entity.Kind(0), movie.ID)
	assert.True(t, errors.Is(err, entity.ErrUnknownKind))
}
