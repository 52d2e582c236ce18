package usecase

import (
	"context"
	"errors"
	"testing"

	"fun123/services/social/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowUseCase(env *testEnv) FollowUseCase {
	return NewFollowUseCase(env.users, env.follows, env.cfg.FollowersPerPage, env.log)
}

func TestFollow_SelfFollowAfterCreation(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		user := env.register(t, name)
		ok, err := uc.IsFollowing(ctx, user.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}

func TestFollow_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	require.NoError(t, uc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, uc.Follow(ctx, alice.ID, bob.ID))

	counts, err := uc.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Followers)
	assert.Equal(t, int64(0), counts.Following)

	ok, err := uc.IsFollowedBy(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok, "direction matters")

	require.NoError(t, uc.Follow(ctx, alice.ID, alice.ID))
}

func TestFollow_ThenUnfollow(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	require.NoError(t, uc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, uc.Unfollow(ctx, alice.ID, bob.ID))

	ok, err := uc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, uc.Unfollow(ctx, alice.ID, bob.ID))
}

func TestUnfollow_SelfIsRejected(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")
	ctx := context.Background()

	assert.True(t, errors.Is(uc.Unfollow(ctx, alice.ID, alice.ID), entity.ErrSelfUnfollow))

	ok, err := uc.IsFollowing(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollow_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")

	err := uc.Follow(context.Background(), alice.ID, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestFollowers_Paginated(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")
	ctx := context.Background()

	for _, name := range []string{"bob", "carol", "dave"} {
		fan := env.register(t, name)
		require.NoError(t, uc.Follow(ctx, fan.ID, alice.ID))
	}

	first, err := uc.Followers(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Total)
	assert.Len(t, first.Items, 2)

	second, err := uc.Followers(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.NotEqual(t, alice.ID, second.Items[0].User.ID)

	following, err := uc.Following(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, following.Page)
	assert.Empty(t, following.Items)

	_, err = uc.Followers(ctx, "00000000-0000-0000-0000-000000000000", 1)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestReconcileSelfFollows(t *testing.T) {
	env := newTestEnv(t)
	uc := newFollowUseCase(env)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	require.NoError(t, env.follows.Delete(ctx, alice.ID, alice.ID))
	require.NoError(t, env.follows.Delete(ctx, bob.ID, bob.ID))

	created, err := uc.ReconcileSelfFollows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = uc.ReconcileSelfFollows(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	for _, u := range []*entity.User{alice, bob} {
		ok, err := uc.IsFollowing(ctx, u.ID, u.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
