package persistent

import (
	"context"
	"errors"
	"testing"

	"fun123/services/social/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_UpsertOverwritesByName(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleRepository(db)
	ctx := context.Background()

	first := &entity.Role{Name: entity.RoleVisitor, Permissions: entity.PermissionFollow}
	require.NoError(t, roles.Upsert(ctx, first))
	assert.NotZero(t, first.ID)

	second := &entity.Role{Name: entity.RoleVisitor, Permissions: entity.PermissionFollow | entity.PermissionVisit, Default: true}
	require.NoError(t, roles.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	all, err := roles.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.PermissionFollow|entity.PermissionVisit, all[0].Permissions)
	assert.True(t, all[0].Default)
}

func TestRoleRepository_GetDefault(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleRepository(db)
	ctx := context.Background()

	_, err := roles.GetDefault(ctx)
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	for _, preset := range entity.RolePresets() {
		preset := preset
		require.NoError(t, roles.Upsert(ctx, &preset))
	}

	def, err := roles.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, def.Name)

	admin, err := roles.GetByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.Can(entity.PermissionAdmin))
}
