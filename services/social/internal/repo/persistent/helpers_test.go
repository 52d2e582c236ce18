package persistent

import (
	"context"
	"strings"
	"testing"

	"fun123/pkg/database"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB("file:" + name + "?mode=memory")
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo UserRepository, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:    username + "@example.com",
		Username: username,
	}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}
