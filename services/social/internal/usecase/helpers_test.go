package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"fun123/pkg/config"
	"fun123/pkg/database"
	"fun123/pkg/jwt"
	"fun123/pkg/logger"
	"fun123/pkg/queue"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"
	"fun123/services/social/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAdminEmail = "admin@fun123.local"

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) PublishMailTask(task queue.MailTask) error {
	args := m.Called(task)
	return args.Error(0)
}

type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) UploadFile(key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAvatarStore) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvatarStore) DeleteFile(key string) error {
	return m.Called(key).Error(0)
}

type testEnv struct {
	users   persistent.UserRepository
	roles   persistent.RoleRepository
	follows persistent.FollowRepository
	catalog persistent.CatalogRepository
	marks   persistent.MarkRepository
	cfg     *config.Config
	log     *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
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

	return &testEnv{
		users:   persistent.NewUserRepository(db),
		roles:   persistent.NewRoleRepository(db),
		follows: persistent.NewFollowRepository(db),
		catalog: persistent.NewCatalogRepository(db),
		marks:   persistent.NewMarkRepository(db),
		cfg: &config.Config{
			AdminEmail:         testAdminEmail,
			TokenTTLSeconds:    3600,
			APITokenTTLSeconds: 86400,
			MailSubjectPrefix:  "[Fun123]",
			FollowersPerPage:   2,
		},
		log: logger.NewWithWriter(io.Discard),
	}
}

func (e *testEnv) auth(jwtService *jwt.Service, store AvatarStore, mailer Mailer) *authUseCase {
	return NewAuthUseCase(e.users, e.roles, jwtService, store, mailer, e.cfg, e.log).(*authUseCase)
}

func (e *testEnv) seedRoles(t *testing.T) {
	t.Helper()
	require.NoError(t, NewRoleUseCase(e.roles, e.users, e.cfg.AdminEmail, e.log).EnsureDefaultRoles(context.Background()))
}

// register creates a user through the real flow with mail disabled.
func (e *testEnv) register(t *testing.T, username string) *entity.User {
	t.Helper()
	uc := e.auth(jwt.NewService("test-secret"), nil, nil)
	user, _, err := uc.Register(context.Background(), username+"@example.com", username, "password123")
	require.NoError(t, err)
	return user
}
