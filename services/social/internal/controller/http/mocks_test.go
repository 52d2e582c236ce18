package http

import (
	"context"
	"io"

	"fun123/pkg/jwt"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/usecase"

	"github.com/stretchr/testify/mock"
)

var (
	_ usecase.AuthUseCase    = (*MockAuthUseCase)(nil)
	_ usecase.FollowUseCase  = (*MockFollowUseCase)(nil)
	_ usecase.CatalogUseCase = (*MockCatalogUseCase)(nil)
	_ usecase.MarkUseCase    = (*MockMarkUseCase)(nil)
	_ usecase.RoleUseCase    = (*MockRoleUseCase)(nil)
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, email, username, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) IssueToken(user *entity.User, purpose jwt.Purpose, value string) (string, error) {
	args := m.Called(user, purpose, value)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) ConsumeToken(ctx context.Context, callerID, token string) (bool, error) {
	args := m.Called(ctx, callerID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthUseCase) ResetPassword(ctx context.Context, callerID, token, newPassword string) error {
	args := m.Called(ctx, callerID, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthUseCase) TouchActivity(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthUseCase) UpdateProfile(ctx context.Context, userID string, update usecase.ProfileUpdate) (*entity.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename, contentType string) (*entity.User, error) {
	args := m.Called(ctx, userID, file, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) RequestConfirmation(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUseCase) RequestEmailChange(ctx context.Context, userID, newEmail string) error {
	return m.Called(ctx, userID, newEmail).Error(0)
}

func (m *MockAuthUseCase) RequestPasswordChange(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUseCase) RequestPasswordReset(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockFollowUseCase struct {
	mock.Mock
}

func (m *MockFollowUseCase) IsFollowing(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowUseCase) IsFollowedBy(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowUseCase) Follow(ctx context.Context, userID, otherID string) error {
	return m.Called(ctx, userID, otherID).Error(0)
}

func (m *MockFollowUseCase) Unfollow(ctx context.Context, userID, otherID string) error {
	return m.Called(ctx, userID, otherID).Error(0)
}

func (m *MockFollowUseCase) Followers(ctx context.Context, userID string, page int) (*usecase.FollowPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.FollowPage), args.Error(1)
}

func (m *MockFollowUseCase) Following(ctx context.Context, userID string, page int) (*usecase.FollowPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.FollowPage), args.Error(1)
}

func (m *MockFollowUseCase) Counts(ctx context.Context, userID string) (*entity.FollowCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FollowCounts), args.Error(1)
}

func (m *MockFollowUseCase) ReconcileSelfFollows(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) Create(ctx context.Context, kind entity.Kind, name, picURL string) (*entity.CatalogItem, error) {
	args := m.Called(ctx, kind, name, picURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CatalogItem), args.Error(1)
}

func (m *MockCatalogUseCase) Get(ctx context.Context, kind entity.Kind, id uint) (*entity.CatalogItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CatalogItem), args.Error(1)
}

func (m *MockCatalogUseCase) List(ctx context.Context, kind entity.Kind, page int) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, kind, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CatalogItem), args.Error(1)
}

func (m *MockCatalogUseCase) CreateActor(ctx context.Context, name, picURL string) (*entity.Actor, error) {
	args := m.Called(ctx, name, picURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Actor), args.Error(1)
}

func (m *MockCatalogUseCase) GetActor(ctx context.Context, id uint) (*entity.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Actor), args.Error(1)
}

func (m *MockCatalogUseCase) AddToCast(ctx context.Context, kind entity.Kind, targetID, actorID uint) error {
	return m.Called(ctx, kind, targetID, actorID).Error(0)
}

func (m *MockCatalogUseCase) Cast(ctx context.Context, kind entity.Kind, targetID uint) ([]*entity.Actor, error) {
	args := m.Called(ctx, kind, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Actor), args.Error(1)
}

func (m *MockCatalogUseCase) Titles(ctx context.Context, actorID uint) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CatalogItem), args.Error(1)
}

type MockMarkUseCase struct {
	mock.Mock
}

func (m *MockMarkUseCase) HasMarked(ctx context.Context, userID string, kind entity.Kind, targetID uint) (bool, error) {
	args := m.Called(ctx, userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMarkUseCase) Mark(ctx context.Context, userID string, kind entity.Kind, targetID uint) error {
	return m.Called(ctx, userID, kind, targetID).Error(0)
}

func (m *MockMarkUseCase) Marked(ctx context.Context, userID string, kind entity.Kind) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CatalogItem), args.Error(1)
}

func (m *MockMarkUseCase) MarkCount(ctx context.Context, kind entity.Kind, targetID uint) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoleUseCase struct {
	mock.Mock
}

func (m *MockRoleUseCase) EnsureDefaultRoles(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRoleUseCase) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Role), args.Error(1)
}
