package persistent

import (
	"context"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	Create(ctx context.Context, followerID, followedID string) error
	Delete(ctx context.Context, followerID, followedID string) error
	// Followers and Following page through edges newest first, skipping the
	// self edge.
	Followers(ctx context.Context, userID string, offset, limit int) ([]*entity.Follow, error)
	Following(ctx context.Context, userID string, offset, limit int) ([]*entity.Follow, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	// MissingSelfFollows returns ids of users with no self edge.
	MissingSelfFollows(ctx context.Context) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FollowModel{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID string) error {
	followModel := &model.FollowModel{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return translate(r.db.WithContext(ctx).Create(followModel).Error)
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID string) error {
	return translate(r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.FollowModel{}).Error)
}

func (r *followRepository) page(ctx context.Context, column, userID string, offset, limit int) ([]*entity.Follow, error) {
	var followModels []model.FollowModel
	err := r.db.WithContext(ctx).
		Where(column+" = ? AND follower_id <> followed_id", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&followModels).Error
	if err != nil {
		return nil, translate(err)
	}

	follows := make([]*entity.Follow, len(followModels))
	for i := range followModels {
		follows[i] = ToFollowEntity(&followModels[i])
	}
	return follows, nil
}

func (r *followRepository) Followers(ctx context.Context, userID string, offset, limit int) ([]*entity.Follow, error) {
	return r.page(ctx, "followed_id", userID, offset, limit)
}

func (r *followRepository) Following(ctx context.Context, userID string, offset, limit int) ([]*entity.Follow, error) {
	return r.page(ctx, "follower_id", userID, offset, limit)
}

func (r *followRepository) count(ctx context.Context, column, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FollowModel{}).
		Where(column+" = ? AND follower_id <> followed_id", userID).
		Count(&count).Error
	return count, translate(err)
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "followed_id", userID)
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "follower_id", userID)
}

func (r *followRepository) MissingSelfFollows(ctx context.Context) ([]string, error) {
	db := r.db.WithContext(ctx)
	selfEdge := db.Model(&model.FollowModel{}).
		Select("1").
		Where("follows.follower_id = users.id AND follows.followed_id = users.id")

	var ids []string
	err := db.Model(&model.UserModel{}).
		Where("NOT EXISTS (?)", selfEdge).
		Order("created_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}
