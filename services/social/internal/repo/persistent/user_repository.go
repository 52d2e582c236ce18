package persistent

import (
	"context"
	"time"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// Create inserts the user together with its self-follow edge.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
	UpdateRole(ctx context.Context, id string, roleID uint) error
	AssignRoleWhereMissing(ctx context.Context, roleID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(userModel).Error; err != nil {
			return err
		}
		return tx.Create(&model.FollowModel{
			FollowerID: userModel.ID,
			FollowedID: userModel.ID,
		}).Error
	})
	if err != nil {
		return translate(err)
	}
	role := user.Role
	*user = *ToUserEntity(userModel)
	user.Role = role
	return nil
}

func (r *userRepository) getBy(ctx context.Context, column string, value string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where(map[string]interface{}{column: value}).
		First(&userModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(userModel).Error; err != nil {
		return translate(err)
	}
	user.UpdatedAt = userModel.UpdatedAt
	return nil
}

func (r *userRepository) UpdateLastSeen(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_seen", at)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, roleID uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("role_id", roleID)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *userRepository) AssignRoleWhereMissing(ctx context.Context, roleID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role_id IS NULL").
		Update("role_id", roleID)
	return result.RowsAffected, translate(result.Error)
}
