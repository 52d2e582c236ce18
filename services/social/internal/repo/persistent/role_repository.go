package persistent

import (
	"context"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	GetDefault(ctx context.Context) (*entity.Role, error)
	// Upsert creates the role or overwrites the mask and default flag of the
	// row with the same name.
	Upsert(ctx context.Context, role *entity.Role) error
	List(ctx context.Context) ([]*entity.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleModel model.RoleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&roleModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToRoleEntity(&roleModel), nil
}

func (r *roleRepository) GetDefault(ctx context.Context) (*entity.Role, error) {
	var roleModel model.RoleModel
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"default": true}).
		Order("id").
		First(&roleModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToRoleEntity(&roleModel), nil
}

func (r *roleRepository) Upsert(ctx context.Context, role *entity.Role) error {
	roleModel := ToRoleModel(role)
	roleModel.ID = 0
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"permissions", "default"}),
	}).Create(roleModel).Error
	if err != nil {
		return translate(err)
	}

	stored, err := r.GetByName(ctx, role.Name)
	if err != nil {
		return err
	}
	*role = *stored
	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]*entity.Role, error) {
	var roleModels []model.RoleModel
	if err := r.db.WithContext(ctx).Order("id").Find(&roleModels).Error; err != nil {
		return nil, translate(err)
	}

	roles := make([]*entity.Role, len(roleModels))
	for i := range roleModels {
		roles[i] = ToRoleEntity(&roleModels[i])
	}
	return roles, nil
}
