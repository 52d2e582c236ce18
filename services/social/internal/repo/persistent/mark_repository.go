package persistent

import (
	"context"
	"fmt"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
)

type MarkRepository interface {
	Exists(ctx context.Context, userID string, kind entity.Kind, targetID uint) (bool, error)
	Create(ctx context.Context, mark *entity.Mark) error
	// ListByUser returns the catalog entries of one kind the user has marked,
	// most recent mark first.
	ListByUser(ctx context.Context, userID string, kind entity.Kind) ([]*entity.CatalogItem, error)
	CountByTarget(ctx context.Context, kind entity.Kind, targetID uint) (int64, error)
}

type markRepository struct {
	db *gorm.DB
}

func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func (r *markRepository) Exists(ctx context.Context, userID string, kind entity.Kind, targetID uint) (bool, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Table(rel.marks).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *markRepository) Create(ctx context.Context, mark *entity.Mark) error {
	rel, err := relationFor(mark.Kind)
	if err != nil {
		return err
	}

	edge := &model.MarkEdge{UserID: mark.UserID, TargetID: mark.TargetID}
	if err := r.db.WithContext(ctx).Table(rel.marks).Create(edge).Error; err != nil {
		return translate(err)
	}
	*mark = *ToMarkEntity(mark.Kind, edge)
	return nil
}

func (r *markRepository) ListByUser(ctx context.Context, userID string, kind entity.Kind) ([]*entity.CatalogItem, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return nil, err
	}

	var itemModels []model.CatalogItem
	err = r.db.WithContext(ctx).
		Table(rel.items).
		Select(rel.items+".*").
		Joins(fmt.Sprintf("JOIN %s ON %s.target_id = %s.id", rel.marks, rel.marks, rel.items)).
		Where(rel.marks+".user_id = ?", userID).
		Order(rel.marks + ".created_at DESC").
		Find(&itemModels).Error
	if err != nil {
		return nil, translate(err)
	}
	return toCatalogItems(kind, itemModels), nil
}

func (r *markRepository) CountByTarget(ctx context.Context, kind entity.Kind, targetID uint) (int64, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Table(rel.marks).
		Where("target_id = ?", targetID).
		Count(&count).Error
	return count, translate(err)
}
