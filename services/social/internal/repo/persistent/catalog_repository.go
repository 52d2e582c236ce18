package persistent

import (
	"context"
	"fmt"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, kind entity.Kind, id uint) (*entity.CatalogItem, error)
	List(ctx context.Context, kind entity.Kind, offset, limit int) ([]*entity.CatalogItem, error)
	CreateActor(ctx context.Context, actor *entity.Actor) error
	GetActor(ctx context.Context, id uint) (*entity.Actor, error)
	GetActorByName(ctx context.Context, name string) (*entity.Actor, error)
	// AddToCast is a no-op when the actor is already credited.
	AddToCast(ctx context.Context, kind entity.Kind, targetID, actorID uint) error
	Cast(ctx context.Context, kind entity.Kind, targetID uint) ([]*entity.Actor, error)
	// Titles lists every movie and TV entry the actor is credited in.
	Titles(ctx context.Context, actorID uint) ([]*entity.CatalogItem, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	rel, err := relationFor(item.Kind)
	if err != nil {
		return err
	}

	itemModel := ToCatalogItemModel(item)
	if err := r.db.WithContext(ctx).Table(rel.items).Create(itemModel).Error; err != nil {
		return translate(err)
	}
	*item = *ToCatalogItemEntity(item.Kind, itemModel)
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, kind entity.Kind, id uint) (*entity.CatalogItem, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return nil, err
	}

	var itemModel model.CatalogItem
	if err := r.db.WithContext(ctx).Table(rel.items).Where("id = ?", id).First(&itemModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToCatalogItemEntity(kind, &itemModel), nil
}

func (r *catalogRepository) List(ctx context.Context, kind entity.Kind, offset, limit int) ([]*entity.CatalogItem, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return nil, err
	}

	var itemModels []model.CatalogItem
	err = r.db.WithContext(ctx).
		Table(rel.items).
		Order("name").
		Offset(offset).
		Limit(limit).
		Find(&itemModels).Error
	if err != nil {
		return nil, translate(err)
	}
	return toCatalogItems(kind, itemModels), nil
}

func (r *catalogRepository) CreateActor(ctx context.Context, actor *entity.Actor) error {
	actorModel := ToActorModel(actor)
	if err := r.db.WithContext(ctx).Create(actorModel).Error; err != nil {
		return translate(err)
	}
	*actor = *ToActorEntity(actorModel)
	return nil
}

func (r *catalogRepository) GetActor(ctx context.Context, id uint) (*entity.Actor, error) {
	var actorModel model.ActorModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&actorModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToActorEntity(&actorModel), nil
}

func (r *catalogRepository) GetActorByName(ctx context.Context, name string) (*entity.Actor, error) {
	var actorModel model.ActorModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&actorModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToActorEntity(&actorModel), nil
}

func (r *catalogRepository) castRelation(kind entity.Kind) (relation, error) {
	rel, err := relationFor(kind)
	if err != nil {
		return relation{}, err
	}
	if rel.cast == "" {
		return relation{}, fmt.Errorf("%w: %s", entity.ErrNoCast, kind)
	}
	return rel, nil
}

func (r *catalogRepository) AddToCast(ctx context.Context, kind entity.Kind, targetID, actorID uint) error {
	rel, err := r.castRelation(kind)
	if err != nil {
		return err
	}

	edge := &model.CastEdge{ActorID: actorID, TargetID: targetID}
	return translate(r.db.WithContext(ctx).
		Table(rel.cast).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error)
}

func (r *catalogRepository) Cast(ctx context.Context, kind entity.Kind, targetID uint) ([]*entity.Actor, error) {
	rel, err := r.castRelation(kind)
	if err != nil {
		return nil, err
	}

	var actorModels []model.ActorModel
	err = r.db.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s ON %s.actor_id = actors.id", rel.cast, rel.cast)).
		Where(rel.cast+".target_id = ?", targetID).
		Order("actors.name").
		Find(&actorModels).Error
	if err != nil {
		return nil, translate(err)
	}

	actors := make([]*entity.Actor, len(actorModels))
	for i := range actorModels {
		actors[i] = ToActorEntity(&actorModels[i])
	}
	return actors, nil
}

func (r *catalogRepository) Titles(ctx context.Context, actorID uint) ([]*entity.CatalogItem, error) {
	var titles []*entity.CatalogItem
	for _, kind := range entity.Kinds() {
		if !kind.HasCast() {
			continue
		}
		rel := relations[kind]

		var itemModels []model.CatalogItem
		err := r.db.WithContext(ctx).
			Table(rel.items).
			Select(rel.items+".*").
			Joins(fmt.Sprintf("JOIN %s ON %s.target_id = %s.id", rel.cast, rel.cast, rel.items)).
			Where(rel.cast+".actor_id = ?", actorID).
			Order(rel.items + ".name").
			Find(&itemModels).Error
		if err != nil {
			return nil, translate(err)
		}
		titles = append(titles, toCatalogItems(kind, itemModels)...)
	}
	return titles, nil
}

func toCatalogItems(kind entity.Kind, itemModels []model.CatalogItem) []*entity.CatalogItem {
	items := make([]*entity.CatalogItem, len(itemModels))
	for i := range itemModels {
		items[i] = ToCatalogItemEntity(kind, &itemModels[i])
	}
	return items
}
