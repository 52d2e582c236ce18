package usecase

import (
	"context"
	"fmt"
	"strings"

	"fun123/pkg/logger"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"
)

const catalogPageSize = 50

type CatalogUseCase interface {
	Create(ctx context.Context, kind entity.Kind, name, picURL string) (*entity.CatalogItem, error)
	Get(ctx context.Context, kind entity.Kind, id uint) (*entity.CatalogItem, error)
	List(ctx context.Context, kind entity.Kind, page int) ([]*entity.CatalogItem, error)
	CreateActor(ctx context.Context, name, picURL string) (*entity.Actor, error)
	GetActor(ctx context.Context, id uint) (*entity.Actor, error)
	AddToCast(ctx context.Context, kind entity.Kind, targetID, actorID uint) error
	Cast(ctx context.Context, kind entity.Kind, targetID uint) ([]*entity.Actor, error)
	Titles(ctx context.Context, actorID uint) ([]*entity.CatalogItem, error)
}

type catalogUseCase struct {
	catalogRepo persistent.CatalogRepository
	logger      *logger.Logger
}

func NewCatalogUseCase(catalogRepo persistent.CatalogRepository, logger *logger.Logger) CatalogUseCase {
	return &catalogUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *catalogUseCase) Create(ctx context.Context, kind entity.Kind, name, picURL string) (*entity.CatalogItem, error) {
	item := &entity.CatalogItem{
		Kind:   kind,
		Name:   strings.TrimSpace(name),
		PicURL: strings.TrimSpace(picURL),
	}
	if err := uc.catalogRepo.Create(ctx, item); err != nil {
		uc.logger.Error("Failed to create %s %q: %v", kind, item.Name, err)
		return nil, err
	}
	return item, nil
}

func (uc *catalogUseCase) Get(ctx context.Context, kind entity.Kind, id uint) (*entity.CatalogItem, error) {
	return uc.catalogRepo.GetByID(ctx, kind, id)
}

func (uc *catalogUseCase) List(ctx context.Context, kind entity.Kind, page int) ([]*entity.CatalogItem, error) {
	if page < 1 {
		page = 1
	}
	return uc.catalogRepo.List(ctx, kind, (page-1)*catalogPageSize, catalogPageSize)
}

func (uc *catalogUseCase) CreateActor(ctx context.Context, name, picURL string) (*entity.Actor, error) {
	actor := &entity.Actor{
		Name:   strings.TrimSpace(name),
		PicURL: strings.TrimSpace(picURL),
	}
	if err := uc.catalogRepo.CreateActor(ctx, actor); err != nil {
		uc.logger.Error("Failed to create actor %q: %v", actor.Name, err)
		return nil, err
	}
	return actor, nil
}

func (uc *catalogUseCase) GetActor(ctx context.Context, id uint) (*entity.Actor, error) {
	return uc.catalogRepo.GetActor(ctx, id)
}

func (uc *catalogUseCase) AddToCast(ctx context.Context, kind entity.Kind, targetID, actorID uint) error {
	if !kind.HasCast() {
		return fmt.Errorf("%w: %s", entity.ErrNoCast, kind)
	}
	if _, err := uc.catalogRepo.GetByID(ctx, kind, targetID); err != nil {
		return err
	}
	if _, err := uc.catalogRepo.GetActor(ctx, actorID); err != nil {
		return err
	}
	if err := uc.catalogRepo.AddToCast(ctx, kind, targetID, actorID); err != nil {
		uc.logger.Error("Failed to add actor %d to %s %d: %v", actorID, kind, targetID, err)
		return fmt.Errorf("failed to update cast")
	}
	return nil
}

func (uc *catalogUseCase) Cast(ctx context.Context, kind entity.Kind, targetID uint) ([]*entity.Actor, error) {
	if _, err := uc.catalogRepo.GetByID(ctx, kind, targetID); err != nil {
		return nil, err
	}
	return uc.catalogRepo.Cast(ctx, kind, targetID)
}

func (uc *catalogUseCase) Titles(ctx context.Context, actorID uint) ([]*entity.CatalogItem, error) {
	if _, err := uc.catalogRepo.GetActor(ctx, actorID); err != nil {
		return nil, err
	}
	return uc.catalogRepo.Titles(ctx, actorID)
}
