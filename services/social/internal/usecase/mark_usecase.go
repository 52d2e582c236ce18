package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fun123/pkg/logger"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const markCountTTL = 5 * time.Minute

type MarkUseCase interface {
	HasMarked(ctx context.Context, userID string, kind entity.Kind, targetID uint) (bool, error)
	// Mark is idempotent. Marks are never removed.
	Mark(ctx context.Context, userID string, kind entity.Kind, targetID uint) error
	Marked(ctx context.Context, userID string, kind entity.Kind) ([]*entity.CatalogItem, error)
	MarkCount(ctx context.Context, kind entity.Kind, targetID uint) (int64, error)
}

type markUseCase struct {
	markRepo    persistent.MarkRepository
	catalogRepo persistent.CatalogRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewMarkUseCase accepts a nil redisClient; counts are then read straight
// from the database.
func NewMarkUseCase(
	markRepo persistent.MarkRepository,
	catalogRepo persistent.CatalogRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) MarkUseCase {
	return &markUseCase{
		markRepo:    markRepo,
		catalogRepo: catalogRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *markUseCase) HasMarked(ctx context.Context, userID string, kind entity.Kind, targetID uint) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %d", entity.ErrUnknownKind, uint8(kind))
	}
	return uc.markRepo.Exists(ctx, userID, kind, targetID)
}

func (uc *markUseCase) Mark(ctx context.Context, userID string, kind entity.Kind, targetID uint) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", entity.ErrUnknownKind, uint8(kind))
	}
	if _, err := uc.catalogRepo.GetByID(ctx, kind, targetID); err != nil {
		return err
	}

	marked, err := uc.markRepo.Exists(ctx, userID, kind, targetID)
	if err != nil {
		uc.logger.Error("Failed to check %s mark %d for %s: %v", kind, targetID, userID, err)
		return fmt.Errorf("failed to mark")
	}
	if marked {
		return nil
	}

	err = uc.markRepo.Create(ctx, &entity.Mark{UserID: userID, Kind: kind, TargetID: targetID})
	if err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return fmt.Errorf("failed to mark: %w", err)
		}
		uc.logger.Error("Failed to create %s mark %d for %s: %v", kind, targetID, userID, err)
		return fmt.Errorf("failed to mark")
	}

	uc.invalidateCount(ctx, kind, targetID)
	return nil
}

func (uc *markUseCase) Marked(ctx context.Context, userID string, kind entity.Kind) ([]*entity.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrUnknownKind, uint8(kind))
	}
	items, err := uc.markRepo.ListByUser(ctx, userID, kind)
	if err != nil {
		uc.logger.Error("Failed to list %s marks for %s: %v", kind, userID, err)
		return nil, fmt.Errorf("failed to list marks")
	}
	return items, nil
}

func countKey(kind entity.Kind, targetID uint) string {
	return fmt.Sprintf("mark_count:%s:%d", kind, targetID)
}

func (uc *markUseCase) MarkCount(ctx context.Context, kind entity.Kind, targetID uint) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %d", entity.ErrUnknownKind, uint8(kind))
	}

	key := countKey(kind, targetID)
	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, key).Result()
		if err == nil {
			if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return n, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("Failed to read cached mark count %s: %v", key, err)
		}
	}

	n, err := uc.markRepo.CountByTarget(ctx, kind, targetID)
	if err != nil {
		uc.logger.Error("Failed to count %s marks for %d: %v", kind, targetID, err)
		return 0, fmt.Errorf("failed to count marks")
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, key, n, markCountTTL).Err(); err != nil {
			uc.logger.Warn("Failed to cache mark count %s: %v", key, err)
		}
	}
	return n, nil
}

func (uc *markUseCase) invalidateCount(ctx context.Context, kind entity.Kind, targetID uint) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(ctx, countKey(kind, targetID)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate mark count for %s %d: %v", kind, targetID, err)
	}
}
