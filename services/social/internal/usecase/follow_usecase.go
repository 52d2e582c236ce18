package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fun123/pkg/logger"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"
)

// FollowEntry is one row of a follower or following listing.
type FollowEntry struct {
	User  *entity.User `json:"user"`
	Since time.Time    `json:"since"`
}

type FollowPage struct {
	Items   []FollowEntry `json:"items"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int64         `json:"total"`
}

type FollowUseCase interface {
	IsFollowing(ctx context.Context, userID, otherID string) (bool, error)
	IsFollowedBy(ctx context.Context, userID, otherID string) (bool, error)
	// Follow is idempotent. Following yourself is allowed.
	Follow(ctx context.Context, userID, otherID string) error
	Unfollow(ctx context.Context, userID, otherID string) error
	Followers(ctx context.Context, userID string, page int) (*FollowPage, error)
	Following(ctx context.Context, userID string, page int) (*FollowPage, error)
	Counts(ctx context.Context, userID string) (*entity.FollowCounts, error)
	// ReconcileSelfFollows restores missing self edges and returns how many
	// were created.
	ReconcileSelfFollows(ctx context.Context) (int, error)
}

type followUseCase struct {
	userRepo   persistent.UserRepository
	followRepo persistent.FollowRepository
	perPage    int
	logger     *logger.Logger
}

func NewFollowUseCase(
	userRepo persistent.UserRepository,
	followRepo persistent.FollowRepository,
	perPage int,
	logger *logger.Logger,
) FollowUseCase {
	if perPage <= 0 {
		perPage = 20
	}
	return &followUseCase{
		userRepo:   userRepo,
		followRepo: followRepo,
		perPage:    perPage,
		logger:     logger,
	}
}

func (uc *followUseCase) IsFollowing(ctx context.Context, userID, otherID string) (bool, error) {
	return uc.followRepo.Exists(ctx, userID, otherID)
}

func (uc *followUseCase) IsFollowedBy(ctx context.Context, userID, otherID string) (bool, error) {
	return uc.followRepo.Exists(ctx, otherID, userID)
}

func (uc *followUseCase) Follow(ctx context.Context, userID, otherID string) error {
	if _, err := uc.userRepo.GetByID(ctx, otherID); err != nil {
		return err
	}

	exists, err := uc.followRepo.Exists(ctx, userID, otherID)
	if err != nil {
		uc.logger.Error("Failed to check follow %s -> %s: %v", userID, otherID, err)
		return fmt.Errorf("failed to follow")
	}
	if exists {
		return nil
	}

	if err := uc.followRepo.Create(ctx, userID, otherID); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return fmt.Errorf("failed to follow: %w", err)
		}
		uc.logger.Error("Failed to create follow %s -> %s: %v", userID, otherID, err)
		return fmt.Errorf("failed to follow")
	}
	return nil
}

func (uc *followUseCase) Unfollow(ctx context.Context, userID, otherID string) error {
	if userID == otherID {
		return entity.ErrSelfUnfollow
	}
	if err := uc.followRepo.Delete(ctx, userID, otherID); err != nil {
		uc.logger.Error("Failed to delete follow %s -> %s: %v", userID, otherID, err)
		return fmt.Errorf("failed to unfollow")
	}
	return nil
}

func (uc *followUseCase) Followers(ctx context.Context, userID string, page int) (*FollowPage, error) {
	return uc.listing(ctx, userID, page, uc.followRepo.Followers, uc.followRepo.CountFollowers,
		func(f *entity.Follow) string { return f.FollowerID })
}

func (uc *followUseCase) Following(ctx context.Context, userID string, page int) (*FollowPage, error) {
	return uc.listing(ctx, userID, page, uc.followRepo.Following, uc.followRepo.CountFollowing,
		func(f *entity.Follow) string { return f.FollowedID })
}

func (uc *followUseCase) listing(
	ctx context.Context,
	userID string,
	page int,
	list func(ctx context.Context, userID string, offset, limit int) ([]*entity.Follow, error),
	count func(ctx context.Context, userID string) (int64, error),
	other func(f *entity.Follow) string,
) (*FollowPage, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	total, err := count(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to count follows for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list follows")
	}

	edges, err := list(ctx, userID, (page-1)*uc.perPage, uc.perPage)
	if err != nil {
		uc.logger.Error("Failed to list follows for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list follows")
	}

	items := make([]FollowEntry, 0, len(edges))
	for _, edge := range edges {
		user, err := uc.userRepo.GetByID(ctx, other(edge))
		if errors.Is(err, entity.ErrNotFound) {
			continue
		}
		if err != nil {
			uc.logger.Error("Failed to load user %s: %v", other(edge), err)
			return nil, fmt.Errorf("failed to list follows")
		}
		items = append(items, FollowEntry{User: user, Since: edge.CreatedAt})
	}

	return &FollowPage{
		Items:   items,
		Page:    page,
		PerPage: uc.perPage,
		Total:   total,
	}, nil
}

func (uc *followUseCase) Counts(ctx context.Context, userID string) (*entity.FollowCounts, error) {
	followers, err := uc.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to count followers for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to count follows")
	}
	following, err := uc.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to count following for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to count follows")
	}
	return &entity.FollowCounts{Followers: followers, Following: following}, nil
}

func (uc *followUseCase) ReconcileSelfFollows(ctx context.Context) (int, error) {
	ids, err := uc.followRepo.MissingSelfFollows(ctx)
	if err != nil {
		uc.logger.Error("Failed to find users without self follow: %v", err)
		return 0, fmt.Errorf("failed to reconcile self follows")
	}

	created := 0
	for _, id := range ids {
		err := uc.followRepo.Create(ctx, id, id)
		if errors.Is(err, entity.ErrConflict) {
			// restored concurrently by a follow or another reconcile run
			continue
		}
		if err != nil {
			uc.logger.Error("Failed to restore self follow for %s: %v", id, err)
			return created, fmt.Errorf("failed to reconcile self follows")
		}
		created++
	}

	if created > 0 {
		uc.logger.Info("Restored %d self follow edges", created)
	}
	return created, nil
}
