package usecase

import (
	"context"
	"errors"
	"fmt"

	"fun123/pkg/logger"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"
)

type RoleUseCase interface {
	// EnsureDefaultRoles upserts every preset, promotes the configured
	// administrator and gives role-less users the default role. Safe to run
	// on every deploy.
	EnsureDefaultRoles(ctx context.Context) error
	ListRoles(ctx context.Context) ([]*entity.Role, error)
}

type roleUseCase struct {
	roleRepo   persistent.RoleRepository
	userRepo   persistent.UserRepository
	adminEmail string
	logger     *logger.Logger
}

func NewRoleUseCase(
	roleRepo persistent.RoleRepository,
	userRepo persistent.UserRepository,
	adminEmail string,
	logger *logger.Logger,
) RoleUseCase {
	return &roleUseCase{
		roleRepo:   roleRepo,
		userRepo:   userRepo,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

func (uc *roleUseCase) EnsureDefaultRoles(ctx context.Context) error {
	var admin, def *entity.Role
	for _, preset := range entity.RolePresets() {
		role := preset
		if err := uc.roleRepo.Upsert(ctx, &role); err != nil {
			uc.logger.Error("Failed to upsert role %s: %v", preset.Name, err)
			return fmt.Errorf("failed to seed roles: %w", err)
		}
		switch {
		case role.Name == entity.RoleAdmin:
			admin = &role
		case role.Default:
			def = &role
		}
	}

	if uc.adminEmail != "" && admin != nil {
		user, err := uc.userRepo.GetByEmail(ctx, uc.adminEmail)
		switch {
		case errors.Is(err, entity.ErrNotFound):
			uc.logger.Info("Administrator %s has not registered yet", uc.adminEmail)
		case err != nil:
			uc.logger.Error("Failed to look up administrator: %v", err)
			return fmt.Errorf("failed to seed roles: %w", err)
		default:
			if err := uc.userRepo.UpdateRole(ctx, user.ID, admin.ID); err != nil {
				uc.logger.Error("Failed to promote administrator: %v", err)
				return fmt.Errorf("failed to seed roles: %w", err)
			}
		}
	}

	if def != nil {
		n, err := uc.userRepo.AssignRoleWhereMissing(ctx, def.ID)
		if err != nil {
			uc.logger.Error("Failed to assign default role: %v", err)
			return fmt.Errorf("failed to seed roles: %w", err)
		}
		if n > 0 {
			uc.logger.Info("Assigned role %s to %d users", def.Name, n)
		}
	}
	return nil
}

func (uc *roleUseCase) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	return uc.roleRepo.List(ctx)
}
