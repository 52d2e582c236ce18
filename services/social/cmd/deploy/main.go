package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"fun123/pkg/config"
	"fun123/pkg/database"
	"fun123/pkg/logger"
	"fun123/services/social/internal/model"
	"fun123/services/social/internal/repo/persistent"
	"fun123/services/social/internal/usecase"
)

// deploy brings the schema up to date, then seeds the role presets and
// repairs missing roles and self follows. Safe to run repeatedly.
func main() {
	var skipMigrate bool
	flag.BoolVar(&skipMigrate, "skip-migrate", false, "Skip gorm auto-migration (use when cmd/migrate owns the schema)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithConfig(cfg.LogLevel, cfg.LogFormat)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if !skipMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate: %v", err)
			panic(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	userRepo := persistent.NewUserRepository(db)
	roleRepo := persistent.NewRoleRepository(db)
	followRepo := persistent.NewFollowRepository(db)

	roleUseCase := usecase.NewRoleUseCase(roleRepo, userRepo, cfg.AdminEmail, log)
	if err := roleUseCase.EnsureDefaultRoles(ctx); err != nil {
		log.Error("Failed to seed roles: %v", err)
		panic(err)
	}

	followUseCase := usecase.NewFollowUseCase(userRepo, followRepo, cfg.FollowersPerPage, log)
	restored, err := followUseCase.ReconcileSelfFollows(ctx)
	if err != nil {
		log.Error("Failed to reconcile self follows: %v", err)
		panic(err)
	}

	log.Info("Deploy finished, restored %d self follows", restored)
}
