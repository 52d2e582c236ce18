package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"fun123/pkg/config"
	"fun123/pkg/database"
	"fun123/pkg/jwt"
	"fun123/pkg/logger"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"
	"fun123/services/social/internal/repo/persistent"
	"fun123/services/social/internal/usecase"

	"gorm.io/gorm"
)

type seedUser struct {
	email    string
	username string
	password string
}

var testUsers = []seedUser{
	{"alice@test.com", "alice", "password123"},
	{"bob@test.com", "bob", "password123"},
	{"charlie@test.com", "charlie", "password123"},
	{"diana@test.com", "diana", "password123"},
}

var testCatalog = map[entity.Kind][]string{
	entity.KindMovie:    {"The Matrix", "Spirited Away", "Inception"},
	entity.KindTV:       {"Twin Peaks", "The Wire"},
	entity.KindNovel:    {"Dune", "Solaris", "The Left Hand of Darkness"},
	entity.KindUploader: {"kurzgesagt", "3blue1brown"},
}

var testCast = map[string][]string{
	"The Matrix": {"Keanu Reeves", "Carrie-Anne Moss"},
	"Inception":  {"Elliot Page"},
	"Twin Peaks": {"Kyle MacLachlan"},
}

func main() {
	var sqlitePath string
	flag.StringVar(&sqlitePath, "sqlite", "", "Seed a SQLite file instead of Postgres")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithConfig(cfg.LogLevel, cfg.LogFormat)

	var db *gorm.DB
	if sqlitePath != "" {
		db, err = database.NewSQLiteDB(sqlitePath)
	} else {
		db, err = database.NewPostgresDB(cfg)
	}
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := model.AutoMigrate(db); err != nil {
		log.Error("Failed to migrate: %v", err)
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seedDatabase(ctx, db, cfg, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

// seedDatabase goes through the usecases so seeded rows obey the same role
// and self-follow rules as registered ones. Running it twice changes nothing.
func seedDatabase(ctx context.Context, db *gorm.DB, cfg *config.Config, log *logger.Logger) error {
	userRepo := persistent.NewUserRepository(db)
	roleRepo := persistent.NewRoleRepository(db)
	followRepo := persistent.NewFollowRepository(db)
	catalogRepo := persistent.NewCatalogRepository(db)
	markRepo := persistent.NewMarkRepository(db)

	jwtService := jwt.NewService(cfg.JWTSecret)
	roleUseCase := usecase.NewRoleUseCase(roleRepo, userRepo, cfg.AdminEmail, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, roleRepo, jwtService, nil, nil, cfg, log)
	followUseCase := usecase.NewFollowUseCase(userRepo, followRepo, cfg.FollowersPerPage, log)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, log)
	markUseCase := usecase.NewMarkUseCase(markRepo, catalogRepo, nil, log)

	if err := roleUseCase.EnsureDefaultRoles(ctx); err != nil {
		return err
	}

	users := make([]*entity.User, 0, len(testUsers))
	for _, u := range testUsers {
		user, err := ensureUser(ctx, authUseCase, u)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.username, err)
		}
		users = append(users, user)
		log.Info("Seeded user %s (%s)", user.Username, user.ID)
	}

	// everyone follows the next user in the list
	for i, user := range users {
		next := users[(i+1)%len(users)]
		if err := followUseCase.Follow(ctx, user.ID, next.ID); err != nil {
			return fmt.Errorf("follow %s -> %s: %w", user.Username, next.Username, err)
		}
	}

	items := make(map[string]*entity.CatalogItem)
	for _, kind := range entity.Kinds() {
		for _, name := range testCatalog[kind] {
			item, err := ensureItem(ctx, catalogUseCase, kind, name)
			if err != nil {
				return fmt.Errorf("%s %q: %w", kind, name, err)
			}
			items[name] = item
		}
	}

	actors := make(map[string]*entity.Actor)
	for title, names := range testCast {
		item := items[title]
		for _, name := range names {
			actor, ok := actors[name]
			if !ok {
				var err error
				actor, err = ensureActor(ctx, catalogUseCase, catalogRepo, name)
				if err != nil {
					return fmt.Errorf("actor %q: %w", name, err)
				}
				actors[name] = actor
			}
			if err := catalogUseCase.AddToCast(ctx, item.Kind, item.ID, actor.ID); err != nil {
				return fmt.Errorf("cast %q in %q: %w", name, title, err)
			}
		}
	}

	// each user marks every other catalog entry, offset by position
	i := 0
	for _, kind := range entity.Kinds() {
		for _, name := range testCatalog[kind] {
			item := items[name]
			user := users[i%len(users)]
			if err := markUseCase.Mark(ctx, user.ID, kind, item.ID); err != nil {
				return fmt.Errorf("mark %q by %s: %w", name, user.Username, err)
			}
			i++
		}
	}

	return nil
}

func ensureUser(ctx context.Context, authUseCase usecase.AuthUseCase, u seedUser) (*entity.User, error) {
	user, _, err := authUseCase.Register(ctx, u.email, u.username, u.password)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entity.ErrEmailTaken) && !errors.Is(err, entity.ErrUsernameTaken) {
		return nil, err
	}
	user, _, err = authUseCase.Login(ctx, u.email, u.password)
	return user, err
}

func ensureItem(ctx context.Context, catalogUseCase usecase.CatalogUseCase, kind entity.Kind, name string) (*entity.CatalogItem, error) {
	item, err := catalogUseCase.Create(ctx, kind, name, "")
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, entity.ErrConflict) {
		return nil, err
	}
	for page := 1; ; page++ {
		existing, err := catalogUseCase.List(ctx, kind, page)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			return nil, fmt.Errorf("%w: %s %q", entity.ErrNotFound, kind, name)
		}
		for _, it := range existing {
			if it.Name == name {
				return it, nil
			}
		}
	}
}

func ensureActor(ctx context.Context, catalogUseCase usecase.CatalogUseCase, catalogRepo persistent.CatalogRepository, name string) (*entity.Actor, error) {
	actor, err := catalogUseCase.CreateActor(ctx, name, "")
	if err == nil {
		return actor, nil
	}
	if !errors.Is(err, entity.ErrConflict) {
		return nil, err
	}
	return catalogRepo.GetActorByName(ctx, name)
}
