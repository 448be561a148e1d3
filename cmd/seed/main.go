// Command seed bootstraps the first admin account so the admin area is
// reachable on a fresh database. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/observability"
	"github.com/missao-redime/church-service/internal/persistence"
	"github.com/missao-redime/church-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@missaoredime.com.br")
	name := getEnv("SEED_ADMIN_NAME", "Administrador")
	cpf := getEnv("SEED_ADMIN_CPF", "00000000000")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	members := repository.NewMemberRepository(pg.PoolHandle())

	if existing, err := users.GetByEmail(ctx, email); err == nil {
		logger.Info("admin account already exists", zap.String("email", email), zap.String("id", existing.ID))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		logger.Fatal("failed to check existing admin", zap.Error(err))
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	user := &domain.User{
		Name:         name,
		CPF:          cpf,
		Email:        &email,
		PasswordHash: &hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	profile := &domain.MemberProfile{
		Address: getEnv("SEED_ADMIN_ADDRESS", "Endereço padrão"),
	}

	if err := members.CreateWithProfile(ctx, user, profile, nil); err != nil {
		logger.Fatal("failed to create admin account", zap.Error(err))
	}

	logger.Info("admin account created",
		zap.String("email", email),
		zap.String("id", user.ID))
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
