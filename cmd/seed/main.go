// Command seed creates or resets the single owner account. Run once after
// migrations; defaults come from SEED_OWNER_EMAIL and SEED_OWNER_PASSWORD.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/grainworks/portfolio-api/config"
	pginfra "github.com/grainworks/portfolio-api/internal/infrastructure/postgres"
	"github.com/grainworks/portfolio-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(cfg.SeedOwnerPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at
	`, uuid.NewString(), cfg.SeedOwnerEmail, hash, now, now)
	if err != nil {
		log.Fatalf("failed to seed owner: %v", err)
	}
	log.Printf("owner account ready: %s", cfg.SeedOwnerEmail)
}
