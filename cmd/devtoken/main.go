package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"arcade_hub/internal/db"
	"arcade_hub/internal/domain"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/repository"
	"arcade_hub/internal/service"

	"github.com/joho/godotenv"
)

// devtoken ensures a profile exists and prints a bearer token for it.
func main() {
	username := flag.String("username", "testuser", "profile username")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), false)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	service.InitJWT(os.Getenv("JWT_SECRET"))

	ctx := context.Background()
	pool := db.Connect(ctx, dsn)
	defer pool.Close()

	repo := repository.NewProfileRepository(pool)

	p, err := repo.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		logger.Info("profile already exists", "id", p.ID)
	case errors.Is(err, repository.ErrNotFound):
		p = &domain.Profile{Username: *username}
		if err := repo.Create(ctx, p); err != nil {
			logger.Fatal("create profile failed", "error", err)
		}
		logger.Info("profile created", "id", p.ID)
	default:
		logger.Fatal("lookup profile failed", "error", err)
	}

	token, err := service.GenerateJWT(p.ID)
	if err != nil {
		logger.Fatal("sign token failed", "error", err)
	}
	fmt.Println(token)
}
