package main

import (
	"flag"
	"fmt"
	"os"

	"arcade_hub/internal/logger"
	"arcade_hub/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 1, "migrations to roll back with -down (0 = all)")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), false)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	var err error
	if *down {
		err = migrations.Down(dsn, *steps)
	} else {
		err = migrations.Up(dsn)
	}
	if err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	v, dirty, err := migrations.Version(dsn)
	if err != nil {
		logger.Fatal("read schema version", "error", err)
	}
	fmt.Printf("schema version %d (dirty=%t)\n", v, dirty)
}
