package main

import (
	"context"
	"log"
	"os"
	"time"

	"carhive/internal/database"
	"carhive/internal/repository"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	users := repository.NewUserRepository(db)
	removed, err := users.DeleteExpiredResetTokens(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("cleanup reset tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: reset_tokens=%d", removed)
}
