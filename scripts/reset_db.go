// Скрипт для сброса и пересоздания схемы Postgres.
// Запуск: go run scripts/reset_db.go

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected successfully!")

	commands := []string{
		"DROP TABLE IF EXISTS users CASCADE",

		`CREATE TABLE IF NOT EXISTS users (
			user_id        UUID PRIMARY KEY,
			name           TEXT        NOT NULL,
			email          TEXT        NOT NULL,
			phone          TEXT        NOT NULL,
			password_hash  TEXT        NOT NULL,
			role           TEXT        NOT NULL DEFAULT 'USER',
			verified       BOOLEAN     NOT NULL DEFAULT FALSE,
			preferences    JSONB       NOT NULL DEFAULT '{}'::jsonb,
			lat            DOUBLE PRECISION,
			lng            DOUBLE PRECISION,
			favorites      TEXT[]      NOT NULL DEFAULT '{}',
			search_history TEXT[]      NOT NULL DEFAULT '{}',
			last_login     TIMESTAMPTZ,
			active         BOOLEAN     NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_email_key UNIQUE (email),
			CONSTRAINT users_phone_key UNIQUE (phone)
		)`,

		"CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)",
	}

	for i, cmd := range commands {
		fmt.Printf("Executing command %d/%d...\n", i+1, len(commands))
		if _, err := conn.Exec(ctx, cmd); err != nil {
			log.Fatalf("Command %d failed: %v", i+1, err)
		}
	}

	fmt.Println("Schema reset complete!")
}
