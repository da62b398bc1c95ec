package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	schemaSQL := `
CREATE TABLE IF NOT EXISTS feedback (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    content TEXT NOT NULL,
    label VARCHAR(20) NOT NULL,
    helpful BOOLEAN NOT NULL,
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatalf("Failed to create feedback table: %v", err)
	}
	log.Println("✓ feedback table ready")

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback (created_at)`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		log.Fatalf("Failed to create index: %v", err)
	}
	log.Println("✓ feedback indexes ready")
}
