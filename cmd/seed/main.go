package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eventhub/event-management-backend/config"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminHash, err := helpers.HashPassword("admin123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	userHash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO UPDATE SET roles = EXCLUDED.roles
		RETURNING id
	`, "admin", "admin@eventhub.local", adminHash, "Admin", "User",
		[]string{entity.RoleAdmin, entity.RoleUser}).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=admin password=admin123\n", adminID)

	var demoID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, "demo", "demo@eventhub.local", userHash, "Demo", "User",
		[]string{entity.RoleUser}).Scan(&demoID)
	if err != nil && err != sql.ErrNoRows {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	if err == nil {
		fmt.Printf("seeded demo user: id=%d username=demo password=password123\n", demoID)
	}

	var catID int64
	err = db.QueryRow(`
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, "General", "General events").Scan(&catID)
	if err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	fmt.Printf("seeded category: id=%d name=General\n", catID)
}
