package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - creating admin user...")

	const email = "admin@gear.local"
	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == nil {
		log.Println("    - admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		"INSERT INTO users (fio, email, password_hash, role) VALUES ($1, $2, $3, 'admin')",
		"Administrator", email, string(hash))
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	log.Println("    - admin user created (admin@gear.local / admin12345)")
	return nil
}
