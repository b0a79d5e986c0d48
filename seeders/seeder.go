package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run executes every seeder in order. Each one is idempotent, so re-running
// against a populated database is safe.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("Seeding database...")

	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	if err := seedEquipment(ctx, db); err != nil {
		return err
	}

	log.Println("Seeding finished.")
	return nil
}
