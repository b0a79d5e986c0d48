package main

import (
	"context"
	"log"

	"gear-system/pkg/config"
	"gear-system/pkg/database/postgresql"
	applogger "gear-system/pkg/logger"
	"gear-system/seeders"
)

func main() {
	cfg := config.New()
	cfg.MustValidate()
	logger := applogger.NewLogger()

	pool := postgresql.ConnectDB(cfg.Postgres.DSN, logger)
	defer pool.Close()
	postgresql.RunMigrations(pool, "migrations", logger)

	if err := seeders.Run(context.Background(), pool); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
