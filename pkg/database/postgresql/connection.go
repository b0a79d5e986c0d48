package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// ConnectDB opens the shared pgx pool and pings it before returning.
func ConnectDB(dsn string, logger *zap.Logger) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to create pgx pool", zap.Error(err))
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	return pool
}

// RunMigrations applies the goose SQL migrations through the pgx stdlib adapter.
func RunMigrations(pool *pgxpool.Pool, dir string, logger *zap.Logger) {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close migration connection", zap.Error(err))
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("failed to set goose dialect", zap.Error(err))
	}
	if err := goose.Up(db, dir); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	logger.Info("database migrations applied", zap.String("dir", dir))
}
