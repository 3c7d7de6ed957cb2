package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"analytics-service/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DatabaseDriver struct {
	pool *pgxpool.Pool
}

func NewDatabaseDriver(pool *pgxpool.Pool) *DatabaseDriver {
	return &DatabaseDriver{
		pool: pool,
	}
}

// NewDatabaseDriverFromConfig creates a new DatabaseDriver with a
// connection pool built from environment variables.
func NewDatabaseDriverFromConfig(ctx context.Context) (*DatabaseDriver, error) {
	pool, err := initDatabasePool(ctx)
	if err != nil {
		return nil, err
	}

	return &DatabaseDriver{
		pool: pool,
	}, nil
}

// initDatabasePool initializes the database connection pool, retrying
// the initial ping with exponential backoff while Postgres comes up.
func initDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// Construct DATABASE_URL from individual environment variables
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbName := os.Getenv("DB_NAME")
		dbUser := os.Getenv("ANALYTICS_DB_USER")
		dbPassword := os.Getenv("ANALYTICS_DB_PASSWORD")

		if dbHost == "" || dbPort == "" || dbName == "" || dbUser == "" || dbPassword == "" {
			return nil, &DriverError{
				Op:  "initDatabasePool",
				Err: "database connection parameters are not set. Required: DB_HOST, DB_PORT, DB_NAME, ANALYTICS_DB_USER, ANALYTICS_DB_PASSWORD",
			}
		}

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to parse database URL: " + err.Error(),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to create database pool: " + err.Error(),
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 30 * time.Second

	const maxAttempts = 6
	var pingErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pingErr = pool.Ping(ctx)
		if pingErr == nil {
			break
		}
		if attempt == maxAttempts {
			break
		}
		delay := bo.NextBackOff()
		logger.Logger.Warn("database not ready, retrying",
			"attempt", attempt, "max", maxAttempts, "retry_in", delay, "err", pingErr)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			pool.Close()
			return nil, &DriverError{Op: "initDatabasePool", Err: ctx.Err().Error()}
		}
	}
	if pingErr != nil {
		pool.Close()
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: fmt.Sprintf("failed to ping database after %d attempts: %v", maxAttempts, pingErr),
		}
	}

	logger.Logger.Info("Database connected successfully")
	return pool, nil
}

// Close closes the database connection pool.
func (d *DatabaseDriver) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
