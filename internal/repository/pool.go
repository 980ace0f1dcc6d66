package repository

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fittrack/fittrack/pkg/cleanup"
)

// newPool builds a pinged pgx pool for a repository and registers its
// closure with the cleanup registry.
func newPool(name string, cfg DBConfig) PgConnection {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for " + name + " error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for " + name + ": " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool of " + name,
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool
}
