package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
)

type StepsRepository struct {
	conn PgConnection
}

func NewStepsRepo(cfg DBConfig) *StepsRepository {
	return &StepsRepository{
		conn: newPool("stepsRepo", cfg),
	}
}

func NewStepsRepoWithConn(conn PgConnection) *StepsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for stepsRepo: " + err.Error())
	}
	return &StepsRepository{
		conn: conn,
	}
}

// StepsOn returns 0 when no entry exists for the day.
func (sr *StepsRepository) StepsOn(ctx context.Context, uid int, date time.Time) (int, error) {
	var steps int
	row := sr.conn.QueryRow(ctx,
		`SELECT steps FROM steps WHERE user_id = $1 AND date = $2;`,
		uid,
		date,
	)
	if err := row.Scan(&steps); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.New("getting steps error: " + err.Error())
	}
	return steps, nil
}

// Upsert writes the day's count in a single statement resolved against
// the (user_id, date) unique index, so concurrent writers for the same
// day land on the same row. The later write wins.
func (sr *StepsRepository) Upsert(ctx context.Context, uid int, date time.Time, steps int) error {
	_, err := sr.conn.Exec(ctx,
		`INSERT INTO steps (user_id, date, steps) VALUES ($1, $2, $3) ON CONFLICT (user_id, date) DO UPDATE SET steps = EXCLUDED.steps;`,
		uid,
		date,
		steps,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrOwnerNotFound
			}
		}
		return errors.New("upserting steps error: " + err.Error())
	}
	return nil
}
