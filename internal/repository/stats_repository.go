package repository

import (
	"context"
	"errors"
	"log"
	"time"
)

// StatsRepository serves the read-only aggregate queries behind the
// dashboard and profile figures.
type StatsRepository struct {
	conn PgConnection
}

func NewStatsRepo(cfg DBConfig) *StatsRepository {
	return &StatsRepository{
		conn: newPool("statsRepo", cfg),
	}
}

func NewStatsRepoWithConn(conn PgConnection) *StatsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statsRepo: " + err.Error())
	}
	return &StatsRepository{
		conn: conn,
	}
}

func (sr *StatsRepository) scanInt(ctx context.Context, what, sql string, args ...any) (int, error) {
	var n int
	row := sr.conn.QueryRow(ctx, sql, args...)
	if err := row.Scan(&n); err != nil {
		return 0, errors.New(what + " error: " + err.Error())
	}
	return n, nil
}

func (sr *StatsRepository) SumCaloriesBurned(ctx context.Context, uid int) (int, error) {
	return sr.scanInt(ctx, "summing calories burned",
		`SELECT COALESCE(SUM(calories_burned), 0) FROM workouts WHERE user_id = $1;`, uid)
}

func (sr *StatsRepository) SumCaloriesBurnedOn(ctx context.Context, uid int, date time.Time) (int, error) {
	return sr.scanInt(ctx, "summing calories burned on date",
		`SELECT COALESCE(SUM(calories_burned), 0) FROM workouts WHERE user_id = $1 AND date = $2;`, uid, date)
}

func (sr *StatsRepository) SumCaloriesBurnedSince(ctx context.Context, uid int, from time.Time) (int, error) {
	return sr.scanInt(ctx, "summing recent calories burned",
		`SELECT COALESCE(SUM(calories_burned), 0) FROM workouts WHERE user_id = $1 AND date >= $2;`, uid, from)
}

func (sr *StatsRepository) SumSteps(ctx context.Context, uid int) (int, error) {
	return sr.scanInt(ctx, "summing steps",
		`SELECT COALESCE(SUM(steps), 0) FROM steps WHERE user_id = $1;`, uid)
}

func (sr *StatsRepository) SumStepsSince(ctx context.Context, uid int, from time.Time) (int, error) {
	return sr.scanInt(ctx, "summing recent steps",
		`SELECT COALESCE(SUM(steps), 0) FROM steps WHERE user_id = $1 AND date >= $2;`, uid, from)
}

func (sr *StatsRepository) CountWorkoutsOn(ctx context.Context, uid int, date time.Time) (int, error) {
	return sr.scanInt(ctx, "counting workouts on date",
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND date = $2;`, uid, date)
}

func (sr *StatsRepository) CountWorkoutsSince(ctx context.Context, uid int, from time.Time) (int, error) {
	return sr.scanInt(ctx, "counting recent workouts",
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND date >= $2;`, uid, from)
}

func (sr *StatsRepository) CountDistinctWorkoutDays(ctx context.Context, uid int) (int, error) {
	return sr.scanInt(ctx, "counting workout days",
		`SELECT COUNT(DISTINCT date) FROM workouts WHERE user_id = $1;`, uid)
}

func (sr *StatsRepository) WorkoutDates(ctx context.Context, uid int) ([]time.Time, error) {
	rows, err := sr.conn.Query(ctx,
		`SELECT DISTINCT date FROM workouts WHERE user_id = $1 ORDER BY date DESC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting workout dates error: " + err.Error())
	}
	defer rows.Close()
	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, errors.New("unmarshalling workout date error: " + err.Error())
		}
		dates = append(dates, d)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return dates, nil
}
