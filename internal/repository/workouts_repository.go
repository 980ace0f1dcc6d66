package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/pkg/entity"
)

type WorkoutsRepository struct {
	conn PgConnection
}

func NewWorkoutsRepo(cfg DBConfig) *WorkoutsRepository {
	return &WorkoutsRepository{
		conn: newPool("workoutsRepo", cfg),
	}
}

func NewWorkoutsRepoWithConn(conn PgConnection) *WorkoutsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	return &WorkoutsRepository{
		conn: conn,
	}
}

func (wr *WorkoutsRepository) Create(ctx context.Context, workout *entity.Workout) error {
	_, err := wr.conn.Exec(ctx,
		`INSERT INTO workouts (user_id, date, type, duration_minutes, calories_burned, notes) VALUES ($1, $2, $3, $4, $5, $6);`,
		workout.UserID,
		workout.Date,
		workout.Type,
		workout.DurationMinutes,
		workout.CaloriesBurned,
		workout.Notes,
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
		return errors.New("creating workout db error: " + err.Error())
	}
	return nil
}

func (wr *WorkoutsRepository) GetByID(ctx context.Context, id int) (*entity.Workout, error) {
	var workout entity.Workout
	workout.ID = id
	row := wr.conn.QueryRow(ctx,
		`SELECT user_id, date, type, duration_minutes, calories_burned, notes FROM workouts WHERE id = $1;`,
		id,
	)
	if err := row.Scan(&workout.UserID, &workout.Date, &workout.Type,
		&workout.DurationMinutes, &workout.CaloriesBurned, &workout.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrWorkoutNotFound
		}
		return nil, errors.New("getting workout by id error: " + err.Error())
	}
	return &workout, nil
}

func (wr *WorkoutsRepository) GetByUserID(ctx context.Context, uid int) ([]*entity.Workout, error) {
	workouts := make([]*entity.Workout, 0)
	rows, err := wr.conn.Query(ctx,
		`SELECT id, user_id, date, type, duration_minutes, calories_burned, notes FROM workouts WHERE user_id = $1 ORDER BY date DESC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting workouts by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		w := entity.Workout{}
		err = rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Type, &w.DurationMinutes, &w.CaloriesBurned, &w.Notes)
		if err != nil {
			return nil, errors.New("unmarshalling workout error: " + err.Error())
		}
		workouts = append(workouts, &w)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return workouts, nil
}

func (wr *WorkoutsRepository) Update(ctx context.Context, workout *entity.Workout) error {
	ct, err := wr.conn.Exec(ctx,
		`UPDATE workouts SET date = $1, type = $2, duration_minutes = $3, calories_burned = $4, notes = $5 WHERE id = $6;`,
		workout.Date,
		workout.Type,
		workout.DurationMinutes,
		workout.CaloriesBurned,
		workout.Notes,
		workout.ID,
	)
	if err != nil {
		return errors.New("error updating workout: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrWorkoutNotFound
	}
	return nil
}

func (wr *WorkoutsRepository) Delete(ctx context.Context, id int) error {
	ct, err := wr.conn.Exec(ctx, `DELETE FROM workouts WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting workout: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrWorkoutNotFound
	}
	return nil
}
