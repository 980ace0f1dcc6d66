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

type RemindersRepository struct {
	conn PgConnection
}

func NewRemindersRepo(cfg DBConfig) *RemindersRepository {
	return &RemindersRepository{
		conn: newPool("remindersRepo", cfg),
	}
}

func NewRemindersRepoWithConn(conn PgConnection) *RemindersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for remindersRepo: " + err.Error())
	}
	return &RemindersRepository{
		conn: conn,
	}
}

func (rr *RemindersRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	_, err := rr.conn.Exec(ctx,
		`INSERT INTO reminders (user_id, workout_type, day_of_week, time, is_active) VALUES ($1, $2, $3, $4, $5);`,
		reminder.UserID,
		reminder.WorkoutType,
		reminder.DayOfWeek,
		reminder.Time,
		reminder.IsActive,
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
		return errors.New("creating reminder db error: " + err.Error())
	}
	return nil
}

func (rr *RemindersRepository) GetByID(ctx context.Context, id int) (*entity.Reminder, error) {
	var reminder entity.Reminder
	reminder.ID = id
	row := rr.conn.QueryRow(ctx,
		`SELECT user_id, workout_type, day_of_week, time::text, is_active FROM reminders WHERE id = $1;`,
		id,
	)
	if err := row.Scan(&reminder.UserID, &reminder.WorkoutType, &reminder.DayOfWeek,
		&reminder.Time, &reminder.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrReminderNotFound
		}
		return nil, errors.New("getting reminder by id error: " + err.Error())
	}
	return &reminder, nil
}

func (rr *RemindersRepository) GetByUserID(ctx context.Context, uid int) ([]*entity.Reminder, error) {
	reminders := make([]*entity.Reminder, 0)
	rows, err := rr.conn.Query(ctx,
		`SELECT id, user_id, workout_type, day_of_week, time::text, is_active FROM reminders WHERE user_id = $1;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting reminders by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		r := entity.Reminder{}
		err = rows.Scan(&r.ID, &r.UserID, &r.WorkoutType, &r.DayOfWeek, &r.Time, &r.IsActive)
		if err != nil {
			return nil, errors.New("unmarshalling reminder error: " + err.Error())
		}
		reminders = append(reminders, &r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return reminders, nil
}

func (rr *RemindersRepository) Delete(ctx context.Context, id int) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM reminders WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting reminder: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) UpdateStatus(ctx context.Context, id int, active bool) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE reminders SET is_active = $1 WHERE id = $2;`, active, id)
	if err != nil {
		return errors.New("error updating reminder status: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}
