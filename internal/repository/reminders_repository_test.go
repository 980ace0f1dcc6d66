package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

func testReminder() entity.Reminder {
	return entity.Reminder{
		ID:          1,
		UserID:      1,
		WorkoutType: "Running",
		DayOfWeek:   "Monday",
		Time:        "07:30:00",
		IsActive:    true,
	}
}

func TestCreateReminder(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewRemindersRepoWithConn(conn)
	reminder := testReminder()
	query := regexp.QuoteMeta(`INSERT INTO reminders (user_id, workout_type, day_of_week, time, is_active) VALUES ($1, $2, $3, $4, $5);`)
	args := []any{reminder.UserID, reminder.WorkoutType, reminder.DayOfWeek, reminder.Time, reminder.IsActive}
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &reminder)
		assert.NoError(t, err)
	})
	t.Run("unknown owner", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(args...).WillReturnError(&pgconn.PgError{Code: "23503"})
		err := repo.Create(ctx, &reminder)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
}

func TestGetReminderByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewRemindersRepoWithConn(conn)
	reminder := testReminder()
	query := regexp.QuoteMeta(`SELECT user_id, workout_type, day_of_week, time::text, is_active FROM reminders WHERE id = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(reminder.ID).
			WillReturnRows(pgxmock.NewRows([]string{"user_id", "workout_type", "day_of_week", "time", "is_active"}).
				AddRow(reminder.UserID, reminder.WorkoutType, reminder.DayOfWeek, reminder.Time, reminder.IsActive))
		result, err := repo.GetByID(ctx, reminder.ID)
		assert.NoError(t, err)
		assert.Equal(t, reminder, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(reminder.ID).WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, reminder.ID)
		assert.ErrorIs(t, err, errorvalues.ErrReminderNotFound)
	})
}

func TestGetRemindersByUserID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewRemindersRepoWithConn(conn)
	reminder := testReminder()
	query := regexp.QuoteMeta(`SELECT id, user_id, workout_type, day_of_week, time::text, is_active FROM reminders WHERE user_id = $1;`)
	t.Run("rows returned", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(reminder.UserID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "workout_type", "day_of_week", "time", "is_active"}).
				AddRow(reminder.ID, reminder.UserID, reminder.WorkoutType, reminder.DayOfWeek, reminder.Time, reminder.IsActive))
		result, err := repo.GetByUserID(ctx, reminder.UserID)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, reminder, *result[0])
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(reminder.UserID).WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, reminder.UserID)
		assert.Error(t, err)
	})
}

func TestDeleteReminder(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewRemindersRepoWithConn(conn)
	query := regexp.QuoteMeta(`DELETE FROM reminders WHERE id = $1;`)
	t.Run("successfully deleted", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(1).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.Delete(ctx, 1)
		assert.NoError(t, err)
	})
	t.Run("no such reminder", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(1).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, 1)
		assert.ErrorIs(t, err, errorvalues.ErrReminderNotFound)
	})
}

func TestUpdateReminderStatus(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewRemindersRepoWithConn(conn)
	query := regexp.QuoteMeta(`UPDATE reminders SET is_active = $1 WHERE id = $2;`)
	t.Run("successfully updated", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(false, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.UpdateStatus(ctx, 1, false)
		assert.NoError(t, err)
	})
	t.Run("no such reminder", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(true, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.UpdateStatus(ctx, 1, true)
		assert.ErrorIs(t, err, errorvalues.ErrReminderNotFound)
	})
}
