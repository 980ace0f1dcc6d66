package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fittrack/fittrack/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// True iff a row matches both email and stored credential exactly
	ValidateLogin(ctx context.Context, email, credential string) (bool, error)
	// Full row hydration; goal columns read defensively
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id int) (*entity.User, error)
	// Updates name, body metrics and the three goal fields by id
	UpdateProfile(ctx context.Context, user *entity.User) error
	// Deletes user; owned rows go with it via cascade
	Delete(ctx context.Context, id int) error
}

type WorkoutsRepositoryI interface {
	Create(ctx context.Context, workout *entity.Workout) error
	GetByID(ctx context.Context, id int) (*entity.Workout, error)
	// All workouts of the user ordered by date descending
	GetByUserID(ctx context.Context, uid int) ([]*entity.Workout, error)
	Update(ctx context.Context, workout *entity.Workout) error
	Delete(ctx context.Context, id int) error
}

type StepsRepositoryI interface {
	// Steps recorded for the user on the given day, 0 when absent
	StepsOn(ctx context.Context, uid int, date time.Time) (int, error)
	// Single INSERT .. ON CONFLICT write resolved on the (user, date)
	// unique index; last writer wins, exactly one row per (user, date)
	Upsert(ctx context.Context, uid int, date time.Time, steps int) error
}

type MealsRepositoryI interface {
	Create(ctx context.Context, meal *entity.Meal) error
	GetByID(ctx context.Context, id int) (*entity.Meal, error)
	// All meals of the user ordered by date descending
	GetByUserID(ctx context.Context, uid int) ([]*entity.Meal, error)
	Delete(ctx context.Context, id int) error
}

type RemindersRepositoryI interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	GetByID(ctx context.Context, id int) (*entity.Reminder, error)
	// Unordered; active-only filtering is the consumer's job
	GetByUserID(ctx context.Context, uid int) ([]*entity.Reminder, error)
	Delete(ctx context.Context, id int) error
	UpdateStatus(ctx context.Context, id int, active bool) error
}

type StatsRepositoryI interface {
	SumCaloriesBurned(ctx context.Context, uid int) (int, error)
	SumCaloriesBurnedOn(ctx context.Context, uid int, date time.Time) (int, error)
	SumCaloriesBurnedSince(ctx context.Context, uid int, from time.Time) (int, error)
	SumSteps(ctx context.Context, uid int) (int, error)
	SumStepsSince(ctx context.Context, uid int, from time.Time) (int, error)
	CountWorkoutsOn(ctx context.Context, uid int, date time.Time) (int, error)
	CountWorkoutsSince(ctx context.Context, uid int, from time.Time) (int, error)
	CountDistinctWorkoutDays(ctx context.Context, uid int) (int, error)
	// Distinct workout dates, newest first. Input of the streak walk.
	WorkoutDates(ctx context.Context, uid int) ([]time.Time, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

// ServerConnString targets the maintenance database so the target
// database itself can be created.
func (pgcfg *PGCfg) ServerConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/postgres", pgcfg.Username, pgcfg.Password, pgcfg.Address)
}
