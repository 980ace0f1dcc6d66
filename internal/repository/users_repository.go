package repository

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	return &UsersRepository{
		conn: newPool("usersRepo", cfg),
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	_, err := ur.conn.Exec(ctx,
		`INSERT INTO users (name, email, password_hash, age, weight, height, sex) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Weight,
		user.Height,
		user.Sex,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrEmailTaken
			}
		}
		return errors.New("creating user db error: " + err.Error())
	}
	return nil
}

// ValidateLogin matches both fields exactly, case-sensitive, no
// normalization. The stored credential is compared as an opaque string.
func (ur *UsersRepository) ValidateLogin(ctx context.Context, email, credential string) (bool, error) {
	var ok bool
	row := ur.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND password_hash = $2);`,
		email,
		credential,
	)
	if err := row.Scan(&ok); err != nil {
		return false, errors.New("validating login error: " + err.Error())
	}
	return ok, nil
}

func (ur *UsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx,
		`SELECT id, name, email, password_hash, age, weight, height, sex, role, created_at FROM users WHERE email = $1;`,
		email,
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age,
		&user.Weight, &user.Height, &user.Sex, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by email error: " + err.Error())
	}
	ur.loadGoals(ctx, &user)
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx,
		`SELECT id, name, email, password_hash, age, weight, height, sex, role, created_at FROM users WHERE id = $1;`,
		id,
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age,
		&user.Weight, &user.Height, &user.Sex, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	ur.loadGoals(ctx, &user)
	return &user, nil
}

// loadGoals reads the goal columns in a second query. A stale schema
// without them is not an error: goals stay zero and a warning is logged.
func (ur *UsersRepository) loadGoals(ctx context.Context, user *entity.User) {
	row := ur.conn.QueryRow(ctx,
		`SELECT daily_step_goal, weekly_workout_goal, weight_target FROM users WHERE id = $1;`,
		user.ID,
	)
	if err := row.Scan(&user.DailyStepGoal, &user.WeeklyWorkoutGoal, &user.WeightTarget); err != nil {
		slog.Warn("could not load user goals", slog.Int("uid", user.ID), slog.String("error", err.Error()))
		user.DailyStepGoal = 0
		user.WeeklyWorkoutGoal = 0
		user.WeightTarget = 0
	}
}

func (ur *UsersRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	ct, err := ur.conn.Exec(ctx,
		`UPDATE users SET name = $1, age = $2, weight = $3, height = $4, daily_step_goal = $5, weekly_workout_goal = $6, weight_target = $7 WHERE id = $8;`,
		user.Name,
		user.Age,
		user.Weight,
		user.Height,
		user.DailyStepGoal,
		user.WeeklyWorkoutGoal,
		user.WeightTarget,
		user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrEmailTaken
			}
		}
		return errors.New("updating user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) Delete(ctx context.Context, id int) error {
	ct, err := ur.conn.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}
