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

type MealsRepository struct {
	conn PgConnection
}

func NewMealsRepo(cfg DBConfig) *MealsRepository {
	return &MealsRepository{
		conn: newPool("mealsRepo", cfg),
	}
}

func NewMealsRepoWithConn(conn PgConnection) *MealsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for mealsRepo: " + err.Error())
	}
	return &MealsRepository{
		conn: conn,
	}
}

func (mr *MealsRepository) Create(ctx context.Context, meal *entity.Meal) error {
	_, err := mr.conn.Exec(ctx,
		`INSERT INTO meals (user_id, date, meal_type, food_item, calories) VALUES ($1, $2, $3, $4, $5);`,
		meal.UserID,
		meal.Date,
		meal.MealType,
		meal.FoodItem,
		meal.Calories,
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
		return errors.New("creating meal db error: " + err.Error())
	}
	return nil
}

func (mr *MealsRepository) GetByID(ctx context.Context, id int) (*entity.Meal, error) {
	var meal entity.Meal
	meal.ID = id
	row := mr.conn.QueryRow(ctx,
		`SELECT user_id, date, meal_type, food_item, calories FROM meals WHERE id = $1;`,
		id,
	)
	if err := row.Scan(&meal.UserID, &meal.Date, &meal.MealType, &meal.FoodItem, &meal.Calories); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMealNotFound
		}
		return nil, errors.New("getting meal by id error: " + err.Error())
	}
	return &meal, nil
}

func (mr *MealsRepository) GetByUserID(ctx context.Context, uid int) ([]*entity.Meal, error) {
	meals := make([]*entity.Meal, 0)
	rows, err := mr.conn.Query(ctx,
		`SELECT id, user_id, date, meal_type, food_item, calories FROM meals WHERE user_id = $1 ORDER BY date DESC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting meals by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		m := entity.Meal{}
		err = rows.Scan(&m.ID, &m.UserID, &m.Date, &m.MealType, &m.FoodItem, &m.Calories)
		if err != nil {
			return nil, errors.New("unmarshalling meal error: " + err.Error())
		}
		meals = append(meals, &m)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return meals, nil
}

func (mr *MealsRepository) Delete(ctx context.Context, id int) error {
	ct, err := mr.conn.Exec(ctx, `DELETE FROM meals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting meal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMealNotFound
	}
	return nil
}
