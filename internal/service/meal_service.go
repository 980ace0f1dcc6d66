package service

import (
	"context"
	"log"
	"log/slog"

	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

type MealService struct {
	repo repository.MealsRepositoryI
}

func NewMealService(mealsRepo repository.MealsRepositoryI) *MealService {
	if mealsRepo == nil {
		log.Fatal("on meal service provided nil repo")
	}
	return &MealService{
		repo: mealsRepo,
	}
}

func (ms *MealService) AddMeal(ctx context.Context, uid int, req *MealRequest) bool {
	if err := validate.Struct(*req); err != nil {
		slog.Warn("add meal rejected: invalid request", slog.String("error", err.Error()))
		return false
	}
	err := ms.repo.Create(ctx, &entity.Meal{
		UserID:   uid,
		Date:     req.Date,
		MealType: req.MealType,
		FoodItem: req.FoodItem,
		Calories: req.Calories,
	})
	if err != nil {
		slog.Warn("add meal failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (ms *MealService) GetMeals(ctx context.Context, uid int) []*entity.Meal {
	meals, err := ms.repo.GetByUserID(ctx, uid)
	if err != nil {
		slog.Warn("get meals failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return []*entity.Meal{}
	}
	return meals
}

func (ms *MealService) DeleteMeal(ctx context.Context, mealID, uid int) bool {
	meal, err := ms.repo.GetByID(ctx, mealID)
	if err != nil {
		slog.Warn("meal lookup failed", slog.Int("meal_id", mealID), slog.String("error", err.Error()))
		return false
	}
	if meal.UserID != uid {
		slog.Warn("meal belongs to another user", slog.Int("meal_id", mealID), slog.Int("uid", uid))
		return false
	}
	if err := ms.repo.Delete(ctx, mealID); err != nil {
		slog.Warn("delete meal failed", slog.Int("meal_id", mealID), slog.String("error", err.Error()))
		return false
	}
	return true
}
