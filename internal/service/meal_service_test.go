package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/service"
	"github.com/fittrack/fittrack/pkg/entity"
)

type MealsRepoMock struct {
	failing bool
	meal    entity.Meal

	created *entity.Meal
	deleted int
}

func (m *MealsRepoMock) Create(ctx context.Context, meal *entity.Meal) error {
	if m.failing {
		return errors.New("mocked error")
	}
	m.created = meal
	return nil
}

func (m *MealsRepoMock) GetByID(ctx context.Context, id int) (*entity.Meal, error) {
	if m.failing {
		return nil, errorvalues.ErrMealNotFound
	}
	meal := m.meal
	return &meal, nil
}

func (m *MealsRepoMock) GetByUserID(ctx context.Context, uid int) ([]*entity.Meal, error) {
	if m.failing {
		return nil, errors.New("mocked error")
	}
	meal := m.meal
	return []*entity.Meal{&meal}, nil
}

func (m *MealsRepoMock) Delete(ctx context.Context, id int) error {
	if m.failing {
		return errors.New("mocked error")
	}
	m.deleted = id
	return nil
}

var _ repository.MealsRepositoryI = (*MealsRepoMock)(nil)

func validMealRequest() *service.MealRequest {
	return &service.MealRequest{
		Date:     day(2026, 6, 10),
		MealType: "Breakfast",
		FoodItem: "oatmeal",
		Calories: 350,
	}
}

func TestAddMeal(t *testing.T) {
	ctx := context.Background()
	t.Run("added", func(t *testing.T) {
		repo := &MealsRepoMock{}
		ms := service.NewMealService(repo)
		assert.True(t, ms.AddMeal(ctx, 1, validMealRequest()))
		assert.Equal(t, 1, repo.created.UserID)
	})
	t.Run("unknown meal type rejected", func(t *testing.T) {
		ms := service.NewMealService(&MealsRepoMock{})
		req := validMealRequest()
		req.MealType = "Brunch"
		assert.False(t, ms.AddMeal(ctx, 1, req))
	})
	t.Run("storage error swallowed", func(t *testing.T) {
		ms := service.NewMealService(&MealsRepoMock{failing: true})
		assert.False(t, ms.AddMeal(ctx, 1, validMealRequest()))
	})
}

func TestGetMeals(t *testing.T) {
	ctx := context.Background()
	t.Run("meals returned", func(t *testing.T) {
		ms := service.NewMealService(&MealsRepoMock{meal: entity.Meal{ID: 3, UserID: 1}})
		assert.Len(t, ms.GetMeals(ctx, 1), 1)
	})
	t.Run("storage error gives empty slice", func(t *testing.T) {
		ms := service.NewMealService(&MealsRepoMock{failing: true})
		assert.Empty(t, ms.GetMeals(ctx, 1))
	})
}

func TestDeleteMealOwnership(t *testing.T) {
	ctx := context.Background()
	t.Run("owner can delete", func(t *testing.T) {
		repo := &MealsRepoMock{meal: entity.Meal{ID: 3, UserID: 1}}
		ms := service.NewMealService(repo)
		assert.True(t, ms.DeleteMeal(ctx, 3, 1))
		assert.Equal(t, 3, repo.deleted)
	})
	t.Run("foreign meal refused", func(t *testing.T) {
		repo := &MealsRepoMock{meal: entity.Meal{ID: 3, UserID: 2}}
		ms := service.NewMealService(repo)
		assert.False(t, ms.DeleteMeal(ctx, 3, 1))
		assert.Zero(t, repo.deleted)
	})
	t.Run("missing meal refused", func(t *testing.T) {
		ms := service.NewMealService(&MealsRepoMock{failing: true})
		assert.False(t, ms.DeleteMeal(ctx, 3, 1))
	})
}
