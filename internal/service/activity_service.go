package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

// ActivityService is the swallow tier: callers get neutral sentinels
// back and cannot distinguish "not found" from a storage failure. The
// failure itself goes to the log.
type ActivityService struct {
	workoutsRepo repository.WorkoutsRepositoryI
	stepsRepo    repository.StepsRepositoryI
}

func NewActivityService(workoutsRepo repository.WorkoutsRepositoryI, stepsRepo repository.StepsRepositoryI) *ActivityService {
	if workoutsRepo == nil || stepsRepo == nil {
		log.Fatal("on activity service provided nil repos")
	}
	return &ActivityService{
		workoutsRepo: workoutsRepo,
		stepsRepo:    stepsRepo,
	}
}

func (as *ActivityService) AddWorkout(ctx context.Context, uid int, req *WorkoutRequest) bool {
	if err := validate.Struct(*req); err != nil {
		slog.Warn("add workout rejected: invalid request", slog.String("error", err.Error()))
		return false
	}
	err := as.workoutsRepo.Create(ctx, &entity.Workout{
		UserID:          uid,
		Date:            req.Date,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
	})
	if err != nil {
		slog.Warn("add workout failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (as *ActivityService) UpdateWorkout(ctx context.Context, workoutID, uid int, req *WorkoutRequest) bool {
	if err := validate.Struct(*req); err != nil {
		slog.Warn("update workout rejected: invalid request", slog.String("error", err.Error()))
		return false
	}
	if !as.ownsWorkout(ctx, workoutID, uid) {
		return false
	}
	err := as.workoutsRepo.Update(ctx, &entity.Workout{
		ID:              workoutID,
		Date:            req.Date,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
	})
	if err != nil {
		slog.Warn("update workout failed", slog.Int("workout_id", workoutID), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (as *ActivityService) DeleteWorkout(ctx context.Context, workoutID, uid int) bool {
	if !as.ownsWorkout(ctx, workoutID, uid) {
		return false
	}
	if err := as.workoutsRepo.Delete(ctx, workoutID); err != nil {
		slog.Warn("delete workout failed", slog.Int("workout_id", workoutID), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (as *ActivityService) ownsWorkout(ctx context.Context, workoutID, uid int) bool {
	workout, err := as.workoutsRepo.GetByID(ctx, workoutID)
	if err != nil {
		slog.Warn("workout lookup failed", slog.Int("workout_id", workoutID), slog.String("error", err.Error()))
		return false
	}
	if workout.UserID != uid {
		slog.Warn("workout belongs to another user", slog.Int("workout_id", workoutID), slog.Int("uid", uid))
		return false
	}
	return true
}

func (as *ActivityService) GetWorkouts(ctx context.Context, uid int) []*entity.Workout {
	workouts, err := as.workoutsRepo.GetByUserID(ctx, uid)
	if err != nil {
		slog.Warn("get workouts failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return []*entity.Workout{}
	}
	return workouts
}

func (as *ActivityService) StepsOn(ctx context.Context, uid int, date time.Time) int {
	steps, err := as.stepsRepo.StepsOn(ctx, uid, date)
	if err != nil {
		slog.Warn("get steps failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return 0
	}
	return steps
}

func (as *ActivityService) UpdateSteps(ctx context.Context, uid int, date time.Time, steps int) bool {
	if steps < 0 {
		slog.Warn("update steps rejected: negative count", slog.Int("uid", uid), slog.Int("steps", steps))
		return false
	}
	err := as.stepsRepo.Upsert(ctx, uid, date, steps)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			slog.Warn("update steps failed: user doesn't exist", slog.Int("uid", uid))
			return false
		}
		slog.Warn("update steps failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return false
	}
	return true
}
