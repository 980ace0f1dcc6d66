package service

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

// KmPerStep converts a step count to an estimated distance in
// kilometers. Fixed linear conversion, not adjusted per stride length.
const KmPerStep = 0.0008

const defaultDailyStepGoal = 10000

// AnalyticsService composes repository aggregates into derived figures.
// Everything here is read-only; storage failures are logged and
// collapse to zero values.
type AnalyticsService struct {
	statsRepo repository.StatsRepositoryI
	usersRepo repository.UsersRepositoryI
	stepsRepo repository.StepsRepositoryI

	// Now supplies the anchor date; tests pin it.
	Now func() time.Time
}

func NewAnalyticsService(statsRepo repository.StatsRepositoryI, usersRepo repository.UsersRepositoryI, stepsRepo repository.StepsRepositoryI) *AnalyticsService {
	if statsRepo == nil || usersRepo == nil || stepsRepo == nil {
		log.Fatal("on analytics service provided nil repos")
	}
	return &AnalyticsService{
		statsRepo: statsRepo,
		usersRepo: usersRepo,
		stepsRepo: stepsRepo,
		Now:       time.Now,
	}
}

// dateOnly strips the time-of-day so DATE columns and wall-clock values
// compare as calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (as *AnalyticsService) today() time.Time {
	return dateOnly(as.Now())
}

// Today exposes the service's anchor date so callers composing figures
// for "today" use the same clock the aggregates do.
func (as *AnalyticsService) Today() time.Time {
	return as.today()
}

// windowStart is the inclusive lower bound of the rolling 7-day window
// [today-6, today].
func (as *AnalyticsService) windowStart() time.Time {
	return as.today().AddDate(0, 0, -6)
}

func (as *AnalyticsService) intStat(what string, uid int, f func() (int, error)) int {
	n, err := f()
	if err != nil {
		slog.Warn(what+" failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return 0
	}
	return n
}

func (as *AnalyticsService) TotalCaloriesBurned(ctx context.Context, uid int) int {
	return as.intStat("total calories burned", uid, func() (int, error) {
		return as.statsRepo.SumCaloriesBurned(ctx, uid)
	})
}

func (as *AnalyticsService) TotalSteps(ctx context.Context, uid int) int {
	return as.intStat("total steps", uid, func() (int, error) {
		return as.statsRepo.SumSteps(ctx, uid)
	})
}

func (as *AnalyticsService) TotalWorkoutDays(ctx context.Context, uid int) int {
	return as.intStat("total workout days", uid, func() (int, error) {
		return as.statsRepo.CountDistinctWorkoutDays(ctx, uid)
	})
}

func (as *AnalyticsService) CaloriesBurnedToday(ctx context.Context, uid int) int {
	return as.intStat("calories burned today", uid, func() (int, error) {
		return as.statsRepo.SumCaloriesBurnedOn(ctx, uid, as.today())
	})
}

func (as *AnalyticsService) WorkoutCountToday(ctx context.Context, uid int) int {
	return as.intStat("workout count today", uid, func() (int, error) {
		return as.statsRepo.CountWorkoutsOn(ctx, uid, as.today())
	})
}

func (as *AnalyticsService) TotalStepsLast7Days(ctx context.Context, uid int) int {
	return as.intStat("steps last 7 days", uid, func() (int, error) {
		return as.statsRepo.SumStepsSince(ctx, uid, as.windowStart())
	})
}

func (as *AnalyticsService) CaloriesBurnedLast7Days(ctx context.Context, uid int) int {
	return as.intStat("calories burned last 7 days", uid, func() (int, error) {
		return as.statsRepo.SumCaloriesBurnedSince(ctx, uid, as.windowStart())
	})
}

func (as *AnalyticsService) WorkoutCountLast7Days(ctx context.Context, uid int) int {
	return as.intStat("workout count last 7 days", uid, func() (int, error) {
		return as.statsRepo.CountWorkoutsSince(ctx, uid, as.windowStart())
	})
}

// CurrentWorkoutStreak counts consecutive calendar days with at least
// one workout, anchored at today or yesterday.
func (as *AnalyticsService) CurrentWorkoutStreak(ctx context.Context, uid int) int {
	dates, err := as.statsRepo.WorkoutDates(ctx, uid)
	if err != nil {
		slog.Warn("workout streak failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return 0
	}
	return CountStreak(dates, as.today())
}

// CountStreak walks distinct workout dates, newest first. The first
// date must be today or yesterday, each following date exactly one day
// before the previous counted one; the first gap ends the walk.
func CountStreak(dates []time.Time, today time.Time) int {
	today = dateOnly(today)
	streak := 0
	var last time.Time
	for _, d := range dates {
		d = dateOnly(d)
		if streak == 0 {
			if !d.Equal(today) && !d.Equal(today.AddDate(0, 0, -1)) {
				break
			}
		} else if !d.Equal(last.AddDate(0, 0, -1)) {
			break
		}
		streak++
		last = d
	}
	return streak
}

// StepGoalProgress reports steps on the given day against the user's
// daily goal. A goal of zero or below substitutes the 10,000 default;
// the ratio is clamped to [0, 1].
func (as *AnalyticsService) StepGoalProgress(ctx context.Context, uid int, date time.Time) entity.StepGoalProgress {
	goal := 0
	user, err := as.usersRepo.FindByID(ctx, uid)
	if err != nil {
		slog.Warn("step goal lookup failed", slog.Int("uid", uid), slog.String("error", err.Error()))
	} else {
		goal = user.DailyStepGoal
	}
	if goal <= 0 {
		goal = defaultDailyStepGoal
	}
	steps := as.intStat("steps on date", uid, func() (int, error) {
		return as.stepsRepo.StepsOn(ctx, uid, dateOnly(date))
	})
	return entity.StepGoalProgress{
		Steps: steps,
		Goal:  goal,
		Ratio: clampRatio(steps, goal),
	}
}

func clampRatio(value, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	ratio := float64(value) / float64(goal)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}

// WorkoutGoalProgress reports workouts in the rolling 7-day window
// against the weekly goal. No default is substituted: an unset goal
// yields a zero ratio.
func (as *AnalyticsService) WorkoutGoalProgress(ctx context.Context, uid int) entity.WorkoutGoalProgress {
	goal := 0
	user, err := as.usersRepo.FindByID(ctx, uid)
	if err != nil {
		slog.Warn("workout goal lookup failed", slog.Int("uid", uid), slog.String("error", err.Error()))
	} else {
		goal = user.WeeklyWorkoutGoal
	}
	workouts := as.WorkoutCountLast7Days(ctx, uid)
	return entity.WorkoutGoalProgress{
		Workouts: workouts,
		Goal:     goal,
		Ratio:    clampRatio(workouts, goal),
	}
}

func (as *AnalyticsService) LifetimeStats(ctx context.Context, uid int) entity.LifetimeStats {
	return entity.LifetimeStats{
		TotalSteps:          as.TotalSteps(ctx, uid),
		TotalCaloriesBurned: as.TotalCaloriesBurned(ctx, uid),
		TotalWorkoutDays:    as.TotalWorkoutDays(ctx, uid),
	}
}

func (as *AnalyticsService) RecentActivity(ctx context.Context, uid int) entity.RecentActivity {
	steps := as.TotalStepsLast7Days(ctx, uid)
	return entity.RecentActivity{
		Steps:          steps,
		DistanceKm:     float64(steps) * KmPerStep,
		CaloriesBurned: as.CaloriesBurnedLast7Days(ctx, uid),
		Workouts:       as.WorkoutCountLast7Days(ctx, uid),
		Streak:         as.CurrentWorkoutStreak(ctx, uid),
	}
}
