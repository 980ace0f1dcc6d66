package service

import (
	"context"
	"time"

	"github.com/fittrack/fittrack/pkg/entity"
)

type RegisterRequest struct {
	Name     string  `validate:"required,min=2,max=50"`
	Email    string  `validate:"required,email,max=100"`
	Password string  `validate:"required,min=6,max=72"`
	Age      int     `validate:"gte=0,lte=120"`
	Weight   float64 `validate:"gte=0"`
	Height   float64 `validate:"gte=0"`
	Sex      string  `validate:"omitempty,oneof=Male Female Other"`
}

type UpdateProfileRequest struct {
	Name              string  `validate:"required,min=2,max=50"`
	Age               int     `validate:"gte=0,lte=120"`
	Weight            float64 `validate:"gte=0"`
	Height            float64 `validate:"gte=0"`
	DailyStepGoal     int     `validate:"gte=0"`
	WeeklyWorkoutGoal int     `validate:"gte=0"`
	WeightTarget      float64 `validate:"gte=0"`
}

type WorkoutRequest struct {
	Date            time.Time `validate:"required"`
	Type            string    `validate:"required,max=50"`
	DurationMinutes int       `validate:"gte=0"`
	CaloriesBurned  int       `validate:"gte=0"`
	Notes           string
}

type MealRequest struct {
	Date     time.Time `validate:"required"`
	MealType string    `validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	FoodItem string    `validate:"required,max=100"`
	Calories int       `validate:"gte=0"`
}

type ReminderRequest struct {
	WorkoutType string `validate:"required,max=50"`
	DayOfWeek   string `validate:"required,day_of_week"`
	Time        string `validate:"required,time_of_day"`
	IsActive    bool
}

type UserServiceI interface {
	// Validates the request, creates the user row. Email collisions
	// surface as ErrEmailTaken so the caller can present a targeted
	// message; other storage errors propagate too.
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Exact comparison of email and credential. On success returns the
	// hydrated user for the session the caller threads through
	// subsequent calls.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Propagates storage errors to the caller
	UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*entity.User, error)
	// Cascade-deletes all owned workout/step/meal/reminder rows
	DeleteAccount(ctx context.Context, id int) error
}

// ActivityService covers workouts and step entries. All operations are
// swallow-tier: storage errors are logged and collapsed to a neutral
// false/zero/empty result.
type ActivityServiceI interface {
	AddWorkout(ctx context.Context, uid int, req *WorkoutRequest) bool
	UpdateWorkout(ctx context.Context, workoutID, uid int, req *WorkoutRequest) bool
	DeleteWorkout(ctx context.Context, workoutID, uid int) bool
	GetWorkouts(ctx context.Context, uid int) []*entity.Workout
	StepsOn(ctx context.Context, uid int, date time.Time) int
	UpdateSteps(ctx context.Context, uid int, date time.Time, steps int) bool
}

type MealServiceI interface {
	AddMeal(ctx context.Context, uid int, req *MealRequest) bool
	GetMeals(ctx context.Context, uid int) []*entity.Meal
	DeleteMeal(ctx context.Context, mealID, uid int) bool
}

type ReminderServiceI interface {
	AddReminder(ctx context.Context, uid int, req *ReminderRequest) bool
	GetReminders(ctx context.Context, uid int) []*entity.Reminder
	DeleteReminder(ctx context.Context, reminderID, uid int) bool
	SetReminderStatus(ctx context.Context, reminderID, uid int, active bool) bool
}

// AnalyticsService composes repository aggregates into dashboard and
// profile figures. Read-only; failures collapse to zero values.
type AnalyticsServiceI interface {
	// Anchor date all "today" figures are computed against
	Today() time.Time
	TotalCaloriesBurned(ctx context.Context, uid int) int
	TotalSteps(ctx context.Context, uid int) int
	TotalWorkoutDays(ctx context.Context, uid int) int
	CaloriesBurnedToday(ctx context.Context, uid int) int
	WorkoutCountToday(ctx context.Context, uid int) int
	TotalStepsLast7Days(ctx context.Context, uid int) int
	CaloriesBurnedLast7Days(ctx context.Context, uid int) int
	WorkoutCountLast7Days(ctx context.Context, uid int) int
	CurrentWorkoutStreak(ctx context.Context, uid int) int
	StepGoalProgress(ctx context.Context, uid int, date time.Time) entity.StepGoalProgress
	WorkoutGoalProgress(ctx context.Context, uid int) entity.WorkoutGoalProgress
	LifetimeStats(ctx context.Context, uid int) entity.LifetimeStats
	RecentActivity(ctx context.Context, uid int) entity.RecentActivity
}
