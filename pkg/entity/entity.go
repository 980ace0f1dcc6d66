package entity

import "time"

type User struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Age               int       `json:"age"`
	Weight            float64   `json:"weight"`
	Height            float64   `json:"height"`
	Sex               string    `json:"sex"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	DailyStepGoal     int       `json:"daily_step_goal"`
	WeeklyWorkoutGoal int       `json:"weekly_workout_goal"`
	WeightTarget      float64   `json:"weight_target"`
}

type Workout struct {
	ID              int       `json:"id"`
	UserID          int       `json:"uid"`
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  int       `json:"calories_burned"`
	Notes           string    `json:"notes"`
}

type StepEntry struct {
	ID     int       `json:"id"`
	UserID int       `json:"uid"`
	Date   time.Time `json:"date"`
	Steps  int       `json:"steps"`
}

type Meal struct {
	ID       int       `json:"id"`
	UserID   int       `json:"uid"`
	Date     time.Time `json:"date"`
	MealType string    `json:"meal_type"`
	FoodItem string    `json:"food_item"`
	Calories int       `json:"calories"`
}

// Reminder's Time is the time of day in HH:MM:SS form, matching the TIME column.
type Reminder struct {
	ID          int    `json:"id"`
	UserID      int    `json:"uid"`
	WorkoutType string `json:"workout_type"`
	DayOfWeek   string `json:"day_of_week"`
	Time        string `json:"time"`
	IsActive    bool   `json:"is_active"`
}

// StepGoalProgress is the daily step goal figure shown on the dashboard.
// Ratio is Steps/Goal clamped to [0, 1].
type StepGoalProgress struct {
	Steps int     `json:"steps"`
	Goal  int     `json:"goal"`
	Ratio float64 `json:"ratio"`
}

// WorkoutGoalProgress tracks the weekly workout goal over the rolling
// 7-day window.
type WorkoutGoalProgress struct {
	Workouts int     `json:"workouts"`
	Goal     int     `json:"goal"`
	Ratio    float64 `json:"ratio"`
}

// LifetimeStats are the profile screen totals.
type LifetimeStats struct {
	TotalSteps          int `json:"total_steps"`
	TotalCaloriesBurned int `json:"total_calories_burned"`
	TotalWorkoutDays    int `json:"total_workout_days"`
}

// RecentActivity covers the inclusive [today-6, today] window.
type RecentActivity struct {
	Steps          int     `json:"steps"`
	DistanceKm     float64 `json:"distance_km"`
	CaloriesBurned int     `json:"calories_burned"`
	Workouts       int     `json:"workouts"`
	Streak         int     `json:"streak"`
}
