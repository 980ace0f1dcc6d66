package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/service"
	"github.com/fittrack/fittrack/pkg/entity"
	"github.com/fittrack/fittrack/pkg/httputil"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Sex      string  `json:"sex"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	Weight            float64 `json:"weight"`
	Height            float64 `json:"height"`
	DailyStepGoal     int     `json:"daily_step_goal"`
	WeeklyWorkoutGoal int     `json:"weekly_workout_goal"`
	WeightTarget      float64 `json:"weight_target"`
}

type WorkoutRequest struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	CaloriesBurned  int    `json:"calories_burned"`
	Notes           string `json:"notes"`
}

type MealRequest struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	FoodItem string `json:"food_item"`
	Calories int    `json:"calories"`
}

type ReminderRequest struct {
	WorkoutType string `json:"workout_type"`
	DayOfWeek   string `json:"day_of_week"`
	Time        string `json:"time"`
	IsActive    bool   `json:"is_active"`
}

type UpdateStepsRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

type ReminderStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type DashboardResponse struct {
	StepsToday      int                     `json:"steps_today"`
	DistanceKm      float64                 `json:"distance_km"`
	WorkoutsToday   int                     `json:"workouts_today"`
	CaloriesToday   int                     `json:"calories_today"`
	StepGoal        entity.StepGoalProgress `json:"step_goal"`
	ActiveReminders []*entity.Reminder      `json:"active_reminders"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := s.userService.Register(r.Context(), &service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
		Sex:      req.Sex,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			logger.Error("registering error: email already taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID,
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := s.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid email or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID,
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	user, err := s.userService.GetByID(r.Context(), uid)
	if err != nil {
		logger.Error("get profile error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error loading profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateProfileRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("update profile error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := s.userService.UpdateProfile(r.Context(), uid, &service.UpdateProfileRequest{
		Name:              req.Name,
		Age:               req.Age,
		Weight:            req.Weight,
		Height:            req.Height,
		DailyStepGoal:     req.DailyStepGoal,
		WeeklyWorkoutGoal: req.WeeklyWorkoutGoal,
		WeightTarget:      req.WeightTarget,
	})
	if err != nil {
		logger.Error("update profile error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error updating profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("profile updated")
}

func (s *Server) GetProfileStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("profile stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.analyticsService.LifetimeStats(r.Context(), uid))
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete account error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	if err := s.userService.DeleteAccount(r.Context(), uid); err != nil {
		logger.Error("delete account error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error deleting account", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusNoContent, nil)
	logger.Info("account deleted")
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx := r.Context()
	// The analytics clock decides what "today" is, so the step count and
	// the goal progress below always describe the same day.
	today := s.analyticsService.Today()
	steps := s.activityService.StepsOn(ctx, uid, today)
	active := make([]*entity.Reminder, 0)
	for _, reminder := range s.reminderService.GetReminders(ctx, uid) {
		if reminder.IsActive {
			active = append(active, reminder)
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, DashboardResponse{
		StepsToday:      steps,
		DistanceKm:      float64(steps) * service.KmPerStep,
		WorkoutsToday:   s.analyticsService.WorkoutCountToday(ctx, uid),
		CaloriesToday:   s.analyticsService.CaloriesBurnedToday(ctx, uid),
		StepGoal:        s.analyticsService.StepGoalProgress(ctx, uid, today),
		ActiveReminders: active,
	})
}

func (s *Server) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("recent activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.analyticsService.RecentActivity(r.Context(), uid))
}

func (s *Server) AddWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	req, ok := s.decodeWorkout(w, r)
	if !ok {
		return
	}
	if !s.activityService.AddWorkout(r.Context(), uid, req) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not save workout", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusCreated)
	logger.Info("workout added")
}

func (s *Server) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get workouts error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.activityService.GetWorkouts(r.Context(), uid))
}

func (s *Server) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeWorkout(w, r)
	if !ok {
		return
	}
	if !s.activityService.UpdateWorkout(r.Context(), id, uid, req) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not update workout", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("workout updated")
}

func (s *Server) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.activityService.DeleteWorkout(r.Context(), id, uid) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not delete workout", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("workout deleted")
}

func (s *Server) GetSteps(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get steps error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := s.analyticsService.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date", nil)
			return
		}
	}
	steps := s.activityService.StepsOn(r.Context(), uid, date)
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"date":  date.Format(dateLayout),
		"steps": steps,
	})
}

func (s *Server) UpdateSteps(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update steps error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateStepsRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("update steps error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if !s.activityService.UpdateSteps(r.Context(), uid, date, req.Steps) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not save steps", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("steps updated")
}

func (s *Server) AddMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add meal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req MealRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("add meal error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	ok := s.mealService.AddMeal(r.Context(), uid, &service.MealRequest{
		Date:     date,
		MealType: req.MealType,
		FoodItem: req.FoodItem,
		Calories: req.Calories,
	})
	if !ok {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not save meal", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusCreated)
	logger.Info("meal added")
}

func (s *Server) GetMeals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get meals error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.mealService.GetMeals(r.Context(), uid))
}

func (s *Server) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete meal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.mealService.DeleteMeal(r.Context(), id, uid) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not delete meal", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("meal deleted")
}

func (s *Server) AddReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add reminder error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ReminderRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("add reminder error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ok := s.reminderService.AddReminder(r.Context(), uid, &service.ReminderRequest{
		WorkoutType: req.WorkoutType,
		DayOfWeek:   req.DayOfWeek,
		Time:        req.Time,
		IsActive:    req.IsActive,
	})
	if !ok {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not save reminder", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusCreated)
	logger.Info("reminder added")
}

func (s *Server) GetReminders(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get reminders error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.reminderService.GetReminders(r.Context(), uid))
}

func (s *Server) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete reminder error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.reminderService.DeleteReminder(r.Context(), id, uid) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not delete reminder", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("reminder deleted")
}

func (s *Server) SetReminderStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reminder status error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ReminderStatusRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("reminder status error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if !s.reminderService.SetReminderStatus(r.Context(), id, uid, req.IsActive) {
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "could not update reminder", nil)
		return
	}
	httputil.WriteSuccessResponse(w, http.StatusOK)
	logger.Info("reminder status updated")
}

func (s *Server) decodeWorkout(w http.ResponseWriter, r *http.Request) (*service.WorkoutRequest, bool) {
	var req WorkoutRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return nil, false
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date", nil)
		return nil, false
	}
	return &service.WorkoutRequest{
		Date:            date,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
	}, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
