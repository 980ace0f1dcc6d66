package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack/internal/api"
	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/service"
	"github.com/fittrack/fittrack/pkg/entity"
	jwtservice "github.com/fittrack/fittrack/pkg/jwt_service"
)

var (
	uid      = 1
	email    = "test@example.com"
	password = "test_password"
)

func testUser() *entity.User {
	return &entity.User{
		ID:           uid,
		Name:         "test_user",
		Email:        email,
		PasswordHash: password,
		Role:         "USER",
	}
}

type UserServiceMock struct {
	success    bool
	emailTaken bool
}

func (m *UserServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	if m.emailTaken {
		return nil, errorvalues.ErrEmailTaken
	}
	if m.success {
		return testUser(), nil
	}
	return nil, errors.New("mocked error")
}

func (m *UserServiceMock) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if m.success {
		return testUser(), nil
	}
	return nil, errorvalues.ErrWrongCredentials
}

func (m *UserServiceMock) GetByID(ctx context.Context, id int) (*entity.User, error) {
	if m.success {
		return testUser(), nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *UserServiceMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.success {
		return testUser(), nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, id int, req *service.UpdateProfileRequest) (*entity.User, error) {
	if m.success {
		return testUser(), nil
	}
	return nil, errors.New("mocked error")
}

func (m *UserServiceMock) DeleteAccount(ctx context.Context, id int) error {
	if m.success {
		return nil
	}
	return errors.New("mocked error")
}

type ActivityServiceMock struct {
	success     bool
	stepsOnDate time.Time
}

func (m *ActivityServiceMock) AddWorkout(ctx context.Context, uid int, req *service.WorkoutRequest) bool {
	return m.success
}

func (m *ActivityServiceMock) UpdateWorkout(ctx context.Context, workoutID, uid int, req *service.WorkoutRequest) bool {
	return m.success
}

func (m *ActivityServiceMock) DeleteWorkout(ctx context.Context, workoutID, uid int) bool {
	return m.success
}

func (m *ActivityServiceMock) GetWorkouts(ctx context.Context, uid int) []*entity.Workout {
	if !m.success {
		return []*entity.Workout{}
	}
	return []*entity.Workout{{ID: 1, UserID: uid, Type: "Running"}}
}

func (m *ActivityServiceMock) StepsOn(ctx context.Context, uid int, date time.Time) int {
	m.stepsOnDate = date
	if !m.success {
		return 0
	}
	return 7500
}

func (m *ActivityServiceMock) UpdateSteps(ctx context.Context, uid int, date time.Time, steps int) bool {
	return m.success
}

type MealServiceMock struct {
	success bool
}

func (m *MealServiceMock) AddMeal(ctx context.Context, uid int, req *service.MealRequest) bool {
	return m.success
}

func (m *MealServiceMock) GetMeals(ctx context.Context, uid int) []*entity.Meal {
	if !m.success {
		return []*entity.Meal{}
	}
	return []*entity.Meal{{ID: 1, UserID: uid, MealType: "Breakfast"}}
}

func (m *MealServiceMock) DeleteMeal(ctx context.Context, mealID, uid int) bool {
	return m.success
}

type ReminderServiceMock struct {
	success bool
}

func (m *ReminderServiceMock) AddReminder(ctx context.Context, uid int, req *service.ReminderRequest) bool {
	return m.success
}

func (m *ReminderServiceMock) GetReminders(ctx context.Context, uid int) []*entity.Reminder {
	if !m.success {
		return []*entity.Reminder{}
	}
	return []*entity.Reminder{
		{ID: 1, UserID: uid, WorkoutType: "Running", DayOfWeek: "Monday", Time: "07:30:00", IsActive: true},
		{ID: 2, UserID: uid, WorkoutType: "Yoga", DayOfWeek: "Tuesday", Time: "19:00:00", IsActive: false},
	}
}

func (m *ReminderServiceMock) DeleteReminder(ctx context.Context, reminderID, uid int) bool {
	return m.success
}

func (m *ReminderServiceMock) SetReminderStatus(ctx context.Context, reminderID, uid int, active bool) bool {
	return m.success
}

// pinnedToday anchors the analytics clock so tests can tell whether
// handlers date their "today" figures off the service or the wall clock.
var pinnedToday = time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

type AnalyticsServiceMock struct{}

func (m *AnalyticsServiceMock) Today() time.Time                                        { return pinnedToday }
func (m *AnalyticsServiceMock) TotalCaloriesBurned(ctx context.Context, uid int) int    { return 8400 }
func (m *AnalyticsServiceMock) TotalSteps(ctx context.Context, uid int) int             { return 120000 }
func (m *AnalyticsServiceMock) TotalWorkoutDays(ctx context.Context, uid int) int       { return 14 }
func (m *AnalyticsServiceMock) CaloriesBurnedToday(ctx context.Context, uid int) int    { return 400 }
func (m *AnalyticsServiceMock) WorkoutCountToday(ctx context.Context, uid int) int      { return 1 }
func (m *AnalyticsServiceMock) TotalStepsLast7Days(ctx context.Context, uid int) int    { return 25000 }
func (m *AnalyticsServiceMock) CaloriesBurnedLast7Days(ctx context.Context, uid int) int {
	return 1800
}
func (m *AnalyticsServiceMock) WorkoutCountLast7Days(ctx context.Context, uid int) int { return 4 }
func (m *AnalyticsServiceMock) CurrentWorkoutStreak(ctx context.Context, uid int) int  { return 3 }
func (m *AnalyticsServiceMock) StepGoalProgress(ctx context.Context, uid int, date time.Time) entity.StepGoalProgress {
	return entity.StepGoalProgress{Steps: 7500, Goal: 10000, Ratio: 0.75}
}
func (m *AnalyticsServiceMock) WorkoutGoalProgress(ctx context.Context, uid int) entity.WorkoutGoalProgress {
	return entity.WorkoutGoalProgress{Workouts: 3, Goal: 4, Ratio: 0.75}
}
func (m *AnalyticsServiceMock) LifetimeStats(ctx context.Context, uid int) entity.LifetimeStats {
	return entity.LifetimeStats{TotalSteps: 120000, TotalCaloriesBurned: 8400, TotalWorkoutDays: 14}
}
func (m *AnalyticsServiceMock) RecentActivity(ctx context.Context, uid int) entity.RecentActivity {
	return entity.RecentActivity{Steps: 25000, DistanceKm: 20, CaloriesBurned: 1800, Workouts: 4, Streak: 3}
}

type testEnv struct {
	user     *UserServiceMock
	activity *ActivityServiceMock
	meal     *MealServiceMock
	reminder *ReminderServiceMock
	router   http.Handler
	jwt      *jwtservice.JWTService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		user:     &UserServiceMock{success: true},
		activity: &ActivityServiceMock{success: true},
		meal:     &MealServiceMock{success: true},
		reminder: &ReminderServiceMock{success: true},
		jwt:      jwtservice.New("test_secret"),
	}
	serv := api.New(&api.ServicesList{
		UserService:      env.user,
		ActivityService:  env.activity,
		MealService:      env.meal,
		ReminderService:  env.reminder,
		AnalyticsService: &AnalyticsServiceMock{},
		JwtService:       env.jwt,
	})
	env.router = serv.Routes()
	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.ConfigDefault.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if authed {
		token, err := env.jwt.GenerateToken(testUser())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func TestRegister(t *testing.T) {
	env := newTestEnv()
	body := api.RegisterRequest{Name: "test_user", Email: email, Password: password}
	t.Run("registered", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/auth/register", body, false)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("email conflict", func(t *testing.T) {
		env.user.emailTaken = true
		defer func() { env.user.emailTaken = false }()
		rr := env.request(t, http.MethodPost, "/api/v1/auth/register", body, false)
		assert.Equal(t, http.StatusConflict, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		env.user.success = false
		defer func() { env.user.success = true }()
		rr := env.request(t, http.MethodPost, "/api/v1/auth/register", body, false)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/auth/register", nil, false)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	body := api.LoginRequest{Email: email, Password: password}
	t.Run("logged in with token", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/auth/login", body, false)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp map[string]any
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.NotEmpty(t, resp["token"])
	})
	t.Run("wrong credentials", func(t *testing.T) {
		env.user.success = false
		defer func() { env.user.success = true }()
		rr := env.request(t, http.MethodPost, "/api/v1/auth/login", body, false)
		assert.Equal(t, http.StatusForbidden, rr.Result().StatusCode)
	})
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv()
	t.Run("missing token", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/profile", nil, false)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwtservice.New("other_secret")
		token, err := other.GenerateToken(testUser())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("valid token but vanished user", func(t *testing.T) {
		env.user.success = false
		defer func() { env.user.success = true }()
		rr := env.request(t, http.MethodGet, "/api/v1/profile", nil, true)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("valid token", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/profile", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv()
	t.Run("get profile", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/profile", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp entity.User
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.Equal(t, email, resp.Email)
	})
	t.Run("update profile", func(t *testing.T) {
		body := api.UpdateProfileRequest{Name: "renamed", Age: 31, DailyStepGoal: 12000}
		rr := env.request(t, http.MethodPatch, "/api/v1/profile", body, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("profile stats", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/profile/stats", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp entity.LifetimeStats
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.Equal(t, 120000, resp.TotalSteps)
	})
	t.Run("delete account", func(t *testing.T) {
		rr := env.request(t, http.MethodDelete, "/api/v1/account", nil, true)
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)
	})
}

func TestDashboard(t *testing.T) {
	env := newTestEnv()
	rr := env.request(t, http.MethodGet, "/api/v1/dashboard", nil, true)
	assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	var resp api.DashboardResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
	assert.Equal(t, 7500, resp.StepsToday)
	assert.InDelta(t, 6.0, resp.DistanceKm, 1e-9)
	assert.Equal(t, 1, resp.WorkoutsToday)
	assert.Equal(t, 400, resp.CaloriesToday)
	assert.Equal(t, 10000, resp.StepGoal.Goal)
	// Steps are fetched for the analytics clock's day, not the wall
	// clock's, so StepsToday and StepGoal describe the same date.
	assert.Equal(t, pinnedToday, env.activity.stepsOnDate)
	// Inactive reminders are filtered out of the dashboard.
	if assert.Len(t, resp.ActiveReminders, 1) {
		assert.True(t, resp.ActiveReminders[0].IsActive)
	}
}

func TestRecentActivity(t *testing.T) {
	env := newTestEnv()
	rr := env.request(t, http.MethodGet, "/api/v1/activity/recent", nil, true)
	assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	var resp entity.RecentActivity
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
	assert.Equal(t, 25000, resp.Steps)
	assert.Equal(t, 3, resp.Streak)
}

func TestWorkoutEndpoints(t *testing.T) {
	env := newTestEnv()
	body := api.WorkoutRequest{Date: "2026-06-10", Type: "Running", DurationMinutes: 45, CaloriesBurned: 400}
	t.Run("added", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/workouts", body, true)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("malformed date", func(t *testing.T) {
		bad := body
		bad.Date = "10.06.2026"
		rr := env.request(t, http.MethodPost, "/api/v1/workouts", bad, true)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("listed", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/workouts", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("updated", func(t *testing.T) {
		rr := env.request(t, http.MethodPut, "/api/v1/workouts/1", body, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := env.request(t, http.MethodPut, "/api/v1/workouts/abc", body, true)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("deleted", func(t *testing.T) {
		rr := env.request(t, http.MethodDelete, "/api/v1/workouts/1", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("service refusal reported", func(t *testing.T) {
		env.activity.success = false
		defer func() { env.activity.success = true }()
		rr := env.request(t, http.MethodPost, "/api/v1/workouts", body, true)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestStepsEndpoints(t *testing.T) {
	env := newTestEnv()
	t.Run("read defaults to the analytics clock's today", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/steps", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp map[string]any
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.EqualValues(t, 7500, resp["steps"])
		assert.Equal(t, pinnedToday.Format("2006-01-02"), resp["date"])
	})
	t.Run("read with explicit date", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/steps?date=2026-06-10", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("read with malformed date", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/steps?date=june", nil, true)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("written", func(t *testing.T) {
		body := api.UpdateStepsRequest{Date: "2026-06-10", Steps: 9000}
		rr := env.request(t, http.MethodPut, "/api/v1/steps", body, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
}

func TestMealEndpoints(t *testing.T) {
	env := newTestEnv()
	body := api.MealRequest{Date: "2026-06-10", MealType: "Breakfast", FoodItem: "oatmeal", Calories: 350}
	t.Run("added", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/meals", body, true)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("listed", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/meals", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("deleted", func(t *testing.T) {
		rr := env.request(t, http.MethodDelete, "/api/v1/meals/1", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
}

func TestReminderEndpoints(t *testing.T) {
	env := newTestEnv()
	body := api.ReminderRequest{WorkoutType: "Running", DayOfWeek: "Monday", Time: "07:30:00", IsActive: true}
	t.Run("added", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/v1/reminders", body, true)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("listed", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, "/api/v1/reminders", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("status toggled", func(t *testing.T) {
		rr := env.request(t, http.MethodPatch, "/api/v1/reminders/1/status", api.ReminderStatusRequest{IsActive: false}, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("deleted", func(t *testing.T) {
		rr := env.request(t, http.MethodDelete, "/api/v1/reminders/1", nil, true)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("service refusal reported", func(t *testing.T) {
		env.reminder.success = false
		defer func() { env.reminder.success = true }()
		rr := env.request(t, http.MethodDelete, "/api/v1/reminders/1", nil, true)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}
