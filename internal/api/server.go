package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/fittrack/fittrack/internal/service"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	activityService  service.ActivityServiceI
	mealService      service.MealServiceI
	reminderService  service.ReminderServiceI
	analyticsService service.AnalyticsServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	ActivityService  service.ActivityServiceI
	MealService      service.MealServiceI
	ReminderService  service.ReminderServiceI
	AnalyticsService service.AnalyticsServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		activityService:  servicesOptions.ActivityService,
		mealService:      servicesOptions.MealService,
		reminderService:  servicesOptions.ReminderService,
		analyticsService: servicesOptions.AnalyticsService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) Routes() http.Handler {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)

			r.Get("/profile", s.GetProfile)
			r.Patch("/profile", s.UpdateProfile)
			r.Get("/profile/stats", s.GetProfileStats)
			r.Delete("/account", s.DeleteAccount)

			r.Get("/dashboard", s.GetDashboard)
			r.Get("/activity/recent", s.GetRecentActivity)

			r.Post("/workouts", s.AddWorkout)
			r.Get("/workouts", s.GetWorkouts)
			r.Put("/workouts/{id}", s.UpdateWorkout)
			r.Delete("/workouts/{id}", s.DeleteWorkout)

			r.Get("/steps", s.GetSteps)
			r.Put("/steps", s.UpdateSteps)

			r.Post("/meals", s.AddMeal)
			r.Get("/meals", s.GetMeals)
			r.Delete("/meals/{id}", s.DeleteMeal)

			r.Post("/reminders", s.AddReminder)
			r.Get("/reminders", s.GetReminders)
			r.Delete("/reminders/{id}", s.DeleteReminder)
			r.Patch("/reminders/{id}/status", s.SetReminderStatus)
		})
	})
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.Routes())
}
