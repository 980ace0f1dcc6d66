package main

import (
	"context"
	"log"

	"github.com/fittrack/fittrack/internal/api"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/service"
	"github.com/fittrack/fittrack/pkg/cleanup"
	"github.com/fittrack/fittrack/pkg/config"
	jwtservice "github.com/fittrack/fittrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()

	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.MustGetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.MustGetString("POSTGRES_USER"),
		Password: cfg.MustGetString("POSTGRES_PASSWORD"),
		DB:       cfg.MustGetString("POSTGRES_DB"),
	}

	ctx := context.Background()
	repository.EnsureDatabase(ctx, &dbCfg)
	schemaManager := repository.NewSchemaManager(&dbCfg)
	if err := schemaManager.Bootstrap(ctx); err != nil {
		log.Fatal("schema bootstrap error: " + err.Error())
	}

	usersRepo := repository.NewUsersRepo(&dbCfg)
	workoutsRepo := repository.NewWorkoutsRepo(&dbCfg)
	stepsRepo := repository.NewStepsRepo(&dbCfg)
	mealsRepo := repository.NewMealsRepo(&dbCfg)
	remindersRepo := repository.NewRemindersRepo(&dbCfg)
	statsRepo := repository.NewStatsRepo(&dbCfg)

	serv := api.New(&api.ServicesList{
		UserService:      service.NewUserService(usersRepo),
		ActivityService:  service.NewActivityService(workoutsRepo, stepsRepo),
		MealService:      service.NewMealService(mealsRepo),
		ReminderService:  service.NewReminderService(remindersRepo),
		AnalyticsService: service.NewAnalyticsService(statsRepo, usersRepo, stepsRepo),
		JwtService:       jwtservice.New(cfg.MustGetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringOrDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
