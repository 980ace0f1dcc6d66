package service

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

var weekDays = map[string]struct{}{
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
	"Saturday":  {},
	"Sunday":    {},
	"Everyday":  {},
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("day_of_week", func(fl validator.FieldLevel) bool {
			_, ok := weekDays[fl.Field().String()]
			return ok
		})
		// HH:MM or HH:MM:SS
		validate.RegisterValidation("time_of_day", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if _, err := time.Parse("15:04:05", value); err == nil {
				return true
			}
			_, err := time.Parse("15:04", value)
			return err == nil
		})
	})
}
