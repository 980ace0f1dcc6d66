package errorvalues

import "errors"

var (
	ErrEmailTaken       = errors.New("user with such email already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrWorkoutNotFound  = errors.New("workout doesn't exist")
	ErrMealNotFound     = errors.New("meal doesn't exist")
	ErrReminderNotFound = errors.New("reminder doesn't exist")
	ErrOwnerNotFound    = errors.New("owning user doesn't exist")
	ErrInvalidToken     = errors.New("invalid token")
)
