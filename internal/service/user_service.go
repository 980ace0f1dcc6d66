package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/fittrack/fittrack/internal/error_values"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	return &UserService{
		repo: usersRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		Name: req.Name,
		// Credential is stored as given. The column keeps its
		// historical name; no digesting is applied.
		Email:        req.Email,
		PasswordHash: req.Password,
		Age:          req.Age,
		Weight:       req.Weight,
		Height:       req.Height,
		Sex:          req.Sex,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			return nil, errorvalues.ErrEmailTaken
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	ok, err := us.repo.ValidateLogin(ctx, email, password)
	if err != nil {
		return nil, errors.New("repository login error: " + err.Error())
	}
	if !ok {
		return nil, errorvalues.ErrWrongCredentials
	}
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	err = us.repo.UpdateProfile(ctx, &entity.User{
		ID:                id,
		Name:              req.Name,
		Age:               req.Age,
		Weight:            req.Weight,
		Height:            req.Height,
		DailyStepGoal:     req.DailyStepGoal,
		WeeklyWorkoutGoal: req.WeeklyWorkoutGoal,
		WeightTarget:      req.WeightTarget,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound), errors.Is(err, errorvalues.ErrEmailTaken):
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) DeleteAccount(ctx context.Context, id int) error {
	err := us.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository deletion error: " + err.Error())
	}
	return nil
}
