package service

import (
	"context"
	"log"
	"log/slog"

	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/pkg/entity"
)

type ReminderService struct {
	repo repository.RemindersRepositoryI
}

func NewReminderService(remindersRepo repository.RemindersRepositoryI) *ReminderService {
	if remindersRepo == nil {
		log.Fatal("on reminder service provided nil repo")
	}
	return &ReminderService{
		repo: remindersRepo,
	}
}

func (rs *ReminderService) AddReminder(ctx context.Context, uid int, req *ReminderRequest) bool {
	if err := validate.Struct(*req); err != nil {
		slog.Warn("add reminder rejected: invalid request", slog.String("error", err.Error()))
		return false
	}
	err := rs.repo.Create(ctx, &entity.Reminder{
		UserID:      uid,
		WorkoutType: req.WorkoutType,
		DayOfWeek:   req.DayOfWeek,
		Time:        req.Time,
		IsActive:    req.IsActive,
	})
	if err != nil {
		slog.Warn("add reminder failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (rs *ReminderService) GetReminders(ctx context.Context, uid int) []*entity.Reminder {
	reminders, err := rs.repo.GetByUserID(ctx, uid)
	if err != nil {
		slog.Warn("get reminders failed", slog.Int("uid", uid), slog.String("error", err.Error()))
		return []*entity.Reminder{}
	}
	return reminders
}

func (rs *ReminderService) DeleteReminder(ctx context.Context, reminderID, uid int) bool {
	if !rs.ownsReminder(ctx, reminderID, uid) {
		return false
	}
	if err := rs.repo.Delete(ctx, reminderID); err != nil {
		slog.Warn("delete reminder failed", slog.Int("reminder_id", reminderID), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (rs *ReminderService) SetReminderStatus(ctx context.Context, reminderID, uid int, active bool) bool {
	if !rs.ownsReminder(ctx, reminderID, uid) {
		return false
	}
	if err := rs.repo.UpdateStatus(ctx, reminderID, active); err != nil {
		slog.Warn("update reminder status failed", slog.Int("reminder_id", reminderID), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (rs *ReminderService) ownsReminder(ctx context.Context, reminderID, uid int) bool {
	reminder, err := rs.repo.GetByID(ctx, reminderID)
	if err != nil {
		slog.Warn("reminder lookup failed", slog.Int("reminder_id", reminderID), slog.String("error", err.Error()))
		return false
	}
	if reminder.UserID != uid {
		slog.Warn("reminder belongs to another user", slog.Int("reminder_id", reminderID), slog.Int("uid", uid))
		return false
	}
	return true
}
