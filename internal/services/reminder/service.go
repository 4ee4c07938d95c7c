package reminder

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// Service manages monthly reminders. Each reminder belongs to the user
// who created it.
type Service struct {
	repo     repository.ReminderRepository
	validate *validation.Validator
}

// NewService constructs a new Service instance.
func NewService(repo repository.ReminderRepository, validate *validation.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create validates the reminder and persists it under ownerID. New
// reminders start active.
func (s *Service) Create(ctx context.Context, ownerID int, reminder *models.Reminder) error {
	reminder.ID = 0
	reminder.UserID = ownerID
	reminder.Active = true

	if err := s.validate.Struct(reminder); err != nil {
		return err
	}
	return s.repo.Create(ctx, reminder)
}

// Get returns a single reminder by id.
func (s *Service) Get(ctx context.Context, id int) (*models.Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForUser returns userID's reminders.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]models.Reminder, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update validates and persists changed fields, including toggling Active.
func (s *Service) Update(ctx context.Context, reminder *models.Reminder) error {
	if err := s.validate.Struct(reminder); err != nil {
		return err
	}
	return s.repo.Update(ctx, reminder)
}

// Delete removes a reminder by id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
