package blog

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// Service orchestrates blog post persistence for HTTP handlers. Ownership
// decisions happen before the service is called; the service only
// guarantees the owner column is set on create and never changed after.
type Service struct {
	repo     repository.BlogRepository
	validate *validation.Validator
}

// NewService constructs a new Service instance.
func NewService(repo repository.BlogRepository, validate *validation.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create validates the post and persists it under ownerID.
func (s *Service) Create(ctx context.Context, ownerID int, post *models.Blog) error {
	post.ID = 0
	post.UserID = ownerID

	if err := s.validate.Struct(post); err != nil {
		return err
	}
	return s.repo.Create(ctx, post)
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, id int) (*models.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]models.Blog, error) {
	return s.repo.List(ctx)
}

// Update validates and persists changed fields. The owner column is left
// untouched by the repository.
func (s *Service) Update(ctx context.Context, post *models.Blog) error {
	if err := s.validate.Struct(post); err != nil {
		return err
	}
	return s.repo.Update(ctx, post)
}

// Delete removes a post by id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
