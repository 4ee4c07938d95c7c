package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

type mockBlogRepo struct {
	createFunc  func(ctx context.Context, blog *models.Blog) error
	getByIDFunc func(ctx context.Context, id int) (*models.Blog, error)
	listFunc    func(ctx context.Context) ([]models.Blog, error)
	updateFunc  func(ctx context.Context, blog *models.Blog) error
	deleteFunc  func(ctx context.Context, id int) error
}

func (m *mockBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	return m.createFunc(ctx, blog)
}

func (m *mockBlogRepo) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBlogRepo) List(ctx context.Context) ([]models.Blog, error) {
	return m.listFunc(ctx)
}

func (m *mockBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	return m.updateFunc(ctx, blog)
}

func (m *mockBlogRepo) Delete(ctx context.Context, id int) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockBlogRepo) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	return 0, false, nil
}

func TestCreate_AttachesOwner(t *testing.T) {
	var persisted *models.Blog
	repo := &mockBlogRepo{
		createFunc: func(ctx context.Context, blog *models.Blog) error {
			persisted = blog
			return nil
		},
	}
	svc := NewService(repo, validation.New())

	post := &models.Blog{
		ID:          99, // client-supplied ids are ignored
		Description: "first post",
		Text:        "hello",
		UserID:      12345,
	}
	require.NoError(t, svc.Create(context.Background(), 7, post))

	require.NotNil(t, persisted)
	assert.Equal(t, 7, persisted.UserID, "owner comes from the authenticated principal")
	assert.Equal(t, 0, persisted.ID)
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	repo := &mockBlogRepo{
		createFunc: func(ctx context.Context, blog *models.Blog) error {
			t.Fatal("repository must not be reached")
			return nil
		},
	}
	svc := NewService(repo, validation.New())

	err := svc.Create(context.Background(), 7, &models.Blog{Description: "no text"})

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Message, "text is required")
}

func TestUpdate_ValidatesBeforePersist(t *testing.T) {
	called := false
	repo := &mockBlogRepo{
		updateFunc: func(ctx context.Context, blog *models.Blog) error {
			called = true
			return nil
		},
	}
	svc := NewService(repo, validation.New())

	err := svc.Update(context.Background(), &models.Blog{ID: 1, Description: "updated", Text: "body", UserID: 7})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestGet_PropagatesNotFound(t *testing.T) {
	repo := &mockBlogRepo{
		getByIDFunc: func(ctx context.Context, id int) (*models.Blog, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(repo, validation.New())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
