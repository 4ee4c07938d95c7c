package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
)

// BunBlogRepository persists blog posts using Bun.
type BunBlogRepository struct {
	db *bun.DB
}

// NewBunBlogRepository constructs a repository backed by Bun.
func NewBunBlogRepository(db *bun.DB) *BunBlogRepository {
	return &BunBlogRepository{db: db}
}

// Create inserts a new blog post. The owner id must already be set by the
// caller and is never changed afterwards.
func (r *BunBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	blog.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(blog).Exec(ctx); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

// GetByID fetches a blog post with its author relation.
func (r *BunBlogRepository) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	blog := new(models.Blog)
	err := r.db.NewSelect().Model(blog).Relation("User").Where("b.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query blog: %w", err)
	}

	return blog, nil
}

// List returns all blog posts ordered from newest to oldest.
func (r *BunBlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.NewSelect().Model(&blogs).Relation("User").Order("b.created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	if blogs == nil {
		blogs = []models.Blog{}
	}
	return blogs, nil
}

// Update persists mutated post content. The owner column is deliberately
// excluded from the update set.
func (r *BunBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	result, err := r.db.NewUpdate().
		Model(blog).
		Column("description", "author", "text").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("blog %d: %w", blog.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a blog post by id.
func (r *BunBlogRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.Blog)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("blog %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetOwnerID reports the owning user of a post without loading the row.
func (r *BunBlogRepository) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	var ownerID int
	err := r.db.NewSelect().
		Model((*models.Blog)(nil)).
		Column("user_id").
		Where("id = ?", id).
		Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query blog owner: %w", err)
	}

	return ownerID, true, nil
}
