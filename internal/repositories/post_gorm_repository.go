package repositories

import (
	"fmt"

	"microblog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create inserts a new post.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// ListByAuthor retrieves an author's posts ordered by creation time ascending.
func (r *GORMPostRepository) ListByAuthor(authorID string, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Where("author_id = ?", authorID).Order("created_at ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts for author %s: %w", authorID, err)
	}
	return posts, nil
}

// CountByAuthor returns the number of posts written by an author.
func (r *GORMPostRepository) CountByAuthor(authorID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts for author %s: %w", authorID, err)
	}
	return count, nil
}
