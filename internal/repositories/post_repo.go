package repositories

import "microblog/internal/models"

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	// ListByAuthor returns the author's posts ordered by creation time,
	// oldest first. A limit <= 0 returns everything.
	ListByAuthor(authorID string, offset, limit int) ([]models.Post, error)
	CountByAuthor(authorID string) (int64, error)
}
