package repositories

import (
	"sort"
	"sync"

	"microblog/internal/models"

	"github.com/google/uuid"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts []models.Post
	mu    sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

// Create appends a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	r.posts = append(r.posts, *post)
	return nil
}

// ListByAuthor returns the author's posts sorted by creation time ascending,
// regardless of insertion order.
func (r *MockPostRepository) ListByAuthor(authorID string, offset, limit int) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var posts []models.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(posts) {
			return nil, nil
		}
		posts = posts[offset:]
	}
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// CountByAuthor returns the number of posts written by an author.
func (r *MockPostRepository) CountByAuthor(authorID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
