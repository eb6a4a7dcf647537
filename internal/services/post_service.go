package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PageSize is the number of posts shown per page on a user page.
const PageSize = 20

// PostService handles business logic related to posts.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	validate *validator.Validate
	mqClient *rabbitmq.Client // optional, nil when no broker is configured
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		validate: validator.New(),
		mqClient: mqClient,
	}
}

// CreatePost persists a new post authored by the given user. The creation
// time is supplied by the caller, never by the client. Posts are immutable
// after this call.
func (s *PostService) CreatePost(authorID, text, image string, now time.Time) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Text:      text,
		Image:     image,
		CreatedAt: now,
	}
	if err := s.validate.Struct(post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	// Publish a post.created event for downstream consumers. Best effort:
	// the post is already persisted, so a broker failure is only logged.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"postID":    post.ID,
			"authorID":  post.AuthorID,
			"createdAt": post.CreatedAt.Format(time.RFC3339),
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal post event to JSON: %v", err)
		} else if err := s.mqClient.Publish("", "post_events", body); err != nil {
			log.Printf("Failed to publish post.created event: %v", err)
		}
	}

	return post, nil
}

// ListPostsForUser returns the user's posts ordered by creation time
// ascending, oldest first. Page numbering starts at 1; page <= 0 returns
// every post. The result is recomputed per call, there is no live cursor.
func (s *PostService) ListPostsForUser(username string, page int) ([]models.Post, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("username %q: %w", username, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	offset, limit := 0, 0
	if page > 0 {
		offset = (page - 1) * PageSize
		limit = PageSize
	}

	posts, err := s.postRepo.ListByAuthor(user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return posts, nil
}

// CountPostsForUser returns how many posts the user has written, for
// computing page counts.
func (s *PostService) CountPostsForUser(username string) (int64, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, fmt.Errorf("username %q: %w", username, ErrUserNotFound)
		}
		return 0, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	count, err := s.postRepo.CountByAuthor(user.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return count, nil
}
