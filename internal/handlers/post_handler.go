package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"microblog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service  *services.PostService
	validate *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public post routes with the Fiber app.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/:username/posts", h.HandleListUserPosts)
}

// RegisterProtectedRoutes registers the routes that require authentication.
func (h *PostHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/posts", h.HandleCreatePost)
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Text  string `json:"text" validate:"required,max=140"`
	Image string `json:"image" validate:"omitempty,max=255"`
}

// HandleCreatePost creates a post authored by the authenticated user. The
// author is taken from the token claims, never from the request body.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	authorID, ok := c.Locals("user_id").(string)
	if !ok || authorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing user identity",
		})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	post, err := h.service.CreatePost(authorID, req.Text, req.Image, time.Now())
	if err != nil {
		log.Printf("Error creating post for user %s: %v", authorID, err)
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrStorageUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Storage temporarily unavailable",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create post",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// HandleListUserPosts returns a user's posts, oldest first. An optional
// ?page=N query paginates at 20 posts per page; without it the full list is
// returned.
func (h *PostHandler) HandleListUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")

	page := 0
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid page parameter",
			})
		}
		page = parsed
	}

	posts, err := h.service.ListPostsForUser(username, page)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrStorageUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Storage temporarily unavailable",
			})
		default:
			log.Printf("Error listing posts for user %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve posts",
			})
		}
	}

	response := fiber.Map{
		"username": username,
		"posts":    posts,
	}
	if page > 0 {
		count, err := h.service.CountPostsForUser(username)
		if err == nil {
			pages := count / services.PageSize
			if count%services.PageSize != 0 || count == 0 {
				pages++
			}
			response["page"] = page
			response["pages"] = pages
		}
	}

	return c.JSON(response)
}
