package services_test

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Successful registration returns the user and a session token
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, token, err := authService.RegisterUser("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.NotEmpty(t, token)
	// The stored credential must be a verifiable digest, never the plaintext
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Duplicate username surfaces as ErrUsernameTaken
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("user: %w", repositories.ErrDuplicateKey)).Once()
	_, _, err = authService.RegisterUser("testuser", "password123")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Empty username
	_, _, err := authService.RegisterUser("", "password123")
	assert.ErrorIs(t, err, services.ErrValidation)

	// Username longer than 20 characters
	_, _, err = authService.RegisterUser(strings.Repeat("a", 21), "password123")
	assert.ErrorIs(t, err, services.ErrValidation)

	// Username of exactly 20 characters is fine
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, _, err = authService.RegisterUser(strings.Repeat("a", 20), "password123")
	assert.NoError(t, err)

	// Empty password
	_, _, err = authService.RegisterUser("someuser", "")
	assert.ErrorIs(t, err, services.ErrValidation)

	// Nothing was persisted for the rejected inputs
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           "user-123",
		Username:     "testuser",
		PasswordHash: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()

	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token carries the user's identity
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, errWrongPassword := authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown username
	mockRepo.On("GetByUsername", "nonexistentuser").
		Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	_, errUnknownUser := authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, errUnknownUser, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Both failure modes are indistinguishable to the caller
	assert.Equal(t, errWrongPassword, errUnknownUser)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	// Round trip through the in-memory repository: register, then
	// authenticate with the same credentials.
	userRepo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	registered, _, err := authService.RegisterUser("alice", "secret123")
	assert.NoError(t, err)

	token, err := authService.LoginUser("alice", "secret123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, claims["user_id"])
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(), // Expires in 1 hour
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
