package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"microblog/internal/models"
	"microblog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

func TestGORMUserRepository_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	first := &models.User{Username: "alice", PasswordHash: "hash-1"}
	assert.NoError(t, repo.Create(first))
	assert.NotEmpty(t, first.ID)

	// The unique index rejects the second insert and writes nothing
	second := &models.User{Username: "alice", PasswordHash: "hash-2"}
	err := repo.Create(second)
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGORMUserRepository_GetByUsername(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	user := &models.User{Username: "alice", PasswordHash: "hash"}
	assert.NoError(t, repo.Create(user))

	found, err := repo.GetByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByUsername("nonexistent")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestGORMPostRepository_ListByAuthorOrdering(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)

	user := &models.User{Username: "alice", PasswordHash: "hash"}
	assert.NoError(t, userRepo.Create(user))

	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	// Insert in non-chronological order
	for _, p := range []struct {
		text string
		at   time.Time
	}{
		{"third", t1.Add(2 * time.Hour)},
		{"first", t1},
		{"second", t1.Add(time.Hour)},
	} {
		err := postRepo.Create(&models.Post{AuthorID: user.ID, Text: p.text, CreatedAt: p.at})
		assert.NoError(t, err)
	}

	posts, err := postRepo.ListByAuthor(user.ID, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, "first", posts[0].Text)
	assert.Equal(t, "second", posts[1].Text)
	assert.Equal(t, "third", posts[2].Text)

	// Offset/limit window
	window, err := postRepo.ListByAuthor(user.ID, 1, 1)
	assert.NoError(t, err)
	assert.Len(t, window, 1)
	assert.Equal(t, "second", window[0].Text)

	count, err := postRepo.CountByAuthor(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// An author with no posts lists empty, not an error
	other := &models.User{Username: "bob", PasswordHash: "hash"}
	assert.NoError(t, userRepo.Create(other))
	empty, err := postRepo.ListByAuthor(other.ID, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}
