package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/Luismorlan/postboard/auth"
	"github.com/Luismorlan/postboard/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestPassword is the plaintext every fixture user can log in with.
const TestPassword = "password"

var (
	testPasswordHash     string
	testPasswordHashOnce sync.Once
)

// bcrypt is deliberately slow; hash the shared fixture password once per test
// binary instead of once per user.
func testHash(t *testing.T) string {
	testPasswordHashOnce.Do(func() {
		hashed, err := auth.HashPassword(TestPassword)
		require.NoError(t, err)
		testPasswordHash = hashed
	})
	return testPasswordHash
}

// TestCreateUser registers a fixture user with the given username and the
// shared TestPassword credential.
func TestCreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := model.User{
		Id:             uuid.New().String(),
		CreatedAt:      time.Now(),
		Username:       username,
		HashedPassword: testHash(t),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// TestCreateGroup creates a fixture group with slug == title.
func TestCreateGroup(t *testing.T, db *gorm.DB, title string, slug string) *model.Group {
	t.Helper()
	group := model.Group{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Title:       title,
		Slug:        slug,
		Description: "about " + title,
	}
	require.NoError(t, db.Create(&group).Error)
	return &group
}

// TestCreatePostAt inserts a post with a controlled publication time, for
// tests that assert feed ordering and pagination.
func TestCreatePostAt(t *testing.T, db *gorm.DB, author *model.User, groupID *string, text string, pubDate time.Time) *model.Post {
	t.Helper()
	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		AuthorID:  author.Id,
		GroupID:   groupID,
		Text:      text,
		PubDate:   pubDate,
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

// TestCreateToken mints a login token for the fixture user, bypassing the
// credential check.
func TestCreateToken(t *testing.T, db *gorm.DB, user *model.User) string {
	t.Helper()
	token := model.AuthToken{
		Token:     RandomAlphabetString(32),
		UserID:    user.Id,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&token).Error)
	return token.Token
}
