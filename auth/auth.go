// Package auth is the identity subsystem consumed by the core: password
// verification and opaque token issuance/resolution. Tokens double as API
// credentials (Authorization header) and page session credentials (cookie).
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/Luismorlan/postboard/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when the username/password pair does not
// match a registered identity.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a presented token resolves to no user.
var ErrInvalidToken = errors.New("invalid token")

// HashPassword hashes a plaintext password for storage on the User row.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// IssueToken verifies the credentials and persists a fresh opaque token for
// the user. Multiple live tokens per user are allowed.
func IssueToken(db *gorm.DB, username string, password string) (string, error) {
	var user model.User
	res := db.Where("username = ?", username).First(&user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if res.Error != nil {
		return "", res.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := model.AuthToken{
		// Two uuids back to back: opaque, unguessable, no meaning encoded.
		Token:     strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", ""),
		UserID:    user.Id,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&token).Error; err != nil {
		return "", err
	}
	return token.Token, nil
}

// UserForToken resolves a presented token to its user, or ErrInvalidToken.
func UserForToken(db *gorm.DB, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var authToken model.AuthToken
	res := db.Preload("User").Where("token = ?", token).First(&authToken)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &authToken.User, nil
}

// RevokeToken deletes a token. Revoking an unknown token is a no-op.
func RevokeToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&model.AuthToken{}).Error
}
