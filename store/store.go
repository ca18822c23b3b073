// Package store is the repository layer: every read and write against the
// relational model goes through it. Handlers never touch gorm directly.
package store

import (
	"errors"
	"time"

	"github.com/Luismorlan/postboard/model"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested User/Group/Post does not
	// exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write collides with an existing row,
	// e.g. a duplicate follow.
	ErrConflict = errors.New("record already exists")
	// ErrValidation is returned when submitted data fails the schema rules,
	// e.g. a post with no text.
	ErrValidation = errors.New("invalid input")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for collaborators that manage their own
// tables (e.g. the auth token subsystem).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	res := s.db.Where("username = ?", username).First(&user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &user, nil
}

// CreateUser registers a new identity. The core domain never mutates users
// after this point; it exists here for the identity subsystem and for
// seeding.
func (s *Store) CreateUser(username string, hashedPassword string) (*model.User, error) {
	if username == "" {
		return nil, ErrValidation
	}

	// Only a taken username is a conflict; anything else is a real storage
	// failure and surfaces as one.
	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when checking username "+username)
	}
	if count > 0 {
		return nil, ErrConflict
	}

	user := model.User{
		Id:             uuid.New().String(),
		CreatedAt:      time.Now(),
		Username:       username,
		HashedPassword: hashedPassword,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when creating user "+username)
	}
	return &user, nil
}

func (s *Store) GetGroupBySlug(slug string) (*model.Group, error) {
	var group model.Group
	res := s.db.Where("slug = ?", slug).First(&group)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &group, nil
}

func (s *Store) CreateGroup(title string, slug string, description string) (*model.Group, error) {
	if title == "" || slug == "" {
		return nil, ErrValidation
	}

	var count int64
	if err := s.db.Model(&model.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when checking group slug "+slug)
	}
	if count > 0 {
		return nil, ErrConflict
	}

	group := model.Group{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when creating group "+slug)
	}
	return &group, nil
}
