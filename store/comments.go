package store

import (
	"time"

	"github.com/Luismorlan/postboard/model"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

// CreateComment adds a comment to a post. Created is set here, once.
func (s *Store) CreateComment(postID string, authorID string, text string) (*model.Comment, error) {
	if text == "" {
		return nil, ErrValidation
	}
	comment := model.Comment{
		Id:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when creating comment on post "+postID)
	}
	return &comment, nil
}

// ListCommentsForPost returns the post's comments, newest first. A post with
// no comments (or a deleted post id) yields an empty list.
func (s *Store) ListCommentsForPost(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.Model(&model.Comment{}).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failure when listing comments for post "+postID)
	}
	return comments, nil
}
